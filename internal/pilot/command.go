package pilot

import "strings"

// CommandKind tags the result of normalizing one input line.
type CommandKind int

const (
	// CommandNone means the line carried nothing recognizable; previous
	// mode and action persist.
	CommandNone CommandKind = iota
	// CommandMode switches control authority without touching the action.
	CommandMode
	// CommandAction replaces the active action and forces manual mode.
	CommandAction
)

// Command is the tagged union produced by Normalize.
type Command struct {
	Kind   CommandKind
	Mode   Mode
	Action Action
}

// actionKeywords is the fallback matching table. Order is load-bearing:
// substring search runs top to bottom and the first hit wins, so "turn back
// left" parses as backward, not left.
var actionKeywords = []struct {
	word   string
	action Action
}{
	{"forward", ActionForward},
	{"back", ActionBackward},
	{"left", ActionTurnLeft},
	{"right", ActionTurnRight},
	{"stop", ActionStop},
}

// Normalize turns one raw input line into a Command. Three encodings are
// tried in order, first match wins:
//
//  1. exact case-insensitive "auto" / "manual" -> mode change only;
//  2. a line starting with '{' -> lenient scan for the "action" key's quoted
//     value (not a JSON parser; malformed structure falls through);
//  3. case-insensitive keyword containment, priority order of actionKeywords.
//
// Anything else, including the empty line, yields CommandNone.
func Normalize(line string) Command {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Command{Kind: CommandNone}
	}
	lower := strings.ToLower(trimmed)

	switch lower {
	case "auto":
		return Command{Kind: CommandMode, Mode: ModeAutonomous}
	case "manual":
		return Command{Kind: CommandMode, Mode: ModeManual}
	}

	if strings.HasPrefix(trimmed, "{") {
		if value, ok := scanActionValue(lower); ok {
			if a, ok := matchKeyword(value); ok {
				return Command{Kind: CommandAction, Action: a}
			}
		}
		// malformed or unrecognized structure: fall through to keywords
	}

	if a, ok := matchKeyword(lower); ok {
		return Command{Kind: CommandAction, Action: a}
	}
	return Command{Kind: CommandNone}
}

// scanActionValue pulls the first quoted value following the action key and
// its colon. It deliberately validates nothing else about the line: any
// occurrence of the key substring counts, quoted or not.
func scanActionValue(lower string) (string, bool) {
	key := strings.Index(lower, "action")
	if key < 0 {
		return "", false
	}
	rest := lower[key+len("action"):]
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return "", false
	}
	rest = rest[colon+1:]
	open := strings.Index(rest, `"`)
	if open < 0 {
		return "", false
	}
	rest = rest[open+1:]
	closing := strings.Index(rest, `"`)
	if closing < 0 {
		return "", false
	}
	return rest[:closing], true
}

func matchKeyword(s string) (Action, bool) {
	for _, k := range actionKeywords {
		if strings.Contains(s, k.word) {
			return k.action, true
		}
	}
	return ActionUnknown, false
}
