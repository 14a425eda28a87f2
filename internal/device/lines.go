package device

import (
	"strings"
	"time"
)

// ReadLines pumps newline-terminated input from dev into out until stop is
// closed. Read errors are non-fatal: the pump backs off and retries, so a
// transiently silent link never kills the command channel. Blank lines are
// dropped here so downstream consumers only ever see complete, non-empty
// lines.
func ReadLines(dev Device, out chan<- string, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		line, err := dev.ReadLine(0)
		if err != nil {
			if err == ErrClosed {
				return
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		select {
		case out <- line:
		case <-stop:
			return
		}
	}
}
