package pilot

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeTelemetry formats the three distances as the fixed wire line sent
// once per cycle:
//
//	T|F:<d.dd>|L:<d.dd>|R:<d.dd>
func EncodeTelemetry(front, left, right float64) string {
	return fmt.Sprintf("T|F:%.2f|L:%.2f|R:%.2f", front, left, right)
}

// DecodeTelemetry parses a telemetry wire line back into distances. The hub
// uses it to ingest raw rover output.
func DecodeTelemetry(line string) (front, left, right float64, err error) {
	fields := strings.Split(strings.TrimSpace(line), "|")
	if len(fields) != 4 || fields[0] != "T" {
		return 0, 0, 0, fmt.Errorf("not a telemetry line: %q", line)
	}
	for i, prefix := range []string{"F:", "L:", "R:"} {
		f := fields[i+1]
		if !strings.HasPrefix(f, prefix) {
			return 0, 0, 0, fmt.Errorf("bad telemetry field %q", f)
		}
		v, perr := strconv.ParseFloat(f[len(prefix):], 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("bad telemetry value %q", f)
		}
		switch i {
		case 0:
			front = v
		case 1:
			left = v
		case 2:
			right = v
		}
	}
	return front, left, right, nil
}
