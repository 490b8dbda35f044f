package script

import "fmt"

// Diagnostic reports a single parse failure, anchored to the 1-based source
// line it was found on. A script with a Diagnostic produces no Program.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

func (d *Diagnostic) Error() string {
	if d.Column > 0 {
		return fmt.Sprintf("line %d, col %d: %s", d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}
