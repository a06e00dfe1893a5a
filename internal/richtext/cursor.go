package richtext

import "strings"

// lineCursor walks the input line by line with one token of pushback.
// Carriage returns are stripped before splitting so Windows-captured output
// parses the same as Unix output.
type lineCursor struct {
	lines []string
	pos   int
}

func newLineCursor(text string) *lineCursor {
	text = strings.ReplaceAll(text, "\r", "")
	return &lineCursor{lines: strings.Split(text, "\n")}
}

// Next returns the next line, or false when input is exhausted.
func (c *lineCursor) Next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// Unget pushes the most recently returned line back so the next Next call
// returns it again. Calling it at the start of input is a no-op.
func (c *lineCursor) Unget() {
	if c.pos > 0 {
		c.pos--
	}
}
