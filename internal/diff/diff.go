// Package diff renders unified diffs between a template and the page generated
// from it, used by dry runs.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns a unified diff of a and b with three lines of context. It
// returns the empty string when the inputs are equal.
func Unified(fromName, toName, a, b string) (string, error) {
	if a == b {
		return "", nil
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	return out, nil
}

// Printer writes diffs, coloring added and removed lines when enabled.
type Printer struct {
	out      io.Writer
	colorize bool

	add  *color.Color
	del  *color.Color
	hunk *color.Color
}

// NewPrinter returns a Printer writing to out. Colors follow fatih/color's
// terminal detection unless disabled.
func NewPrinter(out io.Writer, colorize bool) *Printer {
	p := &Printer{
		out:      out,
		colorize: colorize && !color.NoColor,
		add:      color.New(color.FgGreen),
		del:      color.New(color.FgRed),
		hunk:     color.New(color.FgCyan),
	}
	if p.colorize {
		for _, c := range []*color.Color{p.add, p.del, p.hunk} {
			c.EnableColor()
		}
	}
	return p
}

// Print writes a diff produced by Unified.
func (p *Printer) Print(unified string) error {
	if unified == "" {
		return nil
	}
	for _, line := range strings.SplitAfter(unified, "\n") {
		if line == "" {
			continue
		}
		if err := p.printLine(line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printLine(line string) error {
	if !p.colorize {
		_, err := io.WriteString(p.out, line)
		return err
	}
	var c *color.Color
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		_, err := io.WriteString(p.out, line)
		return err
	case strings.HasPrefix(line, "@@"):
		c = p.hunk
	case strings.HasPrefix(line, "+"):
		c = p.add
	case strings.HasPrefix(line, "-"):
		c = p.del
	default:
		_, err := io.WriteString(p.out, line)
		return err
	}
	_, err := c.Fprint(p.out, line)
	return err
}
