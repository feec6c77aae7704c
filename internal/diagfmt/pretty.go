package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"srcdep/internal/diag"
	"srcdep/internal/source"
)

var (
	sevErrorColor   = color.New(color.FgRed, color.Bold)
	sevWarningColor = color.New(color.FgYellow, color.Bold)
	sevInfoColor    = color.New(color.FgCyan)
	gutterColor     = color.New(color.FgHiBlack)
)

// Pretty renders every diagnostic of the bag:
//
//	<path>:<line>:<col>: <SEV> [<CODE>]: <message>
//	   2 | /// {FOO} uselibrary readline
//	     |     ^~~~~~~~~~~~~~~~~~~~~~~~~
//	note: <path>:<line>:<col>: <message>
//
// Call bag.Sort() first for deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	if _, err := fmt.Fprintf(w, "%s: %s [%s]: %s\n",
		location(d.Primary, fs, opts.PathMode),
		severityLabel(d.Severity, opts.Color),
		d.Code.ID(),
		d.Message); err != nil {
		return err
	}

	if opts.Context && !d.Primary.Empty() {
		if err := preview(w, d.Primary, fs, opts.Color); err != nil {
			return err
		}
	}

	for _, note := range d.Notes {
		if _, err := fmt.Fprintf(w, "note: %s: %s\n",
			location(note.Span, fs, opts.PathMode), note.Msg); err != nil {
			return err
		}
	}
	return nil
}

// preview prints the offending source line with a ^~~~ underline.
// Multi-line spans are underlined on their first line only.
func preview(w io.Writer, sp source.Span, fs *source.FileSet, colored bool) error {
	start, end := fs.Resolve(sp)
	file := fs.Get(sp.File)
	lineText := file.GetLine(start.Line)

	gutter := fmt.Sprintf("%4d | ", start.Line)
	if _, err := fmt.Fprintf(w, "%s%s\n", paint(gutterColor, gutter, colored), lineText); err != nil {
		return err
	}

	prefix := lineText
	if int(start.Col-1) <= len(lineText) {
		prefix = lineText[:start.Col-1]
	}
	spanText := ""
	if start.Line == end.Line && int(end.Col-1) <= len(lineText) {
		spanText = lineText[start.Col-1 : end.Col-1]
	} else {
		spanText = lineText[len(prefix):]
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	width := runewidth.StringWidth(spanText)
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	if colored {
		underline = sevErrorColor.Sprint(underline)
	}
	emptyGutter := paint(gutterColor, "     | ", colored)
	_, err := fmt.Fprintf(w, "%s%s%s\n", emptyGutter, pad, underline)
	return err
}

func location(sp source.Span, fs *source.FileSet, pathMode string) string {
	// Run-level diagnostics carry no span.
	if sp.Empty() && sp.File == 0 && sp.Start == 0 {
		return "<run>"
	}
	if fs.Len() == 0 || int(sp.File) >= fs.Len() {
		return "<unknown>"
	}
	file := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", file.FormatPath(pathMode, fs.BaseDir()), start.Line, start.Col)
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return sevErrorColor.Sprint(label)
	case diag.SevWarning:
		return sevWarningColor.Sprint(label)
	default:
		return sevInfoColor.Sprint(label)
	}
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
