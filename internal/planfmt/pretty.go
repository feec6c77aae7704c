package planfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"srcdep/internal/plan"
	"srcdep/internal/source"
	"srcdep/internal/switchset"
)

var (
	prettyPathColor    = color.New(color.Bold)
	prettyLibraryColor = color.New(color.FgCyan)
	prettyPackageColor = color.New(color.FgGreen)
	prettyOnColor      = color.New(color.FgGreen)
	prettyOffColor     = color.New(color.FgHiBlack)
)

// Pretty writes one block per file: the path, its requirements in
// source order, and (optionally) the resolved switch table.
func Pretty(w io.Writer, p *plan.Plan, fs *source.FileSet, opts PrettyOpts) error {
	for i := range p.Files {
		fp := &p.Files[i]
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		path := fs.Get(fp.File).FormatPath(opts.PathMode, fs.BaseDir())
		if _, err := fmt.Fprintf(w, "%s\n", paint(prettyPathColor, path, opts.Color)); err != nil {
			return err
		}

		if len(fp.Requirements) == 0 {
			if _, err := fmt.Fprintln(w, "  (no requirements)"); err != nil {
				return err
			}
		}
		for _, req := range fp.Requirements {
			kind := req.Kind.String()
			if req.Kind == plan.ReqPackage {
				kind = paint(prettyPackageColor, kind, opts.Color)
			} else {
				kind = paint(prettyLibraryColor, kind, opts.Color)
			}
			line, _ := fs.Resolve(req.Span)
			if _, err := fmt.Fprintf(w, "  %s %s  (line %d)\n", kind, req.Name, line.Line); err != nil {
				return err
			}
		}

		if opts.ShowSwitches && len(fp.Switches) > 0 {
			if _, err := fmt.Fprintln(w, "  switches:"); err != nil {
				return err
			}
			for _, sw := range fp.Switches {
				if _, err := fmt.Fprintf(w, "    %s = %s (%s)\n",
					sw.Name, paintValue(sw, opts.Color), sw.Origin); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func paintValue(sw switchset.Value, colored bool) string {
	if sw.Value {
		return paint(prettyOnColor, "on", colored)
	}
	return paint(prettyOffColor, "off", colored)
}
