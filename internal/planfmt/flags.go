package planfmt

import (
	"fmt"
	"io"
	"strings"

	"srcdep/internal/plan"
	"srcdep/internal/source"
)

// Flags writes one line per file in the shape a build system consumes
// directly: -D defines for switches resolved true, -l flags for
// libraries, and a pkg-config substitution for packages.
//
//	probe.cpp: -DUSE_READLINE -lreadline $(pkg-config --cflags --libs sdl)
func Flags(w io.Writer, p *plan.Plan, fs *source.FileSet, opts FlagsOpts) error {
	prefix := opts.DefinePrefix
	if prefix == "" {
		prefix = DefaultDefinePrefix
	}

	for i := range p.Files {
		fp := &p.Files[i]
		parts := make([]string, 0, len(fp.Switches)+len(fp.Requirements))

		for _, sw := range fp.Switches {
			if sw.Value {
				parts = append(parts, "-D"+prefix+sw.Name)
			}
		}

		var packages []string
		for _, req := range fp.Requirements {
			switch req.Kind {
			case plan.ReqLibrary:
				parts = append(parts, "-l"+req.Name)
			case plan.ReqPackage:
				packages = append(packages, req.Name)
			}
		}
		if len(packages) > 0 {
			parts = append(parts, fmt.Sprintf("$(pkg-config --cflags --libs %s)", strings.Join(packages, " ")))
		}

		path := fs.Get(fp.File).FormatPath(opts.PathMode, fs.BaseDir())
		if _, err := fmt.Fprintf(w, "%s: %s\n", path, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}
