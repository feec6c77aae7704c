// Package diagfmt renders collected diagnostics as pretty terminal
// output or JSON.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context enables the source line preview with an underline.
	Context bool
	// PathMode is passed to File.FormatPath: "absolute", "relative",
	// "basename", or "" for as-is.
	PathMode string
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	// IncludePositions adds line/col to every location.
	IncludePositions bool
	PathMode         string
	// Max truncates the output, not the Bag.
	Max          int
	IncludeNotes bool
}
