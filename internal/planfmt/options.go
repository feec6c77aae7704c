// Package planfmt renders a resolved build plan for human eyes
// (pretty), machines (json), or a downstream build system (flags).
package planfmt

// PrettyOpts configures pretty-printing of a plan.
type PrettyOpts struct {
	Color bool
	// ShowSwitches includes the resolved switch table per file.
	ShowSwitches bool
	// PathMode is passed to File.FormatPath: "absolute", "relative",
	// "basename", or "" for as-is.
	PathMode string
}

// JSONOpts configures JSON output of a plan.
type JSONOpts struct {
	// IncludeLines adds the 1-based source line of each requirement.
	IncludeLines bool
	PathMode     string
}

// FlagsOpts configures the compiler-flags rendering.
type FlagsOpts struct {
	// DefinePrefix is prepended to active switch names for -D defines.
	// The scanned sources gate their optional code on USE_<NAME>.
	DefinePrefix string
	PathMode     string
}

// DefaultDefinePrefix matches the #ifdef convention of the scanned
// sources: switch READLINE gates code behind USE_READLINE.
const DefaultDefinePrefix = "USE_"
