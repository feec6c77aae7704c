// Package directive extracts embedded build directives from source
// comments. A directive line starts with the marker (/// by default)
// followed by one of:
//
//	uselibrary <name>
//	usepackage <name>
//	switch <NAME> <0|1>
//	{<NAME>} <any-of-the-above>
//
// Comment lines that do not look like directives are skipped silently;
// marker lines with an unrecognized keyword are reported and skipped.
package directive

import (
	"srcdep/internal/source"
)

// Kind discriminates the closed set of directive variants.
type Kind uint8

const (
	// KindUseLibrary requests a library to link (-l style).
	KindUseLibrary Kind = iota
	// KindUsePackage requests a package query (pkg-config style).
	KindUsePackage
	// KindSwitchDecl declares a boolean feature switch with a default.
	KindSwitchDecl
)

func (k Kind) String() string {
	switch k {
	case KindUseLibrary:
		return "uselibrary"
	case KindUsePackage:
		return "usepackage"
	case KindSwitchDecl:
		return "switch"
	}
	return "unknown"
}

// Directive is one parsed instruction from a comment line.
// Every directive belongs to exactly one source file; streams are never
// merged across files before synthesis.
type Directive struct {
	Kind Kind
	// Name is the library, package, or switch identifier.
	Name string
	// Default is the declared default value (KindSwitchDecl only).
	Default bool
	// Guard names the switch this directive is conditional on;
	// empty for unconditional directives.
	Guard string
	// Span covers the directive text after the marker.
	Span source.Span
}

// Guarded reports whether the directive carries a guard.
func (d Directive) Guarded() bool {
	return d.Guard != ""
}
