// Package plan turns a file's directive stream and resolved switch
// state into a deduplicated, ordered set of build requirements.
package plan

import (
	"srcdep/internal/source"
	"srcdep/internal/switchset"
)

// RequirementKind distinguishes linked libraries from queried packages.
type RequirementKind uint8

const (
	// ReqLibrary is a library to link (-l style).
	ReqLibrary RequirementKind = iota
	// ReqPackage is a package to query (pkg-config style).
	ReqPackage
)

func (k RequirementKind) String() string {
	if k == ReqPackage {
		return "package"
	}
	return "library"
}

// Requirement is a resolved, guard-stripped build instruction attributed
// to one source file.
type Requirement struct {
	Kind RequirementKind
	Name string
	// Span points at the directive that introduced the requirement,
	// kept for diagnostics and provenance output.
	Span source.Span
}

// FilePlan is the resolved requirement set for one source file plus the
// switch state that produced it.
type FilePlan struct {
	Path         string
	File         source.FileID
	Requirements []Requirement
	Switches     []switchset.Value
}

// Plan maps every cleanly resolved file to its requirements. Files that
// failed resolution are absent; their diagnostics live in the bag.
type Plan struct {
	Files []FilePlan
}

// Requirements flattens the plan in file order.
func (p *Plan) Requirements() []Requirement {
	var out []Requirement
	for i := range p.Files {
		out = append(out, p.Files[i].Requirements...)
	}
	return out
}
