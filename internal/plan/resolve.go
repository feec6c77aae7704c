package plan

import (
	"fmt"

	"srcdep/internal/diag"
	"srcdep/internal/directive"
	"srcdep/internal/source"
	"srcdep/internal/switchset"
)

// BuildRegistry folds the SwitchDecl directives of one file into a
// fresh Registry. Conflicting re-declarations are reported through
// reporter as SwDuplicateSwitch; ok is false when any occurred.
func BuildRegistry(dirs []directive.Directive, reporter diag.Reporter) (reg *switchset.Registry, ok bool) {
	reg = switchset.NewRegistry()
	ok = true
	for _, d := range dirs {
		if d.Kind != directive.KindSwitchDecl {
			continue
		}
		if !reg.Declare(switchset.Declaration{
			Name:    d.Name,
			Default: d.Default,
			Span:    d.Span,
		}, reporter) {
			ok = false
		}
	}
	return reg, ok
}

// CheckGuards validates every guard reference against the registry.
// A guard naming an undeclared switch is reported as SwUnknownSwitch
// and makes the whole file unresolvable.
func CheckGuards(dirs []directive.Directive, reg *switchset.Registry, reporter diag.Reporter) bool {
	ok := true
	for _, d := range dirs {
		if !d.Guarded() || reg.Declared(d.Guard) {
			continue
		}
		diag.ReportError(reporter, diag.SwUnknownSwitch, d.Span,
			fmt.Sprintf("guard references undeclared switch %q", d.Guard)).Emit()
		ok = false
	}
	return ok
}

// Filter drops directives whose guard resolved to false and strips the
// guard from the survivors. Unconditional directives pass unchanged.
// Guards must have been validated beforehand.
func Filter(dirs []directive.Directive, st switchset.State) []directive.Directive {
	out := make([]directive.Directive, 0, len(dirs))
	for _, d := range dirs {
		if d.Guarded() {
			if !st.Enabled(d.Guard) {
				continue
			}
			d.Guard = ""
		}
		out = append(out, d)
	}
	return out
}

// Synthesize folds a filtered directive stream into the file's ordered
// requirement list. The first occurrence of a (kind, name) pair wins;
// later duplicates are no-ops. SwitchDecl directives are inert here.
// Synthesis is a pure fold and cannot fail.
func Synthesize(dirs []directive.Directive) []Requirement {
	type key struct {
		kind RequirementKind
		name string
	}
	seen := make(map[key]bool, len(dirs))
	out := make([]Requirement, 0, len(dirs))

	for _, d := range dirs {
		var kind RequirementKind
		switch d.Kind {
		case directive.KindUseLibrary:
			kind = ReqLibrary
		case directive.KindUsePackage:
			kind = ReqPackage
		default:
			continue
		}
		k := key{kind: kind, name: d.Name}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Requirement{Kind: kind, Name: d.Name, Span: d.Span})
	}
	return out
}

// ResolveFile runs the whole per-file pass: registry build, guard
// validation, switch resolution, filtering, synthesis. On a fatal
// switch error no plan is produced for the file and ok is false.
func ResolveFile(file *source.File, dirs []directive.Directive, overrides map[string]bool, reporter diag.Reporter) (FilePlan, bool) {
	reg, declOK := BuildRegistry(dirs, reporter)
	guardsOK := CheckGuards(dirs, reg, reporter)
	if !declOK || !guardsOK {
		return FilePlan{}, false
	}

	state := reg.Resolve(overrides)
	return FilePlan{
		Path:         file.Path,
		File:         file.ID,
		Requirements: Synthesize(Filter(dirs, state)),
		Switches:     state.Values(),
	}, true
}
