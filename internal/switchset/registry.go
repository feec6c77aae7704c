// Package switchset tracks declared feature switches, their defaults,
// and externally supplied overrides, and produces the final resolved
// switch state for one file scope.
package switchset

import (
	"fmt"
	"sort"

	"srcdep/internal/diag"
	"srcdep/internal/source"
)

// Declaration is a named boolean feature switch declared by a
// `switch NAME <default>` directive.
type Declaration struct {
	Name    string
	Default bool
	Span    source.Span
}

// Origin records where a resolved switch value came from.
type Origin uint8

const (
	OriginDefault Origin = iota
	OriginOverride
)

func (o Origin) String() string {
	if o == OriginOverride {
		return "override"
	}
	return "default"
}

// Value is the resolved state of one switch.
type Value struct {
	Name   string
	Value  bool
	Origin Origin
}

// Registry collects switch declarations for one scope. Names are
// case-sensitive. Re-declaration with an identical default is
// idempotent; a conflicting default is a fatal DuplicateSwitch.
type Registry struct {
	decls map[string]Declaration
	order []string
}

func NewRegistry() *Registry {
	return &Registry{decls: make(map[string]Declaration)}
}

// Declare records one declaration, reporting SwDuplicateSwitch on a
// conflicting default. Returns false when the declaration was rejected.
func (r *Registry) Declare(d Declaration, reporter diag.Reporter) bool {
	if prev, ok := r.decls[d.Name]; ok {
		if prev.Default == d.Default {
			return true
		}
		diag.ReportError(reporter, diag.SwDuplicateSwitch, d.Span,
			fmt.Sprintf("switch %q redeclared with a different default", d.Name)).
			WithNote(prev.Span, "previously declared here").
			Emit()
		return false
	}
	r.decls[d.Name] = d
	r.order = append(r.order, d.Name)
	return true
}

// Declared reports whether name has a declaration in this scope.
func (r *Registry) Declared(name string) bool {
	_, ok := r.decls[name]
	return ok
}

// Get returns the declaration for name.
func (r *Registry) Get(name string) (Declaration, bool) {
	d, ok := r.decls[name]
	return d, ok
}

// Len reports the number of distinct declared switches.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns the declared names sorted lexicographically, so that
// downstream merges are independent of declaration order.
func (r *Registry) Names() []string {
	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}

// Resolve merges declared defaults with external overrides into the
// final immutable State. Overrides for names outside this scope are
// ignored here; the caller validates them against the full run.
func (r *Registry) Resolve(overrides map[string]bool) State {
	values := make(map[string]Value, len(r.decls))
	for name, decl := range r.decls {
		v := Value{Name: name, Value: decl.Default, Origin: OriginDefault}
		if ov, ok := overrides[name]; ok {
			v.Value = ov
			v.Origin = OriginOverride
		}
		values[name] = v
	}
	return State{values: values}
}

// State is the final switch valuation for one scope. Immutable for the
// duration of one synthesis pass.
type State struct {
	values map[string]Value
}

// Lookup returns the resolved value for name.
func (st State) Lookup(name string) (Value, bool) {
	v, ok := st.values[name]
	return v, ok
}

// Enabled reports whether name resolved to true. Unknown names are
// false; callers that must distinguish use Lookup.
func (st State) Enabled(name string) bool {
	return st.values[name].Value
}

// Values returns every resolved switch sorted by name.
func (st State) Values() []Value {
	out := make([]Value, 0, len(st.values))
	for _, v := range st.values {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
