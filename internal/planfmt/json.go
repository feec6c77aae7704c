package planfmt

import (
	"encoding/json"
	"io"

	"srcdep/internal/plan"
	"srcdep/internal/source"
)

// RequirementJSON is one resolved build requirement.
type RequirementJSON struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line uint32 `json:"line,omitempty"`
}

// SwitchJSON is one resolved switch value.
type SwitchJSON struct {
	Name   string `json:"name"`
	Value  bool   `json:"value"`
	Origin string `json:"origin"`
}

// FilePlanJSON is the plan for one source file.
type FilePlanJSON struct {
	Path         string            `json:"path"`
	Requirements []RequirementJSON `json:"requirements"`
	Switches     []SwitchJSON      `json:"switches,omitempty"`
}

// PlanOutput is the root structure of the JSON rendering.
type PlanOutput struct {
	Files []FilePlanJSON `json:"files"`
	Count int            `json:"count"`
}

// BuildPlanOutput assembles the JSON structure without serializing it.
func BuildPlanOutput(p *plan.Plan, fs *source.FileSet, opts JSONOpts) PlanOutput {
	files := make([]FilePlanJSON, 0, len(p.Files))
	for i := range p.Files {
		fp := &p.Files[i]

		reqs := make([]RequirementJSON, 0, len(fp.Requirements))
		for _, req := range fp.Requirements {
			rj := RequirementJSON{Kind: req.Kind.String(), Name: req.Name}
			if opts.IncludeLines {
				start, _ := fs.Resolve(req.Span)
				rj.Line = start.Line
			}
			reqs = append(reqs, rj)
		}

		switches := make([]SwitchJSON, 0, len(fp.Switches))
		for _, sw := range fp.Switches {
			switches = append(switches, SwitchJSON{
				Name:   sw.Name,
				Value:  sw.Value,
				Origin: sw.Origin.String(),
			})
		}

		files = append(files, FilePlanJSON{
			Path:         fs.Get(fp.File).FormatPath(opts.PathMode, fs.BaseDir()),
			Requirements: reqs,
			Switches:     switches,
		})
	}
	return PlanOutput{Files: files, Count: len(files)}
}

// JSON serializes the plan with stable field order and indentation.
func JSON(w io.Writer, p *plan.Plan, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildPlanOutput(p, fs, opts))
}
