package executor

import (
	"github.com/samber/lo"

	"github.com/arthur-debert/pkgprune/pkg/types"
)

// Outcome is what happened to one target.
type Outcome string

const (
	OutcomeRemoved Outcome = "removed"
	OutcomeFailed  Outcome = "failed"
	// OutcomeVanished means the path no longer existed, typically because
	// an enclosing directory was removed first.
	OutcomeVanished Outcome = "vanished"
	// OutcomeRefused means the target was not below the base path.
	OutcomeRefused Outcome = "refused"
)

// Result is the outcome of one removal attempt.
type Result struct {
	Path    string            `json:"path"`
	RelPath string            `json:"relPath,omitempty"`
	Kind    types.RemovalKind `json:"kind"`
	Source  string            `json:"source,omitempty"`
	Outcome Outcome           `json:"outcome"`
	Error   string            `json:"error,omitempty"`

	Err error `json:"-"`
}

// Report collects the results for one base path.
type Report struct {
	BasePath string   `json:"basePath"`
	Results  []Result `json:"results"`
}

// Count returns how many results have the given outcome.
func (r *Report) Count(outcome Outcome) int {
	if r == nil {
		return 0
	}
	return lo.CountBy(r.Results, func(res Result) bool {
		return res.Outcome == outcome
	})
}

// Removed is shorthand for Count(OutcomeRemoved).
func (r *Report) Removed() int {
	return r.Count(OutcomeRemoved)
}

// Failures returns the failed and refused results.
func (r *Report) Failures() []Result {
	if r == nil {
		return nil
	}
	return lo.Filter(r.Results, func(res Result, _ int) bool {
		return res.Outcome == OutcomeFailed || res.Outcome == OutcomeRefused
	})
}

// HasFailures reports whether any removal failed or was refused.
func (r *Report) HasFailures() bool {
	return len(r.Failures()) > 0
}

// Tally counts results per outcome.
func (r *Report) Tally() map[Outcome]int {
	if r == nil {
		return map[Outcome]int{}
	}
	return lo.CountValuesBy(r.Results, func(res Result) Outcome {
		return res.Outcome
	})
}
