package cleanup

import (
	"github.com/samber/lo"

	"github.com/arthur-debert/pkgprune/pkg/executor"
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// Status is what happened to one package.
type Status string

const (
	StatusCleaned     Status = "cleaned"
	StatusExcluded    Status = "excluded"
	StatusMetapackage Status = "metapackage"
	StatusUnresolved  Status = "unresolved"
	StatusConfigError Status = "config-error"
)

// PackageResult is the outcome of cleaning one package.
type PackageResult struct {
	Package     types.Package    `json:"package"`
	Status      Status           `json:"status"`
	InstallPath string           `json:"installPath,omitempty"`
	Report      *executor.Report `json:"report,omitempty"`
	Error       string           `json:"error,omitempty"`

	Err error `json:"-"`
}

// Removed returns the number of paths removed for the package.
func (r PackageResult) Removed() int {
	return r.Report.Removed()
}

// Summary collects the results of a cleanup run.
type Summary struct {
	// Source names where the configuration came from.
	Source   string          `json:"source,omitempty"`
	Packages []PackageResult `json:"packages"`
}

// StatusCounts counts packages per status.
func (s *Summary) StatusCounts() map[Status]int {
	return lo.CountValuesBy(s.Packages, func(r PackageResult) Status {
		return r.Status
	})
}

// Removed returns the total number of removed paths.
func (s *Summary) Removed() int {
	return lo.SumBy(s.Packages, func(r PackageResult) int {
		return r.Removed()
	})
}

// Failures returns every failed or refused removal across packages.
func (s *Summary) Failures() []executor.Result {
	return lo.FlatMap(s.Packages, func(r PackageResult, _ int) []executor.Result {
		return r.Report.Failures()
	})
}

// ConfigErrors returns the packages skipped because of a configuration
// error.
func (s *Summary) ConfigErrors() []PackageResult {
	return lo.Filter(s.Packages, func(r PackageResult, _ int) bool {
		return r.Status == StatusConfigError
	})
}

// HasProblems reports whether any removal failed or any package had a
// configuration error.
func (s *Summary) HasProblems() bool {
	return len(s.Failures()) > 0 || len(s.ConfigErrors()) > 0
}
