package rules

import (
	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/types"
)

// CompilePattern compiles raw in the dialect of kind.
func CompilePattern(kind MatcherKind, raw string) (Pattern, error) {
	if kind == Regexp {
		return compileRegexp(raw)
	}
	return compileGlob(raw)
}

// RuleSet is an ordered list of compiled rules; first match wins.
type RuleSet struct {
	rules []Rule
}

// Compile builds a RuleSet from patterns grouped by key, ordering keys by
// PriorityOrder and keeping each key's patterns in their listed order.
// Any pattern that fails to compile fails the whole set.
func Compile(patterns map[Key][]string) (*RuleSet, error) {
	set := &RuleSet{}
	for _, key := range PriorityOrder {
		for _, raw := range patterns[key] {
			pattern, err := CompilePattern(key.Kind, raw)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
					"rule %s has an invalid pattern", key).
					WithDetail("key", key.String()).
					WithDetail("pattern", raw)
			}
			set.rules = append(set.rules, Rule{Key: key, Pattern: pattern})
		}
	}
	return set, nil
}

// Len returns the number of compiled rules.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Empty reports whether the set has no rules, in which case callers can
// skip walking the tree altogether.
func (s *RuleSet) Empty() bool {
	return s.Len() == 0
}

// Rules returns the rules in evaluation order.
func (s *RuleSet) Rules() []Rule {
	if s == nil {
		return nil
	}
	return append([]Rule(nil), s.rules...)
}

// Match returns the first rule accepting the entry.
func (s *RuleSet) Match(fsys types.FS, rel, abs string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	for _, rule := range s.rules {
		if rule.Matches(fsys, rel, abs) {
			return rule, true
		}
	}
	return Rule{}, false
}
