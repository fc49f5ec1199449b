package rules

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/pkgprune/pkg/errors"
)

// globPattern matches like fnmatch(pattern, path, FNM_PATHNAME|FNM_PERIOD).
type globPattern struct {
	raw      string
	segments []string
}

func compileGlob(raw string) (Pattern, error) {
	if raw == "" {
		return nil, errors.New(errors.ErrPatternInvalid, "empty glob pattern")
	}

	segments := strings.Split(raw, "/")
	for i, seg := range segments {
		segments[i] = quoteBrackets(escapeBraces(seg))
		if !doublestar.ValidatePattern(segments[i]) {
			return nil, errors.Newf(errors.ErrPatternInvalid, "malformed glob pattern %q", raw).
				WithDetail("pattern", raw)
		}
	}
	return &globPattern{raw: raw, segments: segments}, nil
}

func (g *globPattern) MatchString(rel string) bool {
	names := strings.Split(rel, "/")
	if len(names) != len(g.segments) {
		return false
	}
	for i, name := range names {
		seg := g.segments[i]
		if strings.HasPrefix(name, ".") && !hasLiteralDot(seg) {
			return false
		}
		ok, err := doublestar.Match(seg, name)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func (g *globPattern) String() string {
	return g.raw
}

// hasLiteralDot reports whether a pattern segment starts with a literal '.'.
func hasLiteralDot(seg string) bool {
	return strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, `\.`)
}

// escapeBraces quotes '{' and '}' so doublestar treats them literally as
// fnmatch does. Already escaped characters are left alone.
func escapeBraces(seg string) string {
	if !strings.ContainsAny(seg, "{}") {
		return seg
	}
	var b strings.Builder
	b.Grow(len(seg) + 4)
	escaped := false
	for _, r := range seg {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '{' || r == '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quoteBrackets rewrites bracket expressions the way fnmatch reads them: a
// '[' without a closing ']' is literal, and a ']' right after the opening
// '[' (or '[!', '[^') belongs to the class.
func quoteBrackets(seg string) string {
	if !strings.ContainsRune(seg, '[') {
		return seg
	}
	var b strings.Builder
	b.Grow(len(seg) + 4)
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '\\':
			b.WriteByte('\\')
			if i+1 < len(seg) {
				i++
				b.WriteByte(seg[i])
			}
		case '[':
			end := classEnd(seg, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteByte('[')
			j := i + 1
			if seg[j] == '!' || seg[j] == '^' {
				b.WriteByte(seg[j])
				j++
			}
			if seg[j] == ']' {
				b.WriteString(`\]`)
				j++
			}
			b.WriteString(seg[j : end+1])
			i = end
		default:
			b.WriteByte(seg[i])
		}
	}
	return b.String()
}

// classEnd returns the index of the ']' closing the class opened at start,
// or -1 when there is none.
func classEnd(seg string, start int) int {
	j := start + 1
	if j < len(seg) && (seg[j] == '!' || seg[j] == '^') {
		j++
	}
	if j < len(seg) && seg[j] == ']' {
		j++
	}
	for ; j < len(seg); j++ {
		switch seg[j] {
		case '\\':
			j++
		case ']':
			return j
		}
	}
	return -1
}
