package rules

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/pkgprune/pkg/errors"
	"github.com/arthur-debert/pkgprune/pkg/logging"
)

// MatchTimeout bounds a single regexp evaluation.
const MatchTimeout = time.Second

// delimiters accepted around a regexp, as in `/pattern/flags`.
const delimiters = "/#~!@%|+;,=`"

// brackets are the paired delimiters, as in `{pattern}flags`.
var brackets = map[byte]byte{'(': ')', '{': '}', '[': ']', '<': '>'}

type regexpPattern struct {
	raw    string
	re     *regexp2.Regexp
	logger zerolog.Logger
}

func compileRegexp(raw string) (Pattern, error) {
	if raw == "" {
		return nil, errors.New(errors.ErrPatternInvalid, "empty regexp pattern")
	}

	expr := raw
	var opts regexp2.RegexOptions
	if body, modifiers, ok := splitDelimited(raw); ok {
		parsed, err := parseModifiers(modifiers)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid regexp %q", raw).
				WithDetail("pattern", raw)
		}
		expr, opts = body, parsed
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid regexp %q", raw).
			WithDetail("pattern", raw)
	}
	re.MatchTimeout = MatchTimeout

	return &regexpPattern{
		raw:    raw,
		re:     re,
		logger: logging.GetLogger("rules.regexp"),
	}, nil
}

func (p *regexpPattern) MatchString(rel string) bool {
	ok, err := p.re.MatchString(rel)
	if err != nil {
		p.logger.Debug().
			Err(err).
			Str("pattern", p.raw).
			Str("path", rel).
			Msg("Regexp evaluation failed, treating as no match")
		return false
	}
	return ok
}

func (p *regexpPattern) String() string {
	return p.raw
}

// splitDelimited unwraps `<d>body<d>modifiers` or `<open>body<close>modifiers`.
// It only reports ok when the trailing part consists of letters, so bare
// expressions such as `.*\.md$` or `(a)(b)` are left untouched.
func splitDelimited(raw string) (body, modifiers string, ok bool) {
	if len(raw) < 2 {
		return "", "", false
	}
	var end int
	if closing, paired := brackets[raw[0]]; paired {
		end = closingBracket(raw, raw[0], closing)
	} else if strings.ContainsRune(delimiters, rune(raw[0])) {
		end = strings.LastIndexByte(raw, raw[0])
	} else {
		return "", "", false
	}
	if end <= 0 {
		return "", "", false
	}
	tail := raw[end+1:]
	for _, r := range tail {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "", "", false
		}
	}
	return raw[1:end], tail, true
}

// closingBracket returns the index of the bracket closing raw[0], honouring
// nesting and backslash escapes, or -1.
func closingBracket(raw string, opening, closing byte) int {
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseModifiers(modifiers string) (regexp2.RegexOptions, error) {
	var opts regexp2.RegexOptions
	for _, m := range modifiers {
		switch m {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		case 'u', 'D':
			// Paths are matched as UTF-8 strings and never contain a
			// trailing newline, so these change nothing.
		default:
			return 0, errors.Newf(errors.ErrPatternInvalid, "unsupported regexp modifier %q", m)
		}
	}
	return opts, nil
}
