// Package rules decides whether a filesystem entry matches a cleanup rule.
//
// A rule comes from one of six configuration keys. The key names the
// matcher kind and the entry-type constraint:
//
//	fnmatch            glob, any existing entry
//	fnmatch-file       glob, regular files only
//	fnmatch-directory  glob, directories only
//	regexp             regular expression, any existing entry
//	regexp-file        regular expression, regular files only
//	regexp-directory   regular expression, directories only
//
// # Glob patterns
//
// Globs follow fnmatch(3) with FNM_PATHNAME and FNM_PERIOD: `*`, `?` and
// bracket expressions never match `/`, and a leading `.` in any path
// segment must be matched by a literal `.` in the pattern. Patterns are
// matched against the entry's path relative to the base directory, using
// `/` as the separator.
//
// # Regular expressions
//
// Regular expressions use the regexp2 (Perl/.NET) dialect and are applied
// unanchored to the relative path. A pattern wrapped in a delimiter, such
// as `/^tests?\//i` or `#\.dist$#`, is unwrapped and its trailing
// modifiers (i, m, s, x, u, D) become regex options.
//
// # Priority
//
// A RuleSet evaluates keys in PriorityOrder and patterns in listed order.
// The first rule whose pattern and type constraint both hold wins.
package rules
