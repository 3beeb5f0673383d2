// Package dotenv implements the dot-env file discovery and loading half
// of this module: which files apply to the running platform and runtime
// environment (Filter Engine, File Discoverer), and how their contents
// become key/value pairs in a target vars map (Line Processor).
package dotenv

import "strings"

// Filter Engine, grounded in original envara's dotenv_filter.py
// DotEnvFilter. The original compiles a regex per
// filter; this reimplements the same "does the filename's token set
// satisfy the filter" question directly over token sets, which is what
// the regex ultimately tested — a filename never needs regex-level
// backtracking to decide dimension membership.

// Filter is one filtering dimension against a dot-env filename's token
// decomposition: "does this file's tokens include the indicator, and
// either avoid every value in the possibility list or include one from
// the current-run list".
type Filter struct {
	// Indicator is a token that must always be present (default "env").
	Indicator string
	// Cur lists the values relevant to the current run (e.g. the active
	// platform tag, or the active build environment "prod").
	Cur []string
	// All lists every value this dimension could ever take (e.g. every
	// platform tag ever classified, or every known build environment).
	// When a filename's tokens contain none of All, the dimension is a
	// wildcard match (the filename simply doesn't address it).
	All []string
}

// NewFilter constructs a Filter with the default indicator ("env") when
// ind is empty.
func NewFilter(ind string, cur, all []string) Filter {
	if ind == "" {
		ind = "env"
	}
	return Filter{Indicator: ind, Cur: cur, All: all}
}

// tokenize splits a filename on the separators the original DotEnvFilter
// regex uses (".", "-", "_"), lowercased, dropping empty tokens (a
// leading dot on ".env.prod" produces one, which the original grammar
// also treats as insignificant).
func tokenize(name string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}

func anyIn(tokens map[string]struct{}, values []string) bool {
	for _, v := range values {
		if _, ok := tokens[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}

// IsMatch reports whether name's token decomposition satisfies f: the
// indicator must be present, and for the value dimension, either none of
// All appear (wildcard) or one of Cur does.
//
// The bare canonical indicator file (e.g. ".env" with no further
// decoration) always matches, mirroring the original's regex
// alternative that accepts "^{sep}*{ind}{sep}*$" on its own.
func (f Filter) IsMatch(name string) bool {
	tokens := tokenize(name)
	ind := strings.ToLower(f.Indicator)
	if _, ok := tokens[ind]; !ok {
		return false
	}
	if len(f.All) == 0 {
		return true
	}
	if anyIn(tokens, f.Cur) {
		return true
	}
	return !anyIn(tokens, f.All)
}
