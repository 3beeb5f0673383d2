package expand

// Pattern Matcher: a glob-style matcher supporting `*` (any sequence,
// possibly empty), `?` (any single character), and `[set]` (character
// class, optional leading `!`/`^` negation, `a-z` ranges). Everything
// else is literal. No backslash escaping inside the glob itself — that
// is handled by the caller before the pattern reaches here.
//
// This has no equivalent in original_source/ (see DESIGN.md): it backs
// shortest/longest anchored substitution (${V#P}, ${V##P}, ${V%P},
// ${V%%P}, ${V/P/R} and friends). It is deliberately not built on
// path/filepath.Match, which anchors at path separators and only
// answers "does it match", not "how long is the matched prefix" —
// exactly what anchored substitution needs.

// matchClass reports whether c is a member of the bracket-expression
// body (the text between `[` and the matching `]`, without the
// brackets), honoring `!`/`^` negation and `a-z` ranges.
func matchClass(body string, c byte) bool {
	negate := false
	if len(body) > 0 && (body[0] == '!' || body[0] == '^') {
		negate = true
		body = body[1:]
	}
	matched := false
	for i := 0; i < len(body); i++ {
		if i+2 < len(body) && body[i+1] == '-' {
			lo, hi := body[i], body[i+2]
			if lo <= hi && c >= lo && c <= hi {
				matched = true
			}
			i += 2
			continue
		}
		if body[i] == c {
			matched = true
		}
	}
	return matched != negate
}

// splitClass finds the end of a `[...]` bracket expression starting at
// glob[0] == '['. Returns the body (without brackets) and the number of
// glob bytes consumed, or ok=false if there is no closing `]`.
func splitClass(glob string) (body string, consumed int, ok bool) {
	if len(glob) == 0 || glob[0] != '[' {
		return "", 0, false
	}
	i := 1
	// A leading negation or literal first char is allowed to appear
	// immediately before a literal ']' without closing the class.
	if i < len(glob) && (glob[i] == '!' || glob[i] == '^') {
		i++
	}
	start := 1 // the body keeps any negation mark for matchClass
	if i < len(glob) && glob[i] == ']' {
		i++
	}
	for i < len(glob) && glob[i] != ']' {
		i++
	}
	if i >= len(glob) {
		return "", 0, false
	}
	return glob[start:i], i + 1, true
}

// matchStep reports whether glob matches the full remainder of text
// (both consumed to completion). Used by prefix/suffix matchers to
// decide, for a candidate split point, whether the glob fully consumes
// its side of the split.
func matchStep(glob, text string) bool {
	for len(glob) > 0 {
		switch glob[0] {
		case '*':
			// Collapse runs of '*' and try every split point, shortest
			// text consumption first (doesn't affect correctness, only
			// which of several valid splits is found first).
			rest := glob
			for len(rest) > 0 && rest[0] == '*' {
				rest = rest[1:]
			}
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(text); i++ {
				if matchStep(rest, text[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(text) == 0 {
				return false
			}
			glob = glob[1:]
			text = text[1:]
		case '[':
			body, n, ok := splitClass(glob)
			if !ok {
				// Unterminated bracket: treat '[' as a literal.
				if len(text) == 0 || text[0] != '[' {
					return false
				}
				glob = glob[1:]
				text = text[1:]
				continue
			}
			if len(text) == 0 || !matchClass(body, text[0]) {
				return false
			}
			glob = glob[n:]
			text = text[1:]
		default:
			if len(text) == 0 || text[0] != glob[0] {
				return false
			}
			glob = glob[1:]
			text = text[1:]
		}
	}
	return len(text) == 0
}

// MatchLen selects which of the (possibly many) valid match lengths
// MatchPrefix/MatchSuffix should return.
type MatchLen int

const (
	// Shortest requests the smallest k such that glob fully matches the
	// k-character side of the split.
	Shortest MatchLen = iota
	// Longest requests the largest such k.
	Longest
)

// MatchPrefix returns the length of the glob match against a prefix of
// text, or -1 if no prefix of text is fully matched by glob. An empty
// glob always matches a zero-length prefix (length 0) for both
// Shortest and Longest.
func MatchPrefix(glob, text string, which MatchLen) int {
	if glob == "" {
		return 0
	}
	if which == Shortest {
		for k := 0; k <= len(text); k++ {
			if matchStep(glob, text[:k]) {
				return k
			}
		}
		return -1
	}
	for k := len(text); k >= 0; k-- {
		if matchStep(glob, text[:k]) {
			return k
		}
	}
	return -1
}

// MatchSuffix returns the length of the glob match against a suffix of
// text (symmetric on the reversed problem), or -1 if none matches.
func MatchSuffix(glob, text string, which MatchLen) int {
	if glob == "" {
		return 0
	}
	n := len(text)
	if which == Shortest {
		for k := 0; k <= n; k++ {
			if matchStep(glob, text[n-k:]) {
				return k
			}
		}
		return -1
	}
	for k := n; k >= 0; k-- {
		if matchStep(glob, text[n-k:]) {
			return k
		}
	}
	return -1
}
