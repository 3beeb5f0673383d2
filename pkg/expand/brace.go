package expand

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// expandBrace evaluates the contents of a ${...} expansion (body is
// the raw, unexpanded text between the braces) and returns the
// substituted text. None of this operator table exists in
// original_source/ (see DESIGN.md): the original's Env.expand only
// ever does plain $NAME/${NAME} lookup, never the
// defaulting/substring/pattern family.
func (c *posixCtx) expandBrace(body string) (string, error) {
	if c.flags&SkipEnvVars != 0 {
		return "${" + body + "}", nil
	}

	if len(body) == 0 {
		return "", newError(ErrBadSubstitution, "empty parameter expansion", "${}")
	}

	if body[0] == '#' {
		name := body[1:]
		if name != "" && isFullName(name) {
			v, _ := c.vars[name]
			return itoa(utf8.RuneCountInString(v)), nil
		}
		return "", newError(ErrBadSubstitution, "bad length expansion", "${"+body+"}")
	}

	name, rest := splitName(body)
	if name == "" {
		return "", newError(ErrBadSubstitution, "missing parameter name", "${"+body+"}")
	}

	value, isSet := c.vars[name]
	isNullOrUnset := !isSet || value == ""

	switch {
	case rest == "":
		return value, nil

	case strings.HasPrefix(rest, ":"):
		op := rest[1:]
		switch {
		case strings.HasPrefix(op, "-"):
			if isNullOrUnset {
				return c.expandWord(op[1:])
			}
			return value, nil
		case strings.HasPrefix(op, "+"):
			if isNullOrUnset {
				return "", nil
			}
			return c.expandWord(op[1:])
		case strings.HasPrefix(op, "?"):
			if isNullOrUnset {
				return "", c.failMissing(name, op[1:])
			}
			return value, nil
		case strings.HasPrefix(op, "="):
			if isNullOrUnset {
				w, err := c.expandWord(op[1:])
				if err != nil {
					return "", err
				}
				c.assign(name, w)
				return w, nil
			}
			return value, nil
		default:
			return c.substring(value, op)
		}

	case strings.HasPrefix(rest, "-"):
		if !isSet {
			return c.expandWord(rest[1:])
		}
		return value, nil

	case strings.HasPrefix(rest, "+"):
		if !isSet {
			return "", nil
		}
		return c.expandWord(rest[1:])

	case strings.HasPrefix(rest, "?"):
		if !isSet {
			return "", c.failMissing(name, rest[1:])
		}
		return value, nil

	case strings.HasPrefix(rest, "="):
		if !isSet {
			w, err := c.expandWord(rest[1:])
			if err != nil {
				return "", err
			}
			c.assign(name, w)
			return w, nil
		}
		return value, nil

	case strings.HasPrefix(rest, "##"):
		return c.trimGlob(value, rest[2:], true, true)
	case strings.HasPrefix(rest, "#"):
		return c.trimGlob(value, rest[1:], true, false)
	case strings.HasPrefix(rest, "%%"):
		return c.trimGlob(value, rest[2:], false, true)
	case strings.HasPrefix(rest, "%"):
		return c.trimGlob(value, rest[1:], false, false)

	case strings.HasPrefix(rest, "//"):
		return c.substitute(value, rest[2:], true)
	case strings.HasPrefix(rest, "/"):
		return c.substitute(value, rest[1:], false)

	default:
		return "", newError(ErrBadSubstitution, "unrecognized parameter expansion operator", "${"+body+"}")
	}
}

// expandWord recursively expands W (used by default/alt/assign word
// text) through the full engine, in a fresh child context so recursion
// depth is still bounded.
func (c *posixCtx) expandWord(w string) (string, error) {
	child, err := c.child()
	if err != nil {
		return "", err
	}
	out, _, err := child.scan([]rune(w), 0, false)
	return out, err
}

func (c *posixCtx) failMissing(name, rawMsg string) error {
	msg, err := c.expandWord(rawMsg)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = name + ": parameter null or not set"
	}
	return newError(ErrMissingVariable, msg, name)
}

func (c *posixCtx) assign(name, value string) {
	if c.vars == nil {
		return
	}
	c.vars[name] = value
}

// substring implements ${NAME:off[:len]}.
func (c *posixCtx) substring(value, spec string) (string, error) {
	offExpr, lenExpr, hasLen := strings.Cut(spec, ":")

	offStr, err := c.expandWord(offExpr)
	if err != nil {
		return "", err
	}
	off, err := strconv.Atoi(strings.TrimSpace(offStr))
	if err != nil {
		return "", newError(ErrBadSubstitution, "non-numeric substring offset", offExpr)
	}

	runes := []rune(value)
	n := len(runes)

	start := off
	if start < 0 {
		start += n
	}
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}

	end := n
	if hasLen {
		lenStr, err := c.expandWord(lenExpr)
		if err != nil {
			return "", err
		}
		length, err := strconv.Atoi(strings.TrimSpace(lenStr))
		if err != nil {
			return "", newError(ErrBadSubstitution, "non-numeric substring length", lenExpr)
		}
		if length < 0 {
			end = n + length
		} else {
			end = start + length
		}
	}
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	return string(runes[start:end]), nil
}

// trimGlob implements ${NAME#P}/${NAME##P}/${NAME%P}/${NAME%%P}.
func (c *posixCtx) trimGlob(value, rawGlob string, fromStart, longest bool) (string, error) {
	glob, err := c.expandWord(rawGlob)
	if err != nil {
		return "", err
	}
	which := Shortest
	if longest {
		which = Longest
	}
	if fromStart {
		n := MatchPrefix(glob, value, which)
		if n < 0 {
			return value, nil
		}
		return value[n:], nil
	}
	n := MatchSuffix(glob, value, which)
	if n < 0 {
		return value, nil
	}
	return value[:len(value)-n], nil
}

// substitute implements ${NAME/P/R}, ${NAME//P/R}, ${NAME/#P/R},
// ${NAME/%P/R}, ${NAME//#P/R}, ${NAME//%P/R}.
func (c *posixCtx) substitute(value, spec string, global bool) (string, error) {
	anchorStart, anchorEnd := false, false
	switch {
	case strings.HasPrefix(spec, "#"):
		anchorStart = true
		spec = spec[1:]
	case strings.HasPrefix(spec, "%"):
		anchorEnd = true
		spec = spec[1:]
	}

	rawPattern, rawRepl, _ := strings.Cut(spec, "/")
	pattern, err := c.expandWord(rawPattern)
	if err != nil {
		return "", err
	}
	repl, err := c.expandWord(rawRepl)
	if err != nil {
		return "", err
	}

	switch {
	case anchorStart && global:
		return replaceAnchoredRepeat(value, pattern, repl, true), nil
	case anchorEnd && global:
		return replaceAnchoredRepeat(value, pattern, repl, false), nil
	case anchorStart:
		return replaceAnchoredOnce(value, pattern, repl, true), nil
	case anchorEnd:
		return replaceAnchoredOnce(value, pattern, repl, false), nil
	case global:
		return replaceGlobal(value, pattern, repl), nil
	default:
		return replaceOnce(value, pattern, repl), nil
	}
}

func replaceAnchoredOnce(value, pattern, repl string, atStart bool) string {
	if atStart {
		n := MatchPrefix(pattern, value, Longest)
		if n < 0 {
			return value
		}
		return repl + value[n:]
	}
	n := MatchSuffix(pattern, value, Longest)
	if n < 0 {
		return value
	}
	return value[:len(value)-n] + repl
}

// replaceAnchoredRepeat implements ${NAME//#P/R} / ${NAME//%P/R}:
// iterate anchored replacement until no further progress. An empty
// pattern is a documented no-op, since an anchored empty match never
// consumes anything for the loop to make progress on.
func replaceAnchoredRepeat(value, pattern, repl string, atStart bool) string {
	if pattern == "" {
		return value
	}
	for {
		next := replaceAnchoredOnce(value, pattern, repl, atStart)
		if next == value {
			return value
		}
		value = next
	}
}

// replaceOnce implements ${NAME/P/R}: replace the first (leftmost,
// longest-at-that-position) match of P with R.
func replaceOnce(value, pattern, repl string) string {
	if pattern == "" {
		// ${V/P/R} with an empty pattern that never matches: per the
		// empty-pattern rules this is a no-op for the single-match form.
		return value
	}
	for i := 0; i <= len(value); {
		n := MatchPrefix(pattern, value[i:], Longest)
		if n >= 0 {
			return value[:i] + repl + value[i+n:]
		}
		if i >= len(value) {
			break
		}
		_, size := utf8.DecodeRuneInString(value[i:])
		i += size
	}
	return value
}

// replaceGlobal implements ${NAME//P/R}: replace every non-overlapping
// match of P with R, left to right.
func replaceGlobal(value, pattern, repl string) string {
	if pattern == "" {
		// ${V///R}: insert R between every character and at both ends.
		var b strings.Builder
		for _, r := range value {
			b.WriteString(repl)
			b.WriteRune(r)
		}
		b.WriteString(repl)
		return b.String()
	}
	var b strings.Builder
	i := 0
	for i <= len(value) {
		n := MatchPrefix(pattern, value[i:], Longest)
		if n > 0 {
			b.WriteString(repl)
			i += n
			continue
		}
		if i < len(value) {
			r, size := utf8.DecodeRuneInString(value[i:])
			b.WriteRune(r)
			i += size
		} else {
			break
		}
	}
	return b.String()
}

// splitName peels a leading [A-Za-z_][A-Za-z0-9_]* off body, returning
// the name and whatever operator text follows it.
func splitName(body string) (name, rest string) {
	runes := []rune(body)
	if len(runes) == 0 || !isNameStart(runes[0]) {
		return "", body
	}
	i := 1
	for i < len(runes) && isNameCont(runes[i]) {
		i++
	}
	return string(runes[:i]), string(runes[i:])
}

func isFullName(s string) bool {
	n, rest := splitName(s)
	return n != "" && rest == ""
}
