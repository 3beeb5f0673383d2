package expand

import (
	"os"
	"strings"
	"time"
)

// POSIX Expansion Engine: the centerpiece of this package.
// Generalizes the variable-substitution half of go-busybox's ash
// applet (ash.go's expandVars, a single-pass $NAME/${NAME} replacer
// with no parameter-expansion operators) into a full recursive-descent
// evaluator: nested ${...} parameter expansion, command substitution,
// and quote-aware scanning, none of which that shell needed since it
// delegated the rest of word evaluation to its own tokenizer.

// posixCtx threads the collaborators and recursion bookkeeping a single
// top-level Expand call shares across every nested call it makes
// (command substitution bodies, ${NAME:-W} replacement text, and so
// on).
type posixCtx struct {
	vars    map[string]string
	args    []string
	pid     int
	flags   Flags
	escape  rune
	expand  rune
	runner  SubprocessRunner
	timeout time.Duration
	logger  Logger
	depth   int
	maxD    int
}

func (c *posixCtx) child() (*posixCtx, error) {
	if c.depth+1 > c.maxD {
		return nil, newError(ErrRecursionLimitExceeded, "maximum expansion recursion depth exceeded", "")
	}
	n := *c
	n.depth = c.depth + 1
	return &n, nil
}

// ExpandPOSIX expands s using the $ / \ dialect. s is the
// already-unquoted-at-the-top-level value (see Unquote); this function
// itself still recognizes embedded ' and " regions within s, since a
// value can mix quoting internally (e.g. FOO=bar"baz $x"qux).
func ExpandPOSIX(s string, flags Flags, o Options) (string, error) {
	pid := o.PID
	if pid == 0 {
		pid = os.Getpid()
	}
	ctx := &posixCtx{
		vars:    o.Vars,
		args:    o.Args,
		pid:     pid,
		flags:   flags,
		escape:  PosixEscape,
		expand:  PosixExpand,
		runner:  o.Runner,
		timeout: o.SubprocessTimeout,
		logger:  o.Logger,
		maxD:    o.maxDepth(),
	}
	out, _, err := ctx.scan([]rune(s), 0, false)
	return out, err
}

// scan processes runes[pos:] left to right. When inDouble is false it
// runs to end of input. When inDouble is true it stops at (and
// consumes) the first unescaped '"', returning the text up to but not
// including that quote and the position just past it; running off the
// end of input while inDouble is an ErrUnterminatedQuote.
func (c *posixCtx) scan(runes []rune, pos int, inDouble bool) (string, int, error) {
	var b strings.Builder
	for pos < len(runes) {
		r := runes[pos]

		switch {
		case inDouble && r == '"':
			return b.String(), pos + 1, nil

		case r == c.escape:
			if pos+1 >= len(runes) {
				return "", pos, newError(ErrDanglingEscape, "escape character at end of input", string(runes))
			}
			// Keep the pair verbatim; the final Unescape pass (if
			// enabled) resolves it. This lets \$ and \` merely suppress
			// recognition here without this scanner needing the full
			// escape table.
			b.WriteRune(r)
			b.WriteRune(runes[pos+1])
			pos += 2

		case r == '\'' && !inDouble:
			if c.flags&SkipSingleQuoted == 0 {
				// Single quote loses its special meaning outside
				// opaque mode: scan it like any other literal.
				b.WriteRune(r)
				pos++
				continue
			}
			end := pos + 1
			for end < len(runes) && runes[end] != '\'' {
				end++
			}
			if end >= len(runes) {
				return "", pos, newError(ErrUnterminatedQuote, "unterminated single-quoted string", string(runes[pos:]))
			}
			b.WriteString(string(runes[pos+1 : end]))
			pos = end + 1

		case r == '"':
			inner, next, err := c.scan(runes, pos+1, true)
			if err != nil {
				return "", pos, err
			}
			b.WriteString(inner)
			pos = next

		case r == c.expand:
			text, next, err := c.expandDollar(runes, pos)
			if err != nil {
				return "", pos, err
			}
			b.WriteString(text)
			pos = next

		case r == '`':
			text, next, err := c.commandSubstBacktick(runes, pos)
			if err != nil {
				return "", pos, err
			}
			b.WriteString(text)
			pos = next

		default:
			b.WriteRune(r)
			pos++
		}
	}
	if inDouble {
		return "", pos, newError(ErrUnterminatedQuote, "unterminated double-quoted string", string(runes))
	}
	return b.String(), pos, nil
}

// expandDollar dispatches on the character following a $ at
// runes[pos]. pos points at the '$' itself.
func (c *posixCtx) expandDollar(runes []rune, pos int) (string, int, error) {
	if pos+1 >= len(runes) {
		return "$", pos + 1, nil
	}
	next := runes[pos+1]

	switch {
	case next == '$':
		return c.lookupPID(), pos + 2, nil

	case next >= '1' && next <= '9':
		return c.lookupArg(next), pos + 2, nil

	case next == '{':
		end, err := scanBalanced(runes, pos+2, '{', '}', c.escape)
		if err != nil {
			return "", pos, err
		}
		out, err := c.expandBrace(string(runes[pos+2 : end]))
		if err != nil {
			return "", pos, err
		}
		return out, end + 1, nil

	case next == '(':
		end, err := scanBalanced(runes, pos+2, '(', ')', c.escape)
		if err != nil {
			return "", pos, err
		}
		out, err := c.commandSubst(string(runes[pos+2 : end]), "$(", ")")
		if err != nil {
			return "", pos, err
		}
		return out, end + 1, nil

	case isNameStart(next):
		end := pos + 2
		for end < len(runes) && isNameCont(runes[end]) {
			end++
		}
		return c.lookupVar(string(runes[pos+1 : end])), end, nil

	default:
		return "$", pos + 1, nil
	}
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameCont(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9')
}

func (c *posixCtx) lookupPID() string {
	return itoa(c.pid)
}

func (c *posixCtx) lookupArg(digit rune) string {
	n := int(digit - '0')
	if n-1 >= 0 && n-1 < len(c.args) {
		return c.args[n-1]
	}
	return "$" + string(digit)
}

func (c *posixCtx) lookupVar(name string) string {
	if c.flags&SkipEnvVars != 0 {
		return "$" + name
	}
	v, _ := c.vars[name]
	return v
}

// commandSubstBacktick handles `...` starting at runes[pos] == '`'.
func (c *posixCtx) commandSubstBacktick(runes []rune, pos int) (string, int, error) {
	end, err := scanBalanced(runes, pos+1, '`', '`', c.escape)
	if err != nil {
		return "", pos, err
	}
	out, err := c.commandSubst(string(runes[pos+1:end]), "`", "`")
	if err != nil {
		return "", pos, err
	}
	return out, end + 1, nil
}

// commandSubst expands body (the full contents between $( ) or
// backticks, unexpanded) and, if shell/subproc execution is permitted,
// runs it and returns its captured, trimmed stdout. If neither
// AllowShell nor AllowSubproc is set, the original $(...)/`...` syntax
// is preserved verbatim — open/close are the delimiters the caller
// scanned off the original input, so backtick substitutions stay
// backticks instead of being rewritten into $(...).
func (c *posixCtx) commandSubst(body, open, close string) (string, error) {
	child, err := c.child()
	if err != nil {
		return "", err
	}
	expanded, _, err := child.scan([]rune(body), 0, false)
	if err != nil {
		return "", err
	}

	if c.flags&AllowShell == 0 && c.flags&AllowSubproc == 0 {
		return open + expanded + close, nil
	}

	runner := c.runner
	if runner == nil {
		runner = defaultRunner
	}
	useShell := c.flags&AllowShell != 0
	res, err := runner.Run(expanded, useShell, c.timeout, c.vars)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(res, "\r\n"), nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
