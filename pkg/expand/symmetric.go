package expand

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Symmetric Expansion Engine: the %-delimited dialect, with its own
// escape character (^) and no command substitution. This whole
// dialect — including the Windows-batch-flavored %~MODS N path
// modifiers — has no original_source/ analogue (see DESIGN.md); it is
// built in the same left-to-right scanning style as ExpandPOSIX.
func ExpandSymmetric(s string, flags Flags, o Options) (string, error) {
	vars := o.Vars
	args := o.Args
	skipVars := flags&SkipEnvVars != 0

	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == SymmetricEscape:
			if i+1 >= len(runes) {
				return "", newError(ErrDanglingEscape, "escape character at end of input", s)
			}
			b.WriteRune(r)
			b.WriteRune(runes[i+1])
			i += 2

		case r != SymmetricExpand:
			b.WriteRune(r)
			i++

		case i+1 >= len(runes):
			b.WriteRune(r)
			i++

		case runes[i+1] == SymmetricExpand:
			b.WriteRune(SymmetricExpand)
			i += 2

		case runes[i+1] == '*':
			b.WriteString(strings.Join(args, " "))
			i += 2

		case runes[i+1] == '~':
			mods, digit, next, ok := parsePathMods(runes, i+2)
			if !ok {
				b.WriteRune(r)
				i++
				continue
			}
			n := int(digit - '0')
			arg := ""
			if n-1 >= 0 && n-1 < len(args) {
				arg = args[n-1]
			}
			b.WriteString(applyPathMods(mods, arg))
			i = next

		case runes[i+1] >= '1' && runes[i+1] <= '9':
			n := int(runes[i+1] - '0')
			if n-1 < len(args) {
				b.WriteString(args[n-1])
			} else {
				b.WriteRune(r)
				b.WriteRune(runes[i+1])
			}
			i += 2

		case isNameStart(runes[i+1]):
			end := i + 2
			for end < len(runes) && runes[end] != SymmetricExpand {
				end++
			}
			if end >= len(runes) {
				b.WriteRune(r)
				i++
				continue
			}
			body := string(runes[i+1 : end])
			out, err := expandSymmetricName(body, vars, skipVars)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
			i = end + 1

		default:
			b.WriteRune(r)
			i++
		}
	}
	return b.String(), nil
}

// parsePathMods reads modifier letters starting at pos, stopping at the
// first decimal digit (the argument index). Unrecognized letters are
// skipped rather than aborting the parse, so known modifiers before and
// after an unknown one still apply (e.g. "qn1" behaves like "n1").
// Returns false if the input ends before a digit 1-9, or if any other
// non-letter character comes first.
func parsePathMods(runes []rune, pos int) (mods string, digit rune, next int, ok bool) {
	var b strings.Builder
	for pos < len(runes) {
		r := runes[pos]
		if r >= '1' && r <= '9' {
			return b.String(), r, pos + 1, true
		}
		if !isLetter(r) {
			return "", 0, 0, false
		}
		if strings.ContainsRune("dpnxsf", r) {
			b.WriteRune(r)
		}
		pos++
	}
	return "", 0, 0, false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func applyPathMods(mods, arg string) string {
	if mods == "s" {
		return arg
	}
	var b strings.Builder
	for _, m := range mods {
		switch m {
		case 'd':
			b.WriteString(filepath.VolumeName(arg))
		case 'p':
			dir := filepath.Dir(arg)
			if dir != "." && dir != "" {
				b.WriteString(dir)
				b.WriteString(string(filepath.Separator))
			}
		case 'n':
			base := filepath.Base(arg)
			b.WriteString(strings.TrimSuffix(base, filepath.Ext(base)))
		case 'x':
			b.WriteString(filepath.Ext(arg))
		case 'f':
			if full, err := filepath.Abs(arg); err == nil {
				b.WriteString(full)
			} else {
				b.WriteString(arg)
			}
		case 's':
			// Identity alongside other letters contributes nothing
			// extra; "s" alone is handled above.
		}
	}
	return b.String()
}

// expandSymmetricName evaluates the content between a pair of %...%:
// either a bare NAME or NAME:~start[,length].
func expandSymmetricName(body string, vars map[string]string, skipVars bool) (string, error) {
	if skipVars {
		return "%" + body + "%", nil
	}
	name, spec, hasSpec := strings.Cut(body, ":")
	value := vars[name]
	if !hasSpec {
		return value, nil
	}
	if !strings.HasPrefix(spec, "~") {
		return "", newError(ErrBadSubstitution, "malformed symmetric substring expansion", "%"+body+"%")
	}
	spec = spec[1:]
	startStr, lenStr, hasLen := strings.Cut(spec, ",")

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return "", newError(ErrBadSubstitution, "non-numeric substring start", startStr)
	}

	runes := []rune(value)
	n := len(runes)
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
		length, err := strconv.Atoi(strings.TrimSpace(lenStr))
		if err != nil {
			return "", newError(ErrBadSubstitution, "non-numeric substring length", lenStr)
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
