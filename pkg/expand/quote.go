package expand

import "strings"

// Quote/Unquote Processor, grounded in original envara's Env.unquote
// (original_source/src/envara/env.py): strip an optional enclosing
// quote, detect which dialect characters are active in the remainder,
// and optionally stop at an unquoted line-comment cutter.
//
// Unquote walks the input once, tracking escape state so that an
// escaped quote or cutter doesn't terminate early, and honors
// hardQuotes (quote characters, default "'") whose content is opaque
// to the escape character entirely.

// Unquote removes an enclosing quote (if present), determines the
// first unescaped/unquoted expand and escape characters, and
// optionally truncates at an unquoted cutter character. It returns the
// unquoted result plus the ParseInfo describing what was found. For
// unquoted input with stripSpaces the result is right-trimmed, except
// when a cutter ended it: the whitespace before a cut comment is kept.
//
// escapes/expands/cutters list candidate characters in priority order;
// empty strings fall back to the POSIX defaults ("\\", "$", "#").
// hardQuotes lists quotes whose content ignores escaping entirely;
// empty defaults to "'".
func Unquote(input string, stripSpaces bool, escapes, expands, hardQuotes, cutters string) (string, ParseInfo, error) {
	info := ParseInfo{Input: input, QuoteType: NoQuote}

	if input == "" {
		return "", info, nil
	}

	if escapes == "" {
		escapes = string(PosixEscape)
	}
	if expands == "" {
		expands = string(PosixExpand)
	}
	if hardQuotes == "" {
		hardQuotes = "'"
	}

	result := input
	if stripSpaces {
		result = strings.TrimLeft(result, " \t\r\n\v\f")
	}
	if result == "" {
		return "", info, nil
	}

	runes := []rune(result)
	quote := runes[0]
	switch quote {
	case '"':
		info.QuoteType = DoubleQuote
	case '\'':
		info.QuoteType = SingleQuote
	default:
		quote = 0
	}

	isQuoted := info.QuoteType != NoQuote
	hard := isQuoted && strings.ContainsRune(hardQuotes, quote)
	if hard {
		escapes = ""
	}

	hasCutters := cutters != ""
	isEscaped := false
	endPos := 0

	for idx, c := range runes {
		endPos = idx + 1

		if idx == 0 && isQuoted {
			continue
		}

		if strings.ContainsRune(escapes, c) {
			info.EscapeChar = c
			isEscaped = !isEscaped
			continue
		}

		if c == quote && quote != 0 {
			if hard {
				isQuoted = false
				endPos--
				goto done
			}
			if isEscaped {
				isEscaped = false
				continue
			}
			if isQuoted {
				isQuoted = false
				endPos--
				goto done
			}
			continue
		}

		if strings.ContainsRune(expands, c) {
			if info.ExpandChar == 0 && !isEscaped {
				info.ExpandChar = c
			}
		}

		if !isQuoted && !isEscaped {
			if hasCutters && strings.ContainsRune(cutters, c) {
				info.CutterChar = c
				endPos--
				goto done
			}
		}

		isEscaped = false
	}

done:
	if isEscaped {
		return "", info, newError(ErrDanglingEscape, "dangling escape", input)
	}
	if isQuoted {
		return "", info, newError(ErrUnterminatedQuote, "unterminated quoted string", input)
	}

	var begPos int
	if info.QuoteType == NoQuote {
		begPos = 0
	} else {
		begPos = 1
	}
	if begPos > len(runes) {
		begPos = len(runes)
	}
	if endPos > len(runes) {
		endPos = len(runes)
	}
	if endPos < begPos {
		endPos = begPos
	}
	info.Result = string(runes[begPos:endPos])

	if stripSpaces && info.QuoteType == NoQuote && info.CutterChar == 0 {
		info.Result = strings.TrimRight(info.Result, " \t\r\n\v\f")
	}

	return info.Result, info, nil
}
