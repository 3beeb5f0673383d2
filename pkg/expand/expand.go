package expand

import "strings"

// Expand is the package's entry point: detect which dialect a raw value
// is written in, then run ExpandValue under that dialect. pkg/dotenv's
// line processor detects the dialect itself (from the whole raw line,
// before the key/value split) and calls ExpandValue directly instead, so
// the two callers share the same quote/expand/unescape sequencing.
func Expand(s string, flags Flags, o Options) (string, error) {
	dialect := DetectDialect(s, o.ExpandChars, o.EscapeChars)
	return ExpandValue(s, dialect, flags, o)
}

// ExpandValue expands value under an already-determined dialect: strip
// its enclosing quote and/or trailing line comment, run the matching
// expansion engine, and finally resolve escape sequences in the result.
//
// Quote-stripping and comment-cutting are one pass (Unquote) because
// the underlying scan needs to track escape and quote state across both
// at once — a comment cutter inside a quoted region doesn't cut, and an
// escaped quote doesn't close. Unescape runs last, after expansion, so
// that an escape pair produced as a side effect of scanning (an escaped
// "$" that survived an engine's scan verbatim) still gets resolved
// exactly once rather than before the value it might be guarding against
// premature expansion.
func ExpandValue(value string, dialect Dialect, flags Flags, o Options) (string, error) {
	v := value
	hardQuoted := false
	if flags&(RemoveQuotes|RemoveLineComment) != 0 {
		cutters := ""
		if flags&RemoveLineComment != 0 {
			cutters = o.cutterChars()
		}
		unquoted, info, err := Unquote(value, o.stripSpaces(), string(dialect.EscapeChar), string(dialect.ExpandChar), o.hardQuotes(), cutters)
		if err != nil {
			return "", err
		}
		if flags&RemoveQuotes != 0 || info.QuoteType == NoQuote {
			v = unquoted
		}
		// A value entirely wrapped in a hard quote (single quotes by
		// default) is fully literal once that quote is stripped: the
		// protection the quote gave isn't something the expansion
		// engine can still honor on a string that no longer carries
		// the quote marks, so skip the engine rather than letting
		// $NAME inside a '...'-quoted value expand after all.
		hardQuoted = flags&RemoveQuotes != 0 && flags&SkipSingleQuoted != 0 &&
			info.QuoteType == SingleQuote && strings.ContainsRune(o.hardQuotes(), '\'')
	}

	if hardQuoted {
		return v, nil
	}

	var out string
	var err error
	if dialect.ExpandChar == SymmetricExpand {
		out, err = ExpandSymmetric(v, flags, o)
	} else {
		out, err = ExpandPOSIX(v, flags, o)
	}
	if err != nil {
		return "", err
	}

	if flags&Unescape != 0 {
		out, err = Unescape(out, dialect.EscapeChar)
		if err != nil {
			return "", err
		}
	}
	return out, nil
}
