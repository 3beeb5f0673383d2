package dotenv

import (
	"os"
	"regexp"
	"strings"

	"github.com/rcarmo/envara/pkg/expand"
)

// Line Processor & Env Applier, grounded in original envara's
// dotenv.py DotEnv.load_from_str/read_text: concatenate file
// contents, split into lines, and for each line detect dialect, cut any
// trailing comment, split key from value, unquote/expand the value, and
// write the result into the target vars map.

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type lineAction int

const (
	actionSkip lineAction = iota
	actionAssign
	actionDelete
)

// ReadText concatenates the contents of files (newline-joined), skipping
// any already recorded in acc (nil disables dedup entirely) and marking
// newly read ones. A file that can't be read is logged and skipped
// rather than failing the whole load, matching the original's "ignoring
// any issue" read_text behavior.
func ReadText(files []string, acc *Accumulator, logger expand.Logger) (string, error) {
	var parts []string
	for _, f := range files {
		if acc != nil && acc.Seen(f) {
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			logWarn(logger, "dotenv: skipping unreadable file", "path", f, "error", err)
			continue
		}
		if acc != nil {
			acc.Mark(f)
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n"), nil
}

// Load discovers files per do, reads and concatenates their text (via
// acc — pass nil for a one-shot accumulator with no cross-call dedup),
// then applies every line into o.Vars. It returns the concatenated raw
// text, mirroring the original's load() return value.
func Load(do DiscoverOptions, acc *Accumulator, flags expand.Flags, o expand.Options) (string, error) {
	if acc == nil {
		acc = &Accumulator{}
	}
	if do.FileFlags&ResetAccumulated != 0 {
		acc.Reset()
	}

	files, err := Discover(do)
	if err != nil {
		return "", err
	}
	content, err := ReadText(files, acc, o.Logger)
	if err != nil {
		return "", err
	}
	if err := LoadFromString(content, flags, o); err != nil {
		return content, err
	}
	return content, nil
}

// LoadFromString applies every key=value line of data into o.Vars,
// expanding each value under flags/o. A nil o.Vars is a no-op, matching
// expand.Options' "never mutates a nil map" contract.
func LoadFromString(data string, flags expand.Flags, o expand.Options) error {
	if o.Vars == nil {
		return nil
	}
	normalized := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(data)
	for _, line := range strings.Split(normalized, "\n") {
		key, value, action, err := processLine(line, flags, o)
		if err != nil {
			return err
		}
		switch action {
		case actionAssign:
			o.Vars[key] = value
		case actionDelete:
			delete(o.Vars, key)
		}
	}
	return nil
}

// processLine detects a single raw line's dialect, optionally cuts a
// trailing comment, splits it into key and value, and expands the
// value. A malformed line (no '=', or a key that doesn't match
// [A-Za-z_][A-Za-z0-9_]*) yields actionSkip with no error, logged if
// o.Logger is set — only genuine expansion failures (missing required
// variable, bad substitution, subprocess failure) propagate as errors.
//
// A line whose value is entirely empty ("KEY=" with nothing after it)
// deletes KEY from o.Vars instead of assigning the empty string — a
// feature carried over from the original's "if val: ... elif key: del
// environ[key]".
func processLine(line string, flags expand.Flags, o expand.Options) (key, value string, action lineAction, err error) {
	dialect := expand.DetectDialect(line, o.ExpandChars, o.EscapeChars)

	if flags&expand.RemoveLineComment != 0 {
		cutters := o.CutterChars
		if cutters == "" {
			cutters = string(expand.PosixCutter)
		}
		line = expand.CutLineComment(line, cutters, dialect.EscapeChar)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", actionSkip, nil
	}

	rawKey, rawValue, found := splitKeyValue(line)
	if !found {
		logWarn(o.Logger, "dotenv: skipping line with no '='", "line", line)
		return "", "", actionSkip, nil
	}

	key = strings.TrimSpace(rawKey)
	if !keyPattern.MatchString(key) {
		logWarn(o.Logger, "dotenv: skipping line with invalid key", "key", key)
		return "", "", actionSkip, nil
	}

	if rawValue == "" {
		return key, "", actionDelete, nil
	}

	expanded, err := expand.ExpandValue(rawValue, dialect, flags, o)
	if err != nil {
		return "", "", actionSkip, err
	}
	return key, expanded, actionAssign, nil
}

// splitKeyValue finds the first '=' outside a quoted region and not
// escaped by a literal backslash, returning the text before and after
// it. Unlike value expansion, this split always uses '\' as the escape
// character regardless of dialect: a dot-env key never itself contains
// quoting, so this only matters for values that embed a literal '=' a
// dialect-aware scan would otherwise split on by mistake.
func splitKeyValue(line string) (key, value string, ok bool) {
	inQuote := rune(0)
	escaped := false
	for i, c := range line {
		if escaped {
			escaped = false
			continue
		}
		if inQuote != 0 {
			switch {
			case c == inQuote:
				inQuote = 0
			case inQuote == '"' && c == '\\':
				escaped = true
			}
			continue
		}
		switch c {
		case '\'', '"':
			inQuote = c
		case '\\':
			escaped = true
		case '=':
			return line[:i], line[i+1:], true
		}
	}
	return "", "", false
}

func logWarn(l expand.Logger, msg string, args ...any) {
	if l == nil {
		return
	}
	l.Warn(msg, args...)
}
