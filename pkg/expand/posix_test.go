package expand

import (
	"errors"
	"testing"
)

func opts(vars map[string]string, args ...string) Options {
	return Options{Vars: vars, Args: args, PID: 4242}
}

func TestExpandPOSIXPlainVar(t *testing.T) {
	got, err := ExpandPOSIX("hello $NAME!", DefaultFlags, opts(map[string]string{"NAME": "world"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world!" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXBraces(t *testing.T) {
	got, err := ExpandPOSIX("${NAME}", DefaultFlags, opts(map[string]string{"NAME": "world"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "world" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXPositionalArgs(t *testing.T) {
	got, err := ExpandPOSIX("$1-$2", DefaultFlags, opts(nil, "a", "b"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "a-b" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXPositionalArgOutOfRange(t *testing.T) {
	got, err := ExpandPOSIX("$9", DefaultFlags, opts(nil, "a"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "$9" {
		t.Errorf("got %q, want literal $9", got)
	}
}

func TestExpandPOSIXPID(t *testing.T) {
	got, err := ExpandPOSIX("pid=$$", DefaultFlags, opts(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got != "pid=4242" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXLength(t *testing.T) {
	got, err := ExpandPOSIX("${#NAME}", DefaultFlags, opts(map[string]string{"NAME": "hello"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "5" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXDefaultColonDash(t *testing.T) {
	got, err := ExpandPOSIX("${NAME:-fallback}", DefaultFlags, opts(map[string]string{"NAME": ""}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "fallback" {
		t.Errorf("got %q", got)
	}

	got, err = ExpandPOSIX("${NAME:-fallback}", DefaultFlags, opts(map[string]string{"NAME": "set"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "set" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXDashUnsetOnly(t *testing.T) {
	got, err := ExpandPOSIX("${NAME-fallback}", DefaultFlags, opts(map[string]string{"NAME": ""}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty (NAME is set, just empty)", got)
	}
}

func TestExpandPOSIXPlus(t *testing.T) {
	got, err := ExpandPOSIX("${NAME:+alt}", DefaultFlags, opts(map[string]string{"NAME": "x"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "alt" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXErrorForm(t *testing.T) {
	_, err := ExpandPOSIX("${NAME:?is required}", DefaultFlags, opts(nil))
	if err == nil {
		t.Fatal("expected error")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != ErrMissingVariable {
		t.Errorf("got %v, want ErrMissingVariable", err)
	}
}

func TestExpandPOSIXAssignForm(t *testing.T) {
	vars := map[string]string{}
	got, err := ExpandPOSIX("${NAME:=def}", DefaultFlags, opts(vars))
	if err != nil {
		t.Fatal(err)
	}
	if got != "def" || vars["NAME"] != "def" {
		t.Errorf("got %q, vars=%v", got, vars)
	}
}

func TestExpandPOSIXSubstring(t *testing.T) {
	vars := map[string]string{"NAME": "hello world"}
	got, err := ExpandPOSIX("${NAME:6}", DefaultFlags, opts(vars))
	if err != nil {
		t.Fatal(err)
	}
	if got != "world" {
		t.Errorf("got %q", got)
	}

	got, err = ExpandPOSIX("${NAME:0:5}", DefaultFlags, opts(vars))
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}

	got, err = ExpandPOSIX("${NAME:-5}", DefaultFlags, opts(vars))
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world" {
		t.Errorf("got %q, want NAME unchanged (:- is the default operator, not substring)", got)
	}
}

func TestExpandPOSIXPrefixSuffixRemoval(t *testing.T) {
	vars := map[string]string{"NAME": "aaabbbccc"}
	tests := []struct {
		expr, want string
	}{
		{"${NAME#a*b}", "bbccc"},
		{"${NAME##a*b}", "ccc"},
		{"${NAME%c*c}", "aaabbbc"},
		{"${NAME%%b*c}", "aaa"},
	}
	for _, tt := range tests {
		got, err := ExpandPOSIX(tt.expr, DefaultFlags, opts(vars))
		if err != nil {
			t.Fatalf("%s: %v", tt.expr, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestExpandPOSIXPatternSubstitution(t *testing.T) {
	vars := map[string]string{"NAME": "abcabc"}
	tests := []struct {
		expr, want string
	}{
		{"${NAME/abc/X}", "Xabc"},
		{"${NAME//abc/X}", "XX"},
		{"${NAME/#abc/X}", "Xabc"},
		{"${NAME/%abc/X}", "abcX"},
	}
	for _, tt := range tests {
		got, err := ExpandPOSIX(tt.expr, DefaultFlags, opts(vars))
		if err != nil {
			t.Fatalf("%s: %v", tt.expr, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestExpandPOSIXEmptyPatternGlobal(t *testing.T) {
	got, err := ExpandPOSIX("${NAME///X}", DefaultFlags, opts(map[string]string{"NAME": "abc"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "XaXbXcX" {
		t.Errorf("got %q, want XaXbXcX", got)
	}
}

func TestExpandPOSIXAnchoredGlobalRepeat(t *testing.T) {
	// Each application strips exactly one leading "0"; since the
	// replacement text is empty, the next leading character is exposed
	// and can match again, so the loop keeps making progress until the
	// leading zeros are gone.
	got, err := ExpandPOSIX("${NAME//#0/}", DefaultFlags, opts(map[string]string{"NAME": "0001"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "1" {
		t.Errorf("got %q, want 1", got)
	}
}

func TestExpandPOSIXNestedBraces(t *testing.T) {
	vars := map[string]string{"A": "set", "B": "resolved"}
	got, err := ExpandPOSIX("${A:+${B}}", DefaultFlags, opts(vars))
	if err != nil {
		t.Fatal(err)
	}
	if got != "resolved" {
		t.Errorf("got %q, want resolved", got)
	}
}

func TestExpandPOSIXDoubleQuoteKeepsExpansion(t *testing.T) {
	got, err := ExpandPOSIX(`a "$X" b`, DefaultFlags, opts(map[string]string{"X": "val"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "a val b" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXSingleQuoteOpaque(t *testing.T) {
	got, err := ExpandPOSIX(`a '$X' b`, DefaultFlags, opts(map[string]string{"X": "val"}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "a $X b" {
		t.Errorf("got %q, want literal $X inside single quotes", got)
	}
}

func TestExpandPOSIXCommandSubstDisallowedIsVerbatim(t *testing.T) {
	got, err := ExpandPOSIX("result: $(echo hi)", Flags(0), opts(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got != "result: $(echo hi)" {
		t.Errorf("got %q", got)
	}
}

func TestExpandPOSIXCommandSubstBacktickDisallowedIsVerbatim(t *testing.T) {
	got, err := ExpandPOSIX("result: `echo hi`", Flags(0), opts(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got != "result: `echo hi`" {
		t.Errorf("got %q, want original backtick syntax preserved", got)
	}
}

func TestExpandPOSIXRecursionLimit(t *testing.T) {
	o := opts(map[string]string{})
	o.MaxDepth = 3
	_, err := ExpandPOSIX("${A:-${B:-${C:-${D:-${E:-deep}}}}}", DefaultFlags, o)
	if err == nil {
		t.Fatal("expected recursion limit error")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != ErrRecursionLimitExceeded {
		t.Errorf("got %v, want ErrRecursionLimitExceeded", err)
	}
}

func TestExpandPOSIXUnterminatedBrace(t *testing.T) {
	_, err := ExpandPOSIX("${NAME", DefaultFlags, opts(nil))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestExpandPOSIXDanglingEscape(t *testing.T) {
	_, err := ExpandPOSIX(`abc\`, DefaultFlags, opts(nil))
	if err == nil {
		t.Fatal("expected error")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != ErrDanglingEscape {
		t.Errorf("got %v, want ErrDanglingEscape", err)
	}
}
