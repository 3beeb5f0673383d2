package expand

import "testing"

func TestDetectDialectDefaultsToPosix(t *testing.T) {
	d := DetectDialect("plain text, no metacharacters", "", "")
	if d != Posix {
		t.Errorf("got %+v, want Posix", d)
	}
}

func TestDetectDialectPosix(t *testing.T) {
	d := DetectDialect(`FOO=$BAR\n`, "", "")
	if d.ExpandChar != '$' || d.EscapeChar != '\\' {
		t.Errorf("got %+v", d)
	}
}

func TestDetectDialectSymmetric(t *testing.T) {
	d := DetectDialect(`FOO=%BAR%^n`, "", "")
	if d.ExpandChar != '%' || d.EscapeChar != '^' {
		t.Errorf("got %+v", d)
	}
}

func TestDetectDialectSkipsQuotedRegion(t *testing.T) {
	d := DetectDialect(`FOO="no $ here" then %REAL%`, "", "")
	if d.ExpandChar != '%' {
		t.Errorf("expand char = %q, want %%", d.ExpandChar)
	}
}

func TestDetectDialectSingleQuoteOpaque(t *testing.T) {
	// Inside single quotes, even a backslash is literal, not an escape
	// introducer, so it must not be picked up as the escape character.
	d := DetectDialect(`FOO='a\b' ^c`, "", "")
	if d.EscapeChar != '^' {
		t.Errorf("escape char = %q, want ^", d.EscapeChar)
	}
}
