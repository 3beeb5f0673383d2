package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPrefix(t *testing.T) {
	tests := []struct {
		glob, text string
		which      MatchLen
		want       int
	}{
		{"", "hello", Shortest, 0},
		{"", "hello", Longest, 0},
		{"h*", "hello", Shortest, 1},
		{"h*", "hello", Longest, 5},
		{"*o", "hello", Shortest, 5},
		{"*l", "hello", Longest, 4},
		{"h?l", "hello", Shortest, 3},
		{"h?l", "help", Shortest, 3},
		{"[hH]e*", "hello", Longest, 5},
		{"[!h]*", "hello", Shortest, -1},
		{"x*", "hello", Shortest, -1},
	}
	for _, tt := range tests {
		got := MatchPrefix(tt.glob, tt.text, tt.which)
		assert.Equal(t, tt.want, got, "MatchPrefix(%q, %q, %v)", tt.glob, tt.text, tt.which)
	}
}

func TestMatchSuffix(t *testing.T) {
	tests := []struct {
		glob, text string
		which      MatchLen
		want       int
	}{
		{"", "hello", Shortest, 0},
		{"*lo", "hello", Shortest, 2},
		{"*lo", "hello", Longest, 5},
		{"l*", "hello", Longest, 3},
		{"[lo]*", "hello", Longest, 3},
		{"?o", "hello", Shortest, 2},
	}
	for _, tt := range tests {
		got := MatchSuffix(tt.glob, tt.text, tt.which)
		assert.Equal(t, tt.want, got, "MatchSuffix(%q, %q, %v)", tt.glob, tt.text, tt.which)
	}
}

func TestMatchClassRange(t *testing.T) {
	assert.True(t, matchClass("a-z", 'm'))
	assert.False(t, matchClass("a-z", 'M'))
	assert.True(t, matchClass("!a-z", 'M'))
}

func TestMatchPrefixGlobStar(t *testing.T) {
	assert.Equal(t, len("anything"), MatchPrefix("*", "anything", Longest))
	assert.Equal(t, 0, MatchPrefix("*", "anything", Shortest))
}
