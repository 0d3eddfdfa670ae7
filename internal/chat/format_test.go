package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single line", "hello", "[auto] hello"},
		{"multi line", "a\nb", "[auto]\na\nb"},
		{"trailing newline", "done\n", "[auto]\ndone\n"},
		{"empty", "", "[auto] "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMessage(tt.input))
		})
	}
}

func TestCodeQuote(t *testing.T) {
	assert.Equal(t, "`@{}`", codeQuote("@{}"))
	assert.Equal(t, "`@{}`", codeQuote("`@{}`"))
	assert.Equal(t, "``", codeQuote("```"))
}

func TestFormatPing(t *testing.T) {
	names := map[int]string{1: "Jane Doe", 2: "  spaced  out "}

	assert.Equal(t, "@JaneDoe", formatPing("@{}", "@@{}", 1, names))
	assert.Equal(t, "@spacedout", formatPing("@{}", "@@{}", 2, names))
	assert.Equal(t, "@@3", formatPing("@{}", "@@{}", 3, names))
	assert.Equal(t, "{JaneDoe|JaneDoe}", formatPing("{{}|{}}", "", 1, names))
}

func TestUserIDSet_Contains(t *testing.T) {
	set := newUserIDSet([]int{4, 8, 8})

	assert.Len(t, set, 2)
	assert.True(t, set.Contains(4))
	assert.False(t, set.Contains(5))
	assert.False(t, UserIDSet(nil).Contains(4))
}
