package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "long titl…", truncate("long title here", 10))
}

func TestTruncate_MultibyteTitle(t *testing.T) {
	// Cutting on bytes would split a rune and emit invalid UTF-8.
	got := truncate("Çölde kuyu açma kampanyası", 10)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 10, len([]rune(got)))
	assert.Equal(t, "Çölde kuy…", got)
}
