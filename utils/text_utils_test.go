package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateSlice(t *testing.T) {
	assert.Equal(t, []string{"sleep", "work"}, DeduplicateSlice([]string{" sleep", "work", "sleep ", ""}))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 5, WordCount("Studying all night\nfor  the"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 200))
	long := strings.Repeat("a", 250)
	got := Truncate(long, 200)
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)
	assert.Equal(t, "çaf...", Truncate("çafé au lait", 3))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "Calm down now", CollapseSpaces("  Calm \n down\tnow "))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 2, Min(2, 3))
	assert.Equal(t, -1, Min(4, -1))
}

func TestContentID(t *testing.T) {
	assert.Len(t, ContentID("https://example.com/a"), 32)
	assert.Equal(t, ContentID("https://Example.com/a "), ContentID("https://example.com/a"))
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", CalculateMD5("hello"))
}
