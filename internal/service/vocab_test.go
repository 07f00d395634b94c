package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleVocabulary(t *testing.T) {
	t.Run("EmptyInputReturnsPlaceholder", func(t *testing.T) {
		assert.Equal(t, MixedVocabulary, SampleVocabulary("", 15))
		assert.Equal(t, MixedVocabulary, SampleVocabulary(" , ,, ", 15))
	})

	t.Run("SmallInputKeepsEveryWord", func(t *testing.T) {
		got := SampleVocabulary("airport, passport, luggage", 15)
		words := splitWords(got)
		assert.ElementsMatch(t, []string{"airport", "passport", "luggage"}, words)
	})

	t.Run("LargeInputIsBounded", func(t *testing.T) {
		parts := make([]string, 40)
		for i := range parts {
			parts[i] = string(rune('a' + i%26))
		}
		got := SampleVocabulary(strings.Join(parts, ","), 15)
		assert.Len(t, splitWords(got), 15)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		got := SampleVocabulary("  map ,  compass  ", 15)
		for _, w := range splitWords(got) {
			assert.Equal(t, strings.TrimSpace(w), w)
		}
	})
}

func splitWords(joined string) []string {
	raw := strings.Split(joined, ",")
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		out = append(out, strings.TrimSpace(w))
	}
	return out
}
