package service

import (
	"math/rand"
	"strings"
)

// MixedVocabulary is the placeholder used when the teacher supplied no
// vocabulary of their own.
const MixedVocabulary = "Mixed vocabulary"

// SampleVocabulary splits a comma separated vocabulary string, drops empty
// entries and returns at most sampleSize words joined back with commas. The
// selection is a uniform random sample so repeated generations with a large
// word bank produce different worksheets.
func SampleVocabulary(raw string, sampleSize int) string {
	words := make([]string, 0)
	for _, w := range strings.Split(raw, ",") {
		w = strings.TrimSpace(w)
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return MixedVocabulary
	}

	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	if sampleSize > 0 && len(words) > sampleSize {
		words = words[:sampleSize]
	}
	return strings.Join(words, ", ")
}
