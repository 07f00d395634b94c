package service

import (
	"fmt"
	"strings"

	"lessonforge/internal/domain"
)

// typeContracts spells out, per exercise type, the structure the model must
// produce. The validator in repair.go depends on these contracts, so any
// change here must be mirrored there.
var typeContracts = map[domain.ExerciseType]string{
	domain.ExerciseGrammar: `- grammar: each question tests the grammar focus in a natural sentence with a blank.
  Provide exactly 4 options that all share the correct answer's part of speech.
  The correctAnswer must be copied verbatim from the options.`,
	domain.ExerciseVocabulary: `- vocabulary: each question asks for the word matching a definition or context.
  Provide exactly 4 single-word options drawn from or related to the vocabulary list.
  Fill imageDescription with a short concrete scene depicting the correct answer.
  The correctAnswer must be copied verbatim from the options.`,
	domain.ExerciseReading: `- reading: write one short passage (4-8 sentences at the requested level) in
  contextText, then comprehension questions about it. Provide exactly 4 options
  per question. The correctAnswer must be copied verbatim from the options.`,
	domain.ExerciseListening: `- listening: each question is a short spoken scenario. Provide exactly 4 short
  options. Do NOT produce contextText for listening sections. Fill
  imageDescription with a scene that will be narrated aloud but never shown as
  text. The correctAnswer must be copied verbatim from the options.`,
	domain.ExerciseSpeaking: `- speaking: each question is an open speaking task. The options array must be
  empty. Set targetPhrase to the exact phrase the student should say and
  pronunciationTips to one or two short pointers.`,
}

// BuildPrompt assembles the generation instruction for one worksheet. The
// vocabulary argument is the already sampled list from SampleVocabulary.
func BuildPrompt(prefs *domain.UserPreferences, vocabulary string) string {
	var b strings.Builder

	b.WriteString("You are an experienced English teacher creating a printable worksheet.\n\n")
	fmt.Fprintf(&b, "Topic: %s\n", orDefault(prefs.Topic, "General English"))
	if prefs.Level != "" {
		fmt.Fprintf(&b, "CEFR level: %s (keep all language strictly at this level)\n", prefs.Level)
	}
	if prefs.GrammarFocus != "" {
		fmt.Fprintf(&b, "Grammar focus: %s\n", prefs.GrammarFocus)
	}
	fmt.Fprintf(&b, "Vocabulary to draw from: %s\n", vocabulary)
	fmt.Fprintf(&b, "Questions per section: %d\n\n", prefs.QuestionCount)

	b.WriteString("Create exactly one section per requested exercise type, in this order:\n")
	for _, t := range prefs.SelectedTypes {
		fmt.Fprintf(&b, "%s\n", typeContracts[t])
	}

	fmt.Fprintf(&b, "\nEvery section must contain exactly %d questions with a clear instruction\n", prefs.QuestionCount)
	b.WriteString("line and a one-sentence explanation per question. Respond with JSON only,\n")
	b.WriteString("matching the response schema exactly.\n")

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
