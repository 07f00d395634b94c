package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lessonforge/internal/domain"
)

func grammarSection(questions ...domain.Question) domain.Section {
	return domain.Section{
		ID:        "sec-grammar",
		Type:      domain.ExerciseGrammar,
		Title:     "Grammar",
		Questions: questions,
	}
}

func TestRepairSections_CanonicalizesAnswer(t *testing.T) {
	sections := []domain.Section{grammarSection(domain.Question{
		QuestionText:  "She ___ to work every day.",
		Options:       []string{"goes", "go", "going", "gone"},
		CorrectAnswer: "  GOES ",
	})}

	out := RepairSections(sections)

	assert.Equal(t, "goes", out[0].Questions[0].CorrectAnswer)
}

func TestRepairSections_PrefixMatch(t *testing.T) {
	t.Run("OptionStartsWithAnswer", func(t *testing.T) {
		sections := []domain.Section{grammarSection(domain.Question{
			Options:       []string{"went away", "goes", "going", "gone"},
			CorrectAnswer: "went",
		})}
		out := RepairSections(sections)
		assert.Equal(t, "went away", out[0].Questions[0].CorrectAnswer)
	})

	t.Run("AnswerStartsWithOption", func(t *testing.T) {
		sections := []domain.Section{grammarSection(domain.Question{
			Options:       []string{"walk", "run", "swim", "fly"},
			CorrectAnswer: "walking",
		})}
		out := RepairSections(sections)
		assert.Equal(t, "walk", out[0].Questions[0].CorrectAnswer)
	})
}

func TestRepairSections_FallbackToFirstOption(t *testing.T) {
	sections := []domain.Section{grammarSection(domain.Question{
		Options:       []string{"red", "blue", "green", "yellow"},
		CorrectAnswer: "purple",
	})}

	out := RepairSections(sections)

	assert.Equal(t, "red", out[0].Questions[0].CorrectAnswer)
}

func TestRepairSections_AnswerAlwaysAmongOptions(t *testing.T) {
	sections := []domain.Section{
		grammarSection(
			domain.Question{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "B"},
			domain.Question{Options: []string{"one", "two", "three", "four"}, CorrectAnswer: "tw"},
			domain.Question{Options: []string{"x", "y", "z", "w"}, CorrectAnswer: "nothing"},
		),
		{
			ID:   "sec-listening",
			Type: domain.ExerciseListening,
			Questions: []domain.Question{
				{Options: []string{"at the gate", "in the lounge", "on the plane", "at customs"}, CorrectAnswer: "At the gate"},
			},
		},
	}

	out := RepairSections(sections)

	for _, section := range out {
		for _, q := range section.Questions {
			assert.Contains(t, q.Options, q.CorrectAnswer,
				"section %s must keep the answer among the options", section.ID)
		}
	}
}

func TestRepairSections_ListeningShuffleIsPermutation(t *testing.T) {
	original := []string{"taxi", "bus", "train", "ferry"}
	sections := []domain.Section{{
		ID:   "sec-listening",
		Type: domain.ExerciseListening,
		Questions: []domain.Question{
			{Options: append([]string(nil), original...), CorrectAnswer: "train"},
		},
	}}

	out := RepairSections(sections)
	q := out[0].Questions[0]

	assert.ElementsMatch(t, original, q.Options)
	assert.Contains(t, q.Options, q.CorrectAnswer)
	assert.Equal(t, "train", q.CorrectAnswer)
}

func TestRepairSections_StripsListeningContextText(t *testing.T) {
	sections := []domain.Section{{
		ID:          "sec-listening",
		Type:        domain.ExerciseListening,
		ContextText: "A passage that should not be here.",
		Questions: []domain.Question{
			{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		},
	}}

	out := RepairSections(sections)

	assert.Empty(t, out[0].ContextText)
}

func TestRepairSections_DoesNotMutateInput(t *testing.T) {
	input := []domain.Section{{
		ID:          "sec-listening",
		Type:        domain.ExerciseListening,
		ContextText: "stray passage",
		Questions: []domain.Question{
			{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "B"},
		},
	}}

	_ = RepairSections(input)

	assert.Equal(t, "stray passage", input[0].ContextText)
	assert.Equal(t, "B", input[0].Questions[0].CorrectAnswer)
	assert.Equal(t, []string{"a", "b", "c", "d"}, input[0].Questions[0].Options)
}

func TestRepairSections_SpeakingSectionsUntouched(t *testing.T) {
	sections := []domain.Section{{
		ID:   "sec-speaking",
		Type: domain.ExerciseSpeaking,
		Questions: []domain.Question{
			{QuestionText: "Order a coffee politely.", TargetPhrase: "Could I have a coffee, please?"},
		},
	}}

	out := RepairSections(sections)

	assert.Empty(t, out[0].Questions[0].Options)
	assert.Empty(t, out[0].Questions[0].CorrectAnswer)
}
