package service

import (
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"lessonforge/internal/domain"
	"lessonforge/internal/logger"
)

// RepairSections validates and repairs freshly generated sections before any
// enrichment runs. It is a pure transform: the input is never mutated and the
// returned slice is a deep copy with the invariants restored:
//
//   - listening sections never carry a reading passage
//   - for every option-bearing question, correctAnswer is byte-identical to
//     one of the options
//   - listening options are shuffled per question, with the answer re-matched
//     against the new order
func RepairSections(sections []domain.Section) []domain.Section {
	log := logger.Get()
	out := make([]domain.Section, len(sections))

	for i, section := range sections {
		repaired := section
		repaired.Questions = make([]domain.Question, len(section.Questions))
		copy(repaired.Questions, section.Questions)

		if repaired.Type == domain.ExerciseListening && repaired.ContextText != "" {
			log.Warn("dropping context text from listening section",
				zap.String("sectionId", repaired.ID))
			repaired.ContextText = ""
		}

		for j := range repaired.Questions {
			q := &repaired.Questions[j]
			q.Options = append([]string(nil), q.Options...)

			if repaired.Type.HasOptions() {
				repairAnswer(repaired.ID, q, log)
			}
			if repaired.Type == domain.ExerciseListening {
				rand.Shuffle(len(q.Options), func(a, b int) {
					q.Options[a], q.Options[b] = q.Options[b], q.Options[a]
				})
				repairAnswer(repaired.ID, q, log)
			}
		}

		out[i] = repaired
	}
	return out
}

// repairAnswer rewrites q.CorrectAnswer so it exactly equals one option.
// Match order: normalized exact match, then one directional prefix match,
// then fall back to the first option.
func repairAnswer(sectionID string, q *domain.Question, log *zap.Logger) {
	if len(q.Options) == 0 || q.CorrectAnswer == "" {
		return
	}

	answer := normalize(q.CorrectAnswer)
	for _, opt := range q.Options {
		if normalize(opt) == answer {
			q.CorrectAnswer = opt
			return
		}
	}

	for _, opt := range q.Options {
		norm := normalize(opt)
		if strings.HasPrefix(norm, answer) || strings.HasPrefix(answer, norm) {
			log.Warn("repaired correct answer via prefix match",
				zap.String("sectionId", sectionID),
				zap.String("answer", q.CorrectAnswer),
				zap.String("option", opt))
			q.CorrectAnswer = opt
			return
		}
	}

	// Lossy last resort: keep the invariant intact even when the model's
	// intended answer has no textual match among the options.
	log.Warn("no matching option for correct answer, falling back to first option",
		zap.String("sectionId", sectionID),
		zap.String("answer", q.CorrectAnswer),
		zap.String("fallback", q.Options[0]))
	q.CorrectAnswer = q.Options[0]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
