package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"lessonforge/internal/domain"
	"lessonforge/internal/logger"
	"lessonforge/internal/retry"
)

// PronunciationService evaluates a recorded clip against a target phrase and
// normalizes the model's verdict into a stable shape.
type PronunciationService interface {
	Evaluate(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*domain.PronunciationResult, error)
}

type pronunciationServiceImpl struct {
	scorer domain.PronunciationScorer
	logger *zap.Logger
}

func NewPronunciationService(scorer domain.PronunciationScorer) PronunciationService {
	return &pronunciationServiceImpl{
		scorer: scorer,
		logger: logger.Get(),
	}
}

// Evaluate scores the clip and post-processes the raw result: every score is
// clamped into [0,100] and the word feedback list is rebuilt so it covers
// each word of the target phrase exactly once, in phrase order.
func (s *pronunciationServiceImpl) Evaluate(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*domain.PronunciationResult, error) {
	if len(audio) == 0 {
		return nil, domain.NewValidationError("audio recording is required")
	}
	if strings.TrimSpace(targetPhrase) == "" {
		return nil, domain.NewValidationError("target phrase is required")
	}

	raw, err := retry.Do(ctx, retry.DefaultConfig, func(ctx context.Context) (*domain.PronunciationResult, error) {
		return s.scorer.ScorePronunciation(ctx, audio, mimeType, targetPhrase)
	})
	if err != nil {
		return nil, err
	}

	result := &domain.PronunciationResult{
		OverallScore:      clampScore(raw.OverallScore),
		AccuracyScore:     clampScore(raw.AccuracyScore),
		FluencyScore:      clampScore(raw.FluencyScore),
		CompletenessScore: clampScore(raw.CompletenessScore),
		Feedback:          raw.Feedback,
		WordFeedback:      alignWordFeedback(targetPhrase, raw.WordFeedback),
	}
	return result, nil
}

// alignWordFeedback rebuilds the word list against the target phrase. Each
// phrase word is matched case-insensitively against the model's entries,
// consuming each entry at most once so repeated words pair up in order. Words
// the model skipped come back as incorrect with a zero score.
func alignWordFeedback(targetPhrase string, reported []domain.WordFeedback) []domain.WordFeedback {
	words := strings.Fields(targetPhrase)
	used := make([]bool, len(reported))
	out := make([]domain.WordFeedback, 0, len(words))

	for _, word := range words {
		matched := false
		for i, fb := range reported {
			if used[i] || !strings.EqualFold(strings.TrimSpace(fb.Word), word) {
				continue
			}
			used[i] = true
			out = append(out, domain.WordFeedback{
				Word:   word,
				Status: normalizeWordStatus(fb.Status),
				Score:  clampScore(fb.Score),
			})
			matched = true
			break
		}
		if !matched {
			out = append(out, domain.WordFeedback{
				Word:   word,
				Status: domain.WordIncorrect,
				Score:  0,
			})
		}
	}
	return out
}

func normalizeWordStatus(s domain.WordStatus) domain.WordStatus {
	switch s {
	case domain.WordCorrect, domain.WordPartial, domain.WordIncorrect:
		return s
	}
	return domain.WordIncorrect
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
