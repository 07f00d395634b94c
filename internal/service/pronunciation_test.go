package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lessonforge/internal/domain"
)

func TestPronunciationService_Evaluate(t *testing.T) {
	clip := []byte{0x01, 0x02, 0x03}

	t.Run("ClampsScores", func(t *testing.T) {
		scorer := new(MockPronunciationScorer)
		scorer.On("ScorePronunciation", mock.Anything, clip, "audio/webm", "hello world").
			Return(&domain.PronunciationResult{
				OverallScore:      140,
				AccuracyScore:     -5,
				FluencyScore:      88,
				CompletenessScore: 101,
				WordFeedback: []domain.WordFeedback{
					{Word: "hello", Status: domain.WordCorrect, Score: 250},
					{Word: "world", Status: domain.WordPartial, Score: -10},
				},
			}, nil).Once()

		svc := NewPronunciationService(scorer)
		result, err := svc.Evaluate(context.Background(), clip, "audio/webm", "hello world")

		assert.NoError(t, err)
		assert.Equal(t, 100, result.OverallScore)
		assert.Equal(t, 0, result.AccuracyScore)
		assert.Equal(t, 88, result.FluencyScore)
		assert.Equal(t, 100, result.CompletenessScore)
		assert.Equal(t, 100, result.WordFeedback[0].Score)
		assert.Equal(t, 0, result.WordFeedback[1].Score)
	})

	t.Run("PadsMissingWords", func(t *testing.T) {
		scorer := new(MockPronunciationScorer)
		scorer.On("ScorePronunciation", mock.Anything, clip, "audio/webm", "Could I have a coffee").
			Return(&domain.PronunciationResult{
				OverallScore: 70,
				WordFeedback: []domain.WordFeedback{
					{Word: "could", Status: domain.WordCorrect, Score: 95},
					{Word: "coffee", Status: domain.WordPartial, Score: 60},
				},
			}, nil).Once()

		svc := NewPronunciationService(scorer)
		result, err := svc.Evaluate(context.Background(), clip, "audio/webm", "Could I have a coffee")

		assert.NoError(t, err)
		assert.Len(t, result.WordFeedback, 5)
		assert.Equal(t, []domain.WordFeedback{
			{Word: "Could", Status: domain.WordCorrect, Score: 95},
			{Word: "I", Status: domain.WordIncorrect, Score: 0},
			{Word: "have", Status: domain.WordIncorrect, Score: 0},
			{Word: "a", Status: domain.WordIncorrect, Score: 0},
			{Word: "coffee", Status: domain.WordPartial, Score: 60},
		}, result.WordFeedback)
	})

	t.Run("RepeatedWordsPairUpInOrder", func(t *testing.T) {
		scorer := new(MockPronunciationScorer)
		scorer.On("ScorePronunciation", mock.Anything, clip, "audio/webm", "very very good").
			Return(&domain.PronunciationResult{
				WordFeedback: []domain.WordFeedback{
					{Word: "very", Status: domain.WordCorrect, Score: 90},
					{Word: "good", Status: domain.WordCorrect, Score: 85},
				},
			}, nil).Once()

		svc := NewPronunciationService(scorer)
		result, err := svc.Evaluate(context.Background(), clip, "audio/webm", "very very good")

		assert.NoError(t, err)
		assert.Len(t, result.WordFeedback, 3)
		assert.Equal(t, domain.WordCorrect, result.WordFeedback[0].Status)
		assert.Equal(t, domain.WordIncorrect, result.WordFeedback[1].Status)
		assert.Equal(t, domain.WordCorrect, result.WordFeedback[2].Status)
	})

	t.Run("UnknownStatusBecomesIncorrect", func(t *testing.T) {
		scorer := new(MockPronunciationScorer)
		scorer.On("ScorePronunciation", mock.Anything, clip, "audio/webm", "hello").
			Return(&domain.PronunciationResult{
				WordFeedback: []domain.WordFeedback{
					{Word: "hello", Status: "almost", Score: 50},
				},
			}, nil).Once()

		svc := NewPronunciationService(scorer)
		result, err := svc.Evaluate(context.Background(), clip, "audio/webm", "hello")

		assert.NoError(t, err)
		assert.Equal(t, domain.WordIncorrect, result.WordFeedback[0].Status)
	})

	t.Run("EmptyAudioRejected", func(t *testing.T) {
		svc := NewPronunciationService(new(MockPronunciationScorer))
		_, err := svc.Evaluate(context.Background(), nil, "audio/webm", "hello")

		assert.Error(t, err)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	})

	t.Run("EmptyPhraseRejected", func(t *testing.T) {
		svc := NewPronunciationService(new(MockPronunciationScorer))
		_, err := svc.Evaluate(context.Background(), clip, "audio/webm", "   ")

		assert.Error(t, err)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	})
}
