package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"lessonforge/internal/domain"

	"google.golang.org/genai"
)

// ScorePronunciation implements domain.PronunciationScorer. The recorded clip
// and the target phrase go to the multimodal model with a strict response
// schema. The result is raw model output; clamping and word padding happen in
// the pronunciation service.
func (c *Client) ScorePronunciation(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*domain.PronunciationResult, error) {
	instruction := fmt.Sprintf(
		`You are an English pronunciation coach. The student was asked to say: "%s".
Listen to the recording and rate the pronunciation.
Score overall, accuracy, fluency and completeness from 0 to 100.
For every word of the target phrase, classify it as correct, partial or incorrect with a 0-100 score.
Write one short, encouraging feedback sentence.`,
		targetPhrase,
	)

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
			{Text: instruction},
		},
	}}

	resp, err := c.genai.Models.GenerateContent(ctx, c.cfg.TextModel, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   pronunciationSchema(),
	})
	if err != nil {
		return nil, c.mapError("score pronunciation", err)
	}

	var parsed struct {
		OverallScore      int    `json:"overallScore"`
		AccuracyScore     int    `json:"accuracyScore"`
		FluencyScore      int    `json:"fluencyScore"`
		CompletenessScore int    `json:"completenessScore"`
		Feedback          string `json:"feedback"`
		WordFeedback      []struct {
			Word   string `json:"word"`
			Status string `json:"status"`
			Score  int    `json:"score"`
		} `json:"wordFeedback"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return nil, domain.NewParseError(err)
	}

	result := &domain.PronunciationResult{
		OverallScore:      parsed.OverallScore,
		AccuracyScore:     parsed.AccuracyScore,
		FluencyScore:      parsed.FluencyScore,
		CompletenessScore: parsed.CompletenessScore,
		Feedback:          parsed.Feedback,
	}
	for _, w := range parsed.WordFeedback {
		result.WordFeedback = append(result.WordFeedback, domain.WordFeedback{
			Word:   w.Word,
			Status: domain.WordStatus(w.Status),
			Score:  w.Score,
		})
	}
	return result, nil
}
