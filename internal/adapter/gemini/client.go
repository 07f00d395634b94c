// Package gemini adapts the google.golang.org/genai client to the domain
// generation ports. All upstream failures are mapped to the domain error
// taxonomy here, at the service boundary, so the rest of the code never
// inspects provider error shapes.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"lessonforge/internal/config"
	"lessonforge/internal/domain"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client implements domain.ContentGenerator, domain.ImageGenerator,
// domain.SpeechSynthesizer and domain.PronunciationScorer.
type Client struct {
	genai  *genai.Client
	cfg    config.GeminiConfig
	logger *zap.Logger
}

// NewClient creates a Gemini client. A missing API key fails fast with a
// credential error rather than surfacing later on the first call.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewCredentialError(errors.New("gemini api key is empty"))
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to create gemini client", err)
	}
	return &Client{genai: gc, cfg: cfg, logger: logger}, nil
}

// GenerateWorksheet implements domain.ContentGenerator. The response is
// constrained to the worksheet schema and returned as a raw JSON string.
func (c *Client) GenerateWorksheet(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.cfg.TextModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   worksheetSchema(),
	})
	if err != nil {
		return "", c.mapError("generate worksheet", err)
	}

	text := resp.Text()
	if text == "" {
		return "", domain.NewParseError(errors.New("model returned no text"))
	}
	return text, nil
}

// GenerateImage implements domain.ImageGenerator. The subject is wrapped in a
// fixed illustration brief; the square ratio and no-text constraint come from
// configuration and the brief respectively.
func (c *Client) GenerateImage(ctx context.Context, subject string) ([]byte, string, error) {
	prompt := fmt.Sprintf(
		"A simple, clear educational illustration of: %s. Flat colors, friendly style, suitable for a language learning worksheet. No text, letters, or numbers anywhere in the image.",
		subject,
	)

	resp, err := c.genai.Models.GenerateImages(ctx, c.cfg.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    c.cfg.AspectRatio,
	})
	if err != nil {
		return nil, "", c.mapError("generate image", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, "", domain.NewGenerationError("image model returned no images", nil)
	}

	img := resp.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return img.ImageBytes, mimeType, nil
}

// Synthesize implements domain.SpeechSynthesizer.
func (c *Client) Synthesize(ctx context.Context, script string) ([]byte, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.cfg.TTSModel, genai.Text(script), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.Voice},
			},
		},
	})
	if err != nil {
		return nil, c.mapError("synthesize speech", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, domain.NewGenerationError("speech model returned no audio data", nil)
}

// mapError translates genai failures into the closed domain taxonomy.
// 429 and 5xx are the overloaded/unavailable family and retryable; 401/403
// mean bad credentials and fail fast.
func (c *Client) mapError(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		c.logger.Debug("gemini api error",
			zap.String("op", op),
			zap.Int("code", apiErr.Code),
			zap.String("status", apiErr.Status))

		switch {
		case apiErr.Code == 429 || apiErr.Code >= 500:
			return domain.NewOverloadedError(err)
		case apiErr.Code == 401 || apiErr.Code == 403:
			return domain.NewCredentialError(err)
		default:
			return domain.NewGenerationError(fmt.Sprintf("gemini %s failed", op), err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewOverloadedError(err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return domain.NewGenerationError(fmt.Sprintf("gemini %s failed", op), err)
}
