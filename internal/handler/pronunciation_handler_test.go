package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"lessonforge/internal/domain"
	"lessonforge/internal/dto"
	"lessonforge/internal/handler"
	"lessonforge/internal/middleware"
	"lessonforge/internal/validation"
)

// MockPronunciationService
type MockPronunciationService struct {
	EvaluateFunc func(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*domain.PronunciationResult, error)
}

func (m *MockPronunciationService) Evaluate(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*domain.PronunciationResult, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, audio, mimeType, targetPhrase)
	}
	panic("MockPronunciationService.EvaluateFunc not implemented")
}

func setupPronunciationApp(svc *MockPronunciationService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewPronunciationHandler(svc, validation.NewValidator())
	app.Post("/api/pronunciation", h.Evaluate)
	return app
}

func buildMultipart(t *testing.T, phrase string, audio []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if phrase != "" {
		assert.NoError(t, writer.WriteField("targetPhrase", phrase))
	}
	if audio != nil {
		part, err := writer.CreateFormFile("audio", "clip.webm")
		assert.NoError(t, err)
		_, err = part.Write(audio)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestPronunciationHandler_Evaluate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockPronunciationService{
			EvaluateFunc: func(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*domain.PronunciationResult, error) {
				assert.Equal(t, "hello world", targetPhrase)
				assert.NotEmpty(t, audio)
				return &domain.PronunciationResult{
					OverallScore: 85,
					WordFeedback: []domain.WordFeedback{
						{Word: "hello", Status: domain.WordCorrect, Score: 90},
						{Word: "world", Status: domain.WordPartial, Score: 70},
					},
				}, nil
			},
		}
		app := setupPronunciationApp(svc)

		body, contentType := buildMultipart(t, "hello world", []byte{0x01, 0x02, 0x03})
		req := httptest.NewRequest("POST", "/api/pronunciation", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got dto.PronunciationResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 85, got.OverallScore)
		assert.Len(t, got.WordFeedback, 2)
	})

	t.Run("MissingAudioRejected", func(t *testing.T) {
		app := setupPronunciationApp(&MockPronunciationService{})

		body, contentType := buildMultipart(t, "hello world", nil)
		req := httptest.NewRequest("POST", "/api/pronunciation", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MissingPhraseRejected", func(t *testing.T) {
		app := setupPronunciationApp(&MockPronunciationService{})

		body, contentType := buildMultipart(t, "", []byte{0x01})
		req := httptest.NewRequest("POST", "/api/pronunciation", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		svc := &MockPronunciationService{
			EvaluateFunc: func(ctx context.Context, audio []byte, mimeType string, targetPhrase string) (*domain.PronunciationResult, error) {
				return nil, domain.NewGenerationError("evaluation failed", nil)
			},
		}
		app := setupPronunciationApp(svc)

		body, contentType := buildMultipart(t, "hello", []byte{0x01})
		req := httptest.NewRequest("POST", "/api/pronunciation", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	})
}
