package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"lessonforge/internal/domain"
	"lessonforge/internal/dto"
	"lessonforge/internal/service"
	"lessonforge/internal/validation"
)

const defaultAudioMIMEType = "audio/webm"

// PronunciationHandler handles pronunciation evaluation requests
type PronunciationHandler struct {
	service   service.PronunciationService
	validator *validation.Validator
}

// NewPronunciationHandler creates a new PronunciationHandler instance
func NewPronunciationHandler(service service.PronunciationService, validator *validation.Validator) *PronunciationHandler {
	return &PronunciationHandler{
		service:   service,
		validator: validator,
	}
}

// Evaluate godoc
// @Summary Evaluate a recorded pronunciation
// @Description Scores a recorded clip against a target phrase with per-word feedback
// @Tags pronunciation
// @Accept mpfd
// @Produce json
// @Param targetPhrase formData string true "Phrase the student was asked to say"
// @Param audio formData file true "Recorded audio clip"
// @Success 200 {object} dto.PronunciationResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /pronunciation [post]
func (h *PronunciationHandler) Evaluate(c *fiber.Ctx) error {
	targetPhrase := c.FormValue("targetPhrase")

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("audio")}
	}
	if errs := h.validator.ValidatePronunciationRequest(targetPhrase, int(fileHeader.Size)); len(errs) > 0 {
		return errs
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded audio", err)
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded audio", err)
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultAudioMIMEType
	}

	result, err := h.service.Evaluate(c.UserContext(), audio, mimeType, targetPhrase)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPronunciationResponse(result))
}
