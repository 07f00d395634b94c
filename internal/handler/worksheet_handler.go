package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"lessonforge/internal/domain"
	"lessonforge/internal/dto"
	"lessonforge/internal/logger"
	"lessonforge/internal/service"
	"lessonforge/internal/validation"
)

// WorksheetHandler handles worksheet-related HTTP requests
type WorksheetHandler struct {
	service   service.WorksheetService
	validator *validation.Validator
}

// NewWorksheetHandler creates a new WorksheetHandler instance
func NewWorksheetHandler(service service.WorksheetService, validator *validation.Validator) *WorksheetHandler {
	return &WorksheetHandler{
		service:   service,
		validator: validator,
	}
}

// Generate godoc
// @Summary Generate a worksheet
// @Description Generates a full worksheet from teacher preferences, including images and audio
// @Tags worksheets
// @Accept json
// @Produce json
// @Param request body dto.GenerateWorksheetRequest true "Generation preferences"
// @Success 201 {object} dto.WorksheetResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /worksheets [post]
func (h *WorksheetHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateWorksheetRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	if errs := h.validator.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs
	}
	prefs, err := req.ToDomain()
	if err != nil {
		return err
	}

	content, err := h.service.Generate(c.UserContext(), prefs)
	if err != nil {
		logger.Get().Error("Worksheet generation failed",
			zap.Error(err),
			zap.String("topic", prefs.Topic),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewWorksheetResponse(content))
}

// GetByID godoc
// @Summary Get a worksheet
// @Description Returns a previously generated worksheet by its id
// @Tags worksheets
// @Produce json
// @Param id path string true "Worksheet ID"
// @Success 200 {object} dto.WorksheetResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /worksheets/{id} [get]
func (h *WorksheetHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateWorksheetID(id); len(errs) > 0 {
		return errs
	}

	content, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorksheetResponse(content))
}
