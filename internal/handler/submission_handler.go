package handler

import (
	"github.com/gofiber/fiber/v2"

	"lessonforge/internal/domain"
	"lessonforge/internal/dto"
	"lessonforge/internal/service"
	"lessonforge/internal/validation"
)

// SubmissionHandler handles submission-related HTTP requests
type SubmissionHandler struct {
	service   service.SubmissionService
	validator *validation.Validator
}

// NewSubmissionHandler creates a new SubmissionHandler instance
func NewSubmissionHandler(service service.SubmissionService, validator *validation.Validator) *SubmissionHandler {
	return &SubmissionHandler{
		service:   service,
		validator: validator,
	}
}

// Submit godoc
// @Summary Submit a completed worksheet
// @Description Scores the student's answers, stores the result and reports it to the configured sheet endpoint
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Worksheet ID"
// @Param request body dto.SubmitWorksheetRequest true "Student answers"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /worksheets/{id}/submissions [post]
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	worksheetID := c.Params("id")

	var req dto.SubmitWorksheetRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitRequest(worksheetID, &req); len(errs) > 0 {
		return errs
	}

	sub, err := h.service.Submit(c.UserContext(), worksheetID, req.StudentName, req.Answers)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSubmissionResponse(sub))
}

// List godoc
// @Summary List submissions for a worksheet
// @Description Returns every stored submission for one worksheet, newest first
// @Tags submissions
// @Produce json
// @Param id path string true "Worksheet ID"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /worksheets/{id}/submissions [get]
func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	worksheetID := c.Params("id")
	if errs := h.validator.ValidateWorksheetID(worksheetID); len(errs) > 0 {
		return errs
	}

	subs, err := h.service.ListByWorksheet(c.UserContext(), worksheetID)
	if err != nil {
		return err
	}

	responses := make([]*dto.SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, dto.NewSubmissionResponse(sub))
	}
	return c.JSON(responses)
}
