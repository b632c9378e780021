package handler

import (
	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
	"coursequiz/internal/service"
	"coursequiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// DefaultCourseID backs the legacy routes that predate per-course URLs.
const DefaultCourseID = "default"

// QuizHandler handles the quiz session HTTP endpoints.
type QuizHandler struct {
	sessions  service.SessionService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(sessions service.SessionService) *QuizHandler {
	return &QuizHandler{
		sessions:  sessions,
		validator: validation.NewValidator(),
	}
}

// BeginSession handles POST /api/:courseID/check_user. It creates or
// resumes the caller's session and returns the assigned questions, or
// the attempt-cap payload once the cap is reached.
func (h *QuizHandler) BeginSession(c *fiber.Ctx) error {
	courseID := c.Params("courseID")
	if err := h.validator.ValidateCourseID(courseID); err != nil {
		return err
	}
	return h.beginSession(c, courseID)
}

// BeginSessionDefault handles the legacy POST /api/check_user, which
// targets the default course.
func (h *QuizHandler) BeginSessionDefault(c *fiber.Ctx) error {
	return h.beginSession(c, DefaultCourseID)
}

func (h *QuizHandler) beginSession(c *fiber.Ctx, courseID string) error {
	var req dto.BeginSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := h.validator.ValidateBeginSessionRequest(&req); err != nil {
		return err
	}

	resp, err := h.sessions.BeginSession(c.Context(), courseID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// FinalizeSession handles POST /api/:courseID/finalize. It grades the
// submitted answers and returns the summed final score.
func (h *QuizHandler) FinalizeSession(c *fiber.Ctx) error {
	courseID := c.Params("courseID")
	if err := h.validator.ValidateCourseID(courseID); err != nil {
		return err
	}
	return h.finalizeSession(c, courseID)
}

// FinalizeSessionDefault handles the legacy POST /api/finalize.
func (h *QuizHandler) FinalizeSessionDefault(c *fiber.Ctx) error {
	return h.finalizeSession(c, DefaultCourseID)
}

func (h *QuizHandler) finalizeSession(c *fiber.Ctx, courseID string) error {
	var req dto.FinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := h.validator.ValidateFinalizeRequest(&req); err != nil {
		return err
	}

	resp, err := h.sessions.FinalizeSession(c.Context(), courseID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
