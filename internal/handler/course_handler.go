package handler

import (
	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
	"coursequiz/internal/service"
	"coursequiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles the public course listing and the admin course
// CRUD endpoints.
type CourseHandler struct {
	courses   service.CourseService
	validator *validation.Validator
}

// NewCourseHandler creates a new CourseHandler instance
func NewCourseHandler(courses service.CourseService) *CourseHandler {
	return &CourseHandler{
		courses:   courses,
		validator: validation.NewValidator(),
	}
}

// ListCourses handles GET /api/courses.
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	resp, err := h.courses.ListCourses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCourse handles GET /api/admin/courses/:courseID.
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseID")
	if err := h.validator.ValidateCourseID(courseID); err != nil {
		return err
	}
	resp, err := h.courses.GetCourse(c.Context(), courseID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateCourse handles POST /api/admin/courses.
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := h.validator.ValidateCourseRequest(&req); err != nil {
		return err
	}
	resp, err := h.courses.CreateCourse(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateCourse handles PUT /api/admin/courses/:courseID.
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseID")
	if err := h.validator.ValidateCourseID(courseID); err != nil {
		return err
	}
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Title == "" {
		return domain.NewInvalidInputError("title is required")
	}
	resp, err := h.courses.UpdateCourse(c.Context(), courseID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteCourse handles DELETE /api/admin/courses/:courseID.
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseID")
	if err := h.validator.ValidateCourseID(courseID); err != nil {
		return err
	}
	if err := h.courses.DeleteCourse(c.Context(), courseID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
