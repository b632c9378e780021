package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
	"coursequiz/internal/logger"

	"go.uber.org/zap"
)

// CourseService exposes the public course listing and the admin CRUD
// operations. Writes are mirrored to per-course JSON files when a
// mirror directory is configured.
type CourseService interface {
	ListCourses(ctx context.Context) (*dto.CourseListResponse, error)
	GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, id string) error
}

type courseService struct {
	repo      domain.CourseRepository
	mirrorDir string
}

// NewCourseService creates a new instance of courseService. mirrorDir
// may be empty to disable file mirroring.
func NewCourseService(repo domain.CourseRepository, mirrorDir string) CourseService {
	return &courseService{repo: repo, mirrorDir: mirrorDir}
}

// ListCourses implements CourseService
func (s *courseService) ListCourses(ctx context.Context) (*dto.CourseListResponse, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list courses", err)
	}

	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, dto.CourseSummary{
			ID:            c.ID,
			Title:         c.Title,
			Description:   c.Description,
			QuestionCount: len(c.Questions),
		})
	}
	return &dto.CourseListResponse{Courses: summaries}, nil
}

// GetCourse implements CourseService
func (s *courseService) GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error) {
	id = domain.NormalizeCourseID(id)
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewCourseNotFoundError(id)
	}
	return toCourseResponse(course), nil
}

// CreateCourse implements CourseService
func (s *courseService) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course := domain.NewCourse(req.ID, req.Title, req.Description, req.Questions, req.KnowledgeText)
	if err := course.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.mirrorCourse(course)
	return toCourseResponse(course), nil
}

// UpdateCourse implements CourseService
func (s *courseService) UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course := domain.NewCourse(id, req.Title, req.Description, req.Questions, req.KnowledgeText)
	if err := course.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.mirrorCourse(course)
	return toCourseResponse(course), nil
}

// DeleteCourse implements CourseService
func (s *courseService) DeleteCourse(ctx context.Context, id string) error {
	id = domain.NormalizeCourseID(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeMirror(id)
	return nil
}

// courseFile is the on-disk mirror shape, matching the seed fixtures.
type courseFile struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Questions     []string `json:"questions"`
	KnowledgeText string   `json:"knowledgetext"`
}

// mirrorCourse writes the course to <mirrorDir>/<id>.json. Mirror
// failures are logged, not surfaced: the database row is the source of
// truth.
func (s *courseService) mirrorCourse(course *domain.Course) {
	if s.mirrorDir == "" {
		return
	}
	payload, err := json.MarshalIndent(courseFile{
		Title:         course.Title,
		Description:   course.Description,
		Questions:     course.Questions,
		KnowledgeText: course.KnowledgeText,
	}, "", "  ")
	if err != nil {
		logger.Get().Warn("Failed to encode course mirror", zap.String("course_id", course.ID), zap.Error(err))
		return
	}
	if err := os.MkdirAll(s.mirrorDir, 0o755); err != nil {
		logger.Get().Warn("Failed to create mirror directory", zap.String("dir", s.mirrorDir), zap.Error(err))
		return
	}
	path := filepath.Join(s.mirrorDir, fmt.Sprintf("%s.json", course.ID))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		logger.Get().Warn("Failed to write course mirror", zap.String("path", path), zap.Error(err))
	}
}

func (s *courseService) removeMirror(id string) {
	if s.mirrorDir == "" {
		return
	}
	path := filepath.Join(s.mirrorDir, fmt.Sprintf("%s.json", id))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Get().Warn("Failed to remove course mirror", zap.String("path", path), zap.Error(err))
	}
}

func toCourseResponse(course *domain.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Questions:     course.Questions,
		KnowledgeText: course.KnowledgeText,
	}
}
