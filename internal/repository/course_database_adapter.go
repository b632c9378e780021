package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coursequiz/internal/domain"
	"coursequiz/internal/logger"
	"coursequiz/internal/repository/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

// CourseDatabaseAdapter implements domain.CourseRepository using sqlx.DB
type CourseDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCourseDatabaseAdapter creates a new instance of CourseDatabaseAdapter
func NewCourseDatabaseAdapter(db *sqlx.DB) domain.CourseRepository {
	return &CourseDatabaseAdapter{db: db}
}

func toDomainCourse(m *models.Course) *domain.Course {
	if m == nil {
		return nil
	}
	return &domain.Course{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Questions:     m.Questions,
		KnowledgeText: m.KnowledgeText,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelCourse(c *domain.Course) *models.Course {
	if c == nil {
		return nil
	}
	return &models.Course{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Questions:     models.StringSlice(c.Questions),
		KnowledgeText: c.KnowledgeText,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

const courseColumns = `id, title, description, questions, knowledge_text, created_at, updated_at`

// GetByID implements domain.CourseRepository. A missing course returns
// (nil, nil); a row that fails to scan is a storage integrity error.
func (a *CourseDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	id = domain.NormalizeCourseID(id)

	var m models.Course
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	if err := a.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course %s: %w", id, err)
	}
	return toDomainCourse(&m), nil
}

// List implements domain.CourseRepository. Individual unreadable rows
// are skipped so one bad record does not fail the whole listing.
func (a *CourseDatabaseAdapter) List(ctx context.Context) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY id`
	rows, err := a.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		var m models.Course
		if err := rows.StructScan(&m); err != nil {
			logger.Get().Warn("Skipping unreadable course row", zap.Error(err))
			continue
		}
		courses = append(courses, toDomainCourse(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

// Create implements domain.CourseRepository. An identifier collision is
// reported as a COURSE_EXISTS domain error.
func (a *CourseDatabaseAdapter) Create(ctx context.Context, course *domain.Course) error {
	m := toModelCourse(course)
	if m == nil {
		return fmt.Errorf("cannot create nil course")
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO courses (id, title, description, questions, knowledge_text, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Description, m.Questions, m.KnowledgeText, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.NewCourseExistsError(m.ID)
		}
		return fmt.Errorf("failed to create course %s: %w", m.ID, err)
	}

	course.CreatedAt = m.CreatedAt
	course.UpdatedAt = m.UpdatedAt
	return nil
}

// Update implements domain.CourseRepository
func (a *CourseDatabaseAdapter) Update(ctx context.Context, course *domain.Course) error {
	m := toModelCourse(course)
	if m == nil {
		return fmt.Errorf("cannot update nil course")
	}
	m.UpdatedAt = time.Now()

	query := `UPDATE courses SET
		title = $1,
		description = $2,
		questions = $3,
		knowledge_text = $4,
		updated_at = $5
	WHERE id = $6`

	result, err := a.db.ExecContext(ctx, query,
		m.Title, m.Description, m.Questions, m.KnowledgeText, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update course %s: %w", m.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewCourseNotFoundError(m.ID)
	}
	course.UpdatedAt = m.UpdatedAt
	return nil
}

// Delete implements domain.CourseRepository
func (a *CourseDatabaseAdapter) Delete(ctx context.Context, id string) error {
	id = domain.NormalizeCourseID(id)

	result, err := a.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewCourseNotFoundError(id)
	}
	return nil
}
