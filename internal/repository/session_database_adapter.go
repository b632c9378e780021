package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coursequiz/internal/domain"
	"coursequiz/internal/repository/models"
	"coursequiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// SessionDatabaseAdapter implements domain.SessionRepository using sqlx.DB
type SessionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSessionDatabaseAdapter creates a new instance of SessionDatabaseAdapter
func NewSessionDatabaseAdapter(db *sqlx.DB) domain.SessionRepository {
	return &SessionDatabaseAdapter{db: db}
}

func toDomainSession(m *models.QuizSession) *domain.QuizSession {
	if m == nil {
		return nil
	}
	var endTime *time.Time
	if m.EndTime.Valid {
		t := m.EndTime.Time
		endTime = &t
	}
	var score *float64
	if m.Score.Valid {
		v := m.Score.Float64
		score = &v
	}
	return &domain.QuizSession{
		ID:                m.ID,
		Username:          m.Username,
		CourseID:          m.CourseID,
		FullName:          m.FullName,
		Taken:             m.Taken,
		TakenCount:        m.TakenCount,
		StartTime:         m.StartTime,
		EndTime:           endTime,
		Questions:         m.Questions,
		Answers:           m.Answers,
		Score:             score,
		Total:             m.Total,
		FallbackQuestions: m.FallbackQuestions,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toModelSession(s *domain.QuizSession) *models.QuizSession {
	if s == nil {
		return nil
	}
	return &models.QuizSession{
		ID:                s.ID,
		Username:          s.Username,
		CourseID:          s.CourseID,
		FullName:          s.FullName,
		Taken:             s.Taken,
		TakenCount:        s.TakenCount,
		StartTime:         s.StartTime,
		EndTime:           util.TimePtrToNullTime(s.EndTime),
		Questions:         models.QuestionList(s.Questions),
		Answers:           models.AnswerList(s.Answers),
		Score:             util.FloatPtrToNullFloat64(s.Score),
		Total:             s.Total,
		FallbackQuestions: s.FallbackQuestions,
		Version:           s.Version,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

const sessionColumns = `id, username, course_id, full_name, taken, taken_count, start_time, end_time,
	questions, answers, score, total, fallback_questions, version, created_at, updated_at`

// Get implements domain.SessionRepository. A missing session returns (nil, nil).
func (a *SessionDatabaseAdapter) Get(ctx context.Context, username, courseID string) (*domain.QuizSession, error) {
	var m models.QuizSession
	query := `SELECT ` + sessionColumns + ` FROM quiz_sessions WHERE username = $1 AND course_id = $2`
	if err := a.db.GetContext(ctx, &m, query, username, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session (%s, %s): %w", username, courseID, err)
	}
	return toDomainSession(&m), nil
}

// Create implements domain.SessionRepository
func (a *SessionDatabaseAdapter) Create(ctx context.Context, session *domain.QuizSession) error {
	m := toModelSession(session)
	if m == nil {
		return fmt.Errorf("cannot create nil session")
	}
	m.ID = util.NewULID()
	m.Version = 0
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO quiz_sessions (
		id, username, course_id, full_name, taken, taken_count, start_time, end_time,
		questions, answers, score, total, fallback_questions, version, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := a.db.ExecContext(ctx, query,
		m.ID, m.Username, m.CourseID, m.FullName, m.Taken, m.TakenCount, m.StartTime, m.EndTime,
		m.Questions, m.Answers, m.Score, m.Total, m.FallbackQuestions, m.Version, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session (%s, %s): %w", m.Username, m.CourseID, err)
	}

	session.ID = m.ID
	session.Version = m.Version
	session.CreatedAt = m.CreatedAt
	session.UpdatedAt = m.UpdatedAt
	return nil
}

// Update implements domain.SessionRepository. The write is conditional
// on the version read earlier; zero rows affected means a concurrent
// request won the race and the caller's state is stale.
func (a *SessionDatabaseAdapter) Update(ctx context.Context, session *domain.QuizSession) error {
	m := toModelSession(session)
	if m == nil {
		return fmt.Errorf("cannot update nil session")
	}
	m.UpdatedAt = time.Now()

	query := `UPDATE quiz_sessions SET
		full_name = $1,
		taken = $2,
		taken_count = $3,
		start_time = $4,
		end_time = $5,
		questions = $6,
		answers = $7,
		score = $8,
		total = $9,
		fallback_questions = $10,
		version = version + 1,
		updated_at = $11
	WHERE username = $12 AND course_id = $13 AND version = $14`

	result, err := a.db.ExecContext(ctx, query,
		m.FullName, m.Taken, m.TakenCount, m.StartTime, m.EndTime,
		m.Questions, m.Answers, m.Score, m.Total, m.FallbackQuestions,
		m.UpdatedAt, m.Username, m.CourseID, m.Version)
	if err != nil {
		return fmt.Errorf("failed to update session (%s, %s): %w", m.Username, m.CourseID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewSessionConflictError(m.Username, m.CourseID)
	}

	session.Version++
	session.UpdatedAt = m.UpdatedAt
	return nil
}
