package models

import (
	"database/sql"
	"time"
)

// QuizSession is the database row shape for a session record. One row
// exists per (username, course_id) pair; version backs the optimistic
// conditional update.
type QuizSession struct {
	ID                string          `db:"id"`
	Username          string          `db:"username"`
	CourseID          string          `db:"course_id"`
	FullName          string          `db:"full_name"`
	Taken             bool            `db:"taken"`
	TakenCount        int             `db:"taken_count"`
	StartTime         time.Time       `db:"start_time"`
	EndTime           sql.NullTime    `db:"end_time"`
	Questions         QuestionList    `db:"questions"`
	Answers           AnswerList      `db:"answers"`
	Score             sql.NullFloat64 `db:"score"`
	Total             int             `db:"total"`
	FallbackQuestions bool            `db:"fallback_questions"`
	Version           int64           `db:"version"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
