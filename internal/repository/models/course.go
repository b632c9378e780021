package models

import "time"

// Course is the database row shape for a course record.
type Course struct {
	ID            string      `db:"id"`
	Title         string      `db:"title"`
	Description   string      `db:"description"`
	Questions     StringSlice `db:"questions"`
	KnowledgeText string      `db:"knowledge_text"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}
