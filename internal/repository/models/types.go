package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"coursequiz/internal/domain"
)

// StringSlice stores a []string as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	bytesToParse, err := scanBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice: %w", err)
	}
	if bytesToParse == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// QuestionList stores a session's assigned questions as a JSON text column.
type QuestionList []domain.Question

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (q *QuestionList) Scan(value interface{}) error {
	bytesToParse, err := scanBytes(value)
	if err != nil {
		return fmt.Errorf("QuestionList: %w", err)
	}
	if bytesToParse == nil {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, q)
}

// AnswerList stores a session's evaluated answers as a JSON text column.
type AnswerList []domain.EvaluatedAnswer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (a *AnswerList) Scan(value interface{}) error {
	bytesToParse, err := scanBytes(value)
	if err != nil {
		return fmt.Errorf("AnswerList: %w", err)
	}
	if bytesToParse == nil {
		*a = AnswerList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, a)
}

// scanBytes normalizes a driver value to a JSON byte slice. NULL, empty
// strings and literal "null" all map to nil (caller substitutes the
// empty collection).
func scanBytes(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New("unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
