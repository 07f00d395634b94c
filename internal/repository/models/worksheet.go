package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON column.
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
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// StringMap stores a string-to-string map as a JSON column.
type StringMap map[string]string

// Value implements the driver.Valuer interface
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = StringMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}

// Worksheet is the worksheets table row. Sections are stored as one JSON
// document since they are only ever read and replaced wholesale.
type Worksheet struct {
	ID            string      `db:"id"`
	Topic         string      `db:"topic"`
	Vocabulary    string      `db:"vocabulary"`
	GrammarFocus  string      `db:"grammar_focus"`
	Level         string      `db:"level"`
	SelectedTypes StringSlice `db:"selected_types"`
	QuestionCount int         `db:"question_count"`
	Sections      []byte      `db:"sections"`
	CreatedAt     time.Time   `db:"created_at"`
}

// Submission is the submissions table row.
type Submission struct {
	ID          string    `db:"id"`
	WorksheetID string    `db:"worksheet_id"`
	StudentName string    `db:"student_name"`
	Correct     int       `db:"correct"`
	Total       int       `db:"total"`
	StarRating  int       `db:"star_rating"`
	Feedback    string    `db:"feedback"`
	Answers     StringMap `db:"answers"`
	SubmittedAt time.Time `db:"submitted_at"`
}
