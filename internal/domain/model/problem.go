package model

import (
	"time"
)

type Problem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	CreatedByID *string    `json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	TestCases   []TestCase `json:"test_cases,omitempty"` // Admin only view
}

// TestCase rows are created with their problem and replaced in bulk on edit.
type TestCase struct {
	ID             string    `json:"id"`
	ProblemID      string    `json:"problem_id"`
	Input          string    `json:"input"`
	ExpectedOutput string    `json:"expected_output"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
}
