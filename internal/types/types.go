package types

import (
	"fmt"
	"strings"
	"time"
)

// Status classifies an exam as still being prepared or ready
type Status string

const (
	StatusPreparing Status = "preparing"
	StatusPrepared  Status = "prepared"
)

// AllStatuses lists the statuses in tab order
var AllStatuses = []Status{StatusPreparing, StatusPrepared}

// ParseStatus validates a status string (case-insensitive)
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPreparing:
		return StatusPreparing, nil
	case StatusPrepared:
		return StatusPrepared, nil
	default:
		return "", fmt.Errorf("invalid exam status %q (use preparing or prepared)", s)
	}
}

// Label returns the human-readable tab label
func (s Status) Label() string {
	switch s {
	case StatusPreparing:
		return "Preparing"
	case StatusPrepared:
		return "Prepared"
	default:
		return string(s)
	}
}

// Exam is a backend-owned exam record
type Exam struct {
	ID              int64     `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	Subject         string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	Status          Status    `json:"status" yaml:"status"`
	DurationMinutes int       `json:"durationMinutes,omitempty" yaml:"durationMinutes,omitempty"`
	QuestionCount   int       `json:"questionCount,omitempty" yaml:"questionCount,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// DisplayTitle falls back to the identifier when the title is blank
func (e Exam) DisplayTitle() string {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Sprintf("Exam #%d", e.ID)
	}
	return e.Title
}

// CreateExamRequest is the body of POST /api/exams
type CreateExamRequest struct {
	Title           string `json:"title" yaml:"title"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	Subject         string `json:"subject,omitempty" yaml:"subject,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty" yaml:"durationMinutes,omitempty"`
}

// Validate checks the fields the backend requires
func (r CreateExamRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.DurationMinutes < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

// UpdateStatusRequest is the body of PATCH /api/exams/{id}/status
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// RecentEntry is a locally recorded exam visit
type RecentEntry struct {
	ExamID    int64     `json:"examId" yaml:"examId"`
	Title     string    `json:"title" yaml:"title"`
	Status    Status    `json:"status" yaml:"status"`
	ViewedAt  time.Time `json:"viewedAt" yaml:"viewedAt"`
	ViewCount int       `json:"viewCount" yaml:"viewCount"`
}

// TLSConfig holds optional TLS settings for the API client
type TLSConfig struct {
	InsecureSkipVerify bool
	CAFile             string
	CertFile           string
	KeyFile            string
}
