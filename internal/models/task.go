package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/tasktrack/internal/types"
)

// Task represents a single tracked unit of work
type Task struct {
	ID          types.TaskID
	Title       string
	Description *string // nil means no description
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate describes a partial update of a task.
// Nil pointers mean "leave unchanged". Description is tri-state:
// SetDescription=false leaves it alone, SetDescription=true with a nil
// Description clears it to NULL.
type TaskUpdate struct {
	Title          *string
	Status         *Status
	SetDescription bool
	Description    *string
}

// IsEmpty reports whether applying the update would change nothing
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Status == nil && !u.SetDescription
}

// NormalizeTitle trims surrounding whitespace from a title
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// TitleLength returns the length of a title in characters (not bytes)
func TitleLength(title string) int {
	return utf8.RuneCountInString(title)
}

// StringPtr returns a pointer to s. Handy for building optional fields.
func StringPtr(s string) *string {
	return &s
}
