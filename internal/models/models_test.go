package models

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// Status Tests
// ============================================================================

func TestStatus_Valid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []Status{"", "created", "PENDING", "done ", "IN PROGRESS"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("IN_PROGRESS")
	if err != nil {
		t.Fatalf("ParseStatus() err = %v, want nil", err)
	}
	if got != StatusInProgress {
		t.Errorf("ParseStatus() = %q, want %q", got, StatusInProgress)
	}

	_, err = ParseStatus("ARCHIVED")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("ParseStatus() err = %v, want %v", err, ErrUnknownStatus)
	}
}

func TestDefaultStatus(t *testing.T) {
	if DefaultStatus != StatusCreated {
		t.Errorf("DefaultStatus = %q, want %q", DefaultStatus, StatusCreated)
	}
}

// ============================================================================
// TaskUpdate Tests
// ============================================================================

func TestTaskUpdate_IsEmpty(t *testing.T) {
	status := StatusDone

	tests := []struct {
		name   string
		update TaskUpdate
		want   bool
	}{
		{"zero value", TaskUpdate{}, true},
		{"title only", TaskUpdate{Title: StringPtr("x")}, false},
		{"status only", TaskUpdate{Status: &status}, false},
		{"clear description", TaskUpdate{SetDescription: true}, false},
		{"description without set flag", TaskUpdate{Description: StringPtr("ignored")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.update.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Title Helpers
// ============================================================================

func TestTitleLength_CountsCharacters(t *testing.T) {
	ascii := strings.Repeat("a", MaxTitleLength)
	if got := TitleLength(ascii); got != MaxTitleLength {
		t.Errorf("TitleLength(ascii) = %d, want %d", got, MaxTitleLength)
	}

	// 255 two-byte characters is still 255 characters
	wide := strings.Repeat("é", MaxTitleLength)
	if got := TitleLength(wide); got != MaxTitleLength {
		t.Errorf("TitleLength(wide) = %d, want %d", got, MaxTitleLength)
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := NormalizeTitle("  Buy milk \n"); got != "Buy milk" {
		t.Errorf("NormalizeTitle() = %q, want %q", got, "Buy milk")
	}
	if got := NormalizeTitle("   "); got != "" {
		t.Errorf("NormalizeTitle() = %q, want empty", got)
	}
}
