package testutil

import (
	"errors"
	"testing"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
)

// AssertNoError fails the test immediately when err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError fails unless err unwraps to an *AppError carrying the given code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s, got no error", code)
	}
	var appErr *apperrors.AppError
	switch {
	case !errors.As(err, &appErr):
		t.Fatalf("want *AppError (%s), got %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("want code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}
