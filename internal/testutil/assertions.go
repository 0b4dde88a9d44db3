package testutil

import (
	"errors"
	"testing"

	apperrors "finboard/internal/errors"
)

func requireAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	appErr := requireAppError(t, err, expectedCode)
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertAppErrorMessage checks the code and the client-facing message.
func AssertAppErrorMessage(t *testing.T, err error, expectedCode, expectedMessage string) {
	t.Helper()

	appErr := requireAppError(t, err, expectedCode)
	if appErr.Code != expectedCode || appErr.Message != expectedMessage {
		t.Errorf("expected %s %q, got %s %q", expectedCode, expectedMessage, appErr.Code, appErr.Message)
	}
}

// AssertIs checks that err matches sentinel under errors.Is, which compares
// AppError codes.
func AssertIs(t *testing.T, err error, sentinel *apperrors.AppError) {
	t.Helper()

	if !errors.Is(err, sentinel) {
		t.Errorf("expected %s, got %v", sentinel.Code, err)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
