package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid expression", inner)

	if err.Error() != "invalid expression: parse failed" {
		t.Errorf("expected 'invalid expression: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("title is required")

	wrapped := fmt.Errorf("failed to parse: %w", original)
	doubleWrapped := fmt.Errorf("storage error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "title is required" {
		t.Errorf("expected 'title is required', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

func TestNotFoundError(t *testing.T) {
	err := apperr.NewNotFound("book", "42")

	if err.Error() != `book "42" not found` {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	var nf *apperr.NotFoundError
	if !errors.As(wrapped, &nf) {
		t.Fatal("errors.As should find NotFoundError through wrapping")
	}
	if nf.ID != "42" {
		t.Errorf("expected ID 42, got %q", nf.ID)
	}
}

func TestStoreUnavailableError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := apperr.NewStoreUnavailable("find", cause)

	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to return the cause")
	}
	if !err.Retryable() {
		t.Error("store unavailable must be retryable")
	}
	if err.Error() != "store unavailable during find: dial tcp: connection refused" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var su *apperr.StoreUnavailableError
	if !errors.As(fmt.Errorf("similar: %w", err), &su) {
		t.Fatal("errors.As should find StoreUnavailableError through wrapping")
	}
}
