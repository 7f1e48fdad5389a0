package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestRecover_WithPanic tests the Recover function when a panic occurs
func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "Lime.Explain")
		panic("segmenter returned wrong shape")
	}

	err := testFunc()

	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}

	if panicErr.Operation != "Lime.Explain" {
		t.Errorf("Expected operation 'Lime.Explain', got '%s'", panicErr.Operation)
	}

	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}

	expectedMsg := "panic in Lime.Explain: segmenter returned wrong shape"
	if panicErr.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, panicErr.Error())
	}
}

// TestRecover_WithoutPanic tests the Recover function when no panic occurs
func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "Lime.Explain")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

// TestRecover_WithExistingError tests Recover when function has existing error and panic occurs
func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "Lime.Explain")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()

	if err == nil {
		t.Fatal("Expected error from recovered panic with existing error, got nil")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "panic in Lime.Explain") {
		t.Errorf("Error message should contain panic info: %s", errMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("Should be able to identify original error with errors.Is")
	}
}

// TestSafeExecute covers success, error passthrough and panic conversion
func TestSafeExecute(t *testing.T) {
	if err := SafeExecute("surrogate_fit", func() error { return nil }); err != nil {
		t.Fatalf("Expected no error for successful operation, got: %v", err)
	}

	originalErr := fmt.Errorf("fitter error")
	if err := SafeExecute("surrogate_fit", func() error { return originalErr }); err != originalErr {
		t.Fatalf("Expected original error, got: %v", err)
	}

	err := SafeExecute("surrogate_fit", func() error {
		panic("mat: dimension mismatch")
	})
	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.PanicValue != "mat: dimension mismatch" {
		t.Errorf("unexpected panic value: %v", panicErr.PanicValue)
	}
}
