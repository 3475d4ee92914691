package toolerr

import (
	"errors"
	"fmt"
	"testing"
)

// --- Error ---

func TestError_FormatsCodeAndMessage(t *testing.T) {
	err := New(InvalidPath, "output path must be inside an allowed directory")

	want := "InvalidPath: output path must be inside an allowed directory"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNew_FormatsArguments(t *testing.T) {
	err := New(InvalidLength, "%s exceeds %d characters", "projectName", 100)

	if err.Code != InvalidLength {
		t.Errorf("Code = %s, want InvalidLength", err.Code)
	}
	if err.Message != "projectName exceeds 100 characters" {
		t.Errorf("Message = %q", err.Message)
	}
}

// --- CodeOf ---

func TestCodeOf_DirectError(t *testing.T) {
	err := New(RateLimitExceeded, "too many requests")

	if got := CodeOf(err); got != RateLimitExceeded {
		t.Errorf("CodeOf = %s, want RateLimitExceeded", got)
	}
}

func TestCodeOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("handling call: %w", New(FileTooLarge, "too big"))

	if got := CodeOf(err); got != FileTooLarge {
		t.Errorf("CodeOf = %s, want FileTooLarge", got)
	}
}

func TestCodeOf_NonCodedError(t *testing.T) {
	if got := CodeOf(errors.New("disk on fire")); got != Unknown {
		t.Errorf("CodeOf = %s, want UnknownError", got)
	}
}

func TestCodeOf_NilError(t *testing.T) {
	if got := CodeOf(nil); got != Unknown {
		t.Errorf("CodeOf(nil) = %s, want UnknownError", got)
	}
}
