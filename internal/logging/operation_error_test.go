package logging

import (
	"errors"
	"testing"
)

func TestOperationErrorFormatsWithRequestID(t *testing.T) {
	err := NewOperationError("usecase.classify", "req-1", errors.New("boom"))
	want := "usecase.classify (request_id=req-1): boom"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestOperationErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := NewOperationError("usecase.classify", "", inner)
	if !errors.Is(err, inner) {
		t.Fatal("expected wrapped error to satisfy errors.Is")
	}

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T", err)
	}
	if opErr.Operation != "usecase.classify" {
		t.Fatalf("unexpected operation: %s", opErr.Operation)
	}
}

func TestNewOperationErrorPassesNilThrough(t *testing.T) {
	if err := NewOperationError("usecase.classify", "req-1", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
