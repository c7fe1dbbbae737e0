package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "TestOperation" {
		t.Errorf("Expected operation 'TestOperation', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if panicErr.Error() != "panic in TestOperation: test panic message" {
		t.Errorf("unexpected message: %s", panicErr.Error())
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "panic in TestOperation") {
		t.Errorf("Error message should contain panic info: %s", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("Should be able to identify original error with errors.Is")
	}
}

func TestSafeExecute(t *testing.T) {
	originalErr := fmt.Errorf("function error")

	if err := SafeExecute("op", func() error { return nil }); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := SafeExecute("op", func() error { return originalErr }); err != originalErr {
		t.Fatalf("Expected original error, got: %v", err)
	}

	err := SafeExecute("op", func() error { panic(42) })
	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if fmt.Sprintf("%v", panicErr.PanicValue) != "42" {
		t.Errorf("Expected panic value 42, got %v", panicErr.PanicValue)
	}
}

func TestSafeAccess(t *testing.T) {
	type inner struct{ Name string }
	type outer struct{ *inner }

	v, ok := SafeAccess(func() string { return outer{&inner{"a"}}.Name })
	if !ok || v != "a" {
		t.Errorf("SafeAccess() = %q, %v, want a, true", v, ok)
	}

	v, ok = SafeAccess(func() string { return outer{}.Name })
	if ok || v != "" {
		t.Errorf("SafeAccess() on nil embedded pointer = %q, %v, want \"\", false", v, ok)
	}
}

func BenchmarkRecover_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		func() (err error) {
			defer Recover(&err, "BenchmarkOp")
			return nil
		}()
	}
}
