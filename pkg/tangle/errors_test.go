package tangle

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestSignalErrorReturnsNilForNonSignal(t *testing.T) {
	h := NewHeap()
	if err := SignalError(h, h.Int(1)); err != nil {
		t.Errorf("SignalError(non-signal): got %v, want nil", err)
	}
}

func TestSignalErrorWrapsEachCondition(t *testing.T) {
	h := NewHeap()
	condA := h.NewCondition("tangle::a", []Address{h.Int(1)}, h.Nil())
	condB := h.NewCondition("tangle::b", nil, h.Nil())
	deps := SingletonDeps(h, condA).Union(h, SingletonDeps(h, condB))
	signal := h.NewSignal(deps)

	err := SignalError(h, signal)
	if err == nil {
		t.Fatal("SignalError: want a non-nil error")
	}
	// SignalError wraps the combined error with a stack trace; unwrap it
	// once to reach the multierr value.
	errs := multierr.Errors(errors.Unwrap(err))
	if len(errs) != 2 {
		t.Fatalf("SignalError: got %d wrapped errors, want 2", len(errs))
	}
	joined := err.Error()
	if !strings.Contains(joined, "tangle::a") || !strings.Contains(joined, "tangle::b") {
		t.Errorf("SignalError message: got %q, want both condition kinds", joined)
	}
}

func TestConditionErrorMessageWithAndWithoutPayload(t *testing.T) {
	withPayload := &ConditionError{Kind: "tangle::x", Payload: []string{"1", "2"}}
	if got := withPayload.Error(); !strings.Contains(got, "tangle::x") || !strings.Contains(got, "[1 2]") {
		t.Errorf("ConditionError.Error(): got %q", got)
	}

	bare := &ConditionError{Kind: "tangle::y"}
	if got := bare.Error(); !strings.Contains(got, "tangle::y") {
		t.Errorf("ConditionError.Error(): got %q", got)
	}
}
