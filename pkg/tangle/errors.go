package tangle

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ConditionError wraps a single unresolved or failed Condition as a Go
// error, carrying its kind and payload for a caller that wants to type
// switch or log structured fields rather than parse Format's text.
type ConditionError struct {
	Kind    string
	Payload []string
}

func (e *ConditionError) Error() string {
	if len(e.Payload) == 0 {
		return fmt.Sprintf("tangle: unresolved condition %q", e.Kind)
	}
	return fmt.Sprintf("tangle: unresolved condition %q %v", e.Kind, e.Payload)
}

// SignalError converts a terminal Signal term into a Go error: one
// ConditionError per member of its condition set, combined with
// go.uber.org/multierr the way the teacher's constraint solver combines
// multiple failed constraints into a single reported outcome, then
// wrapped with github.com/pkg/errors so the caller gets a stack trace
// pinned to the call site that asked for the error, not to wherever deep
// in the reduction loop the Signal was actually built.
func SignalError(h *Heap, signal Address) error {
	if h.Tag(signal) != TagSignal {
		return nil
	}
	var err error
	for _, cond := range h.SignalConditions(signal).Members() {
		payload := h.ConditionPayload(cond)
		fields := make([]string, len(payload))
		for i, p := range payload {
			fields[i] = h.Format(p)
		}
		err = multierr.Append(err, &ConditionError{Kind: h.ConditionKind(cond), Payload: fields})
	}
	return errors.WithStack(err)
}
