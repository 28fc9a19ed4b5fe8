package tangle

import "testing"

// TestEffectLookupHitAndMiss mirrors the S3 walkthrough: one reactive
// variable present in the state store, one absent, each evaluated on its
// own against the same store.
func TestEffectLookupHitAndMiss(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	store := NewMapStore(h)
	cond := h.NewCondition("tangle::variable::get", []Address{h.String("counter"), h.Int(0)}, h.Nil())
	store.Resolve(cond, h.Int(42))

	present := h.NewApplication(h.NewBuiltin(BuiltinGetVariable), []Address{h.String("counter"), h.Int(0)})
	absent := h.NewApplication(h.NewBuiltin(BuiltinGetVariable), []Address{h.String("unset"), h.Int(0)})

	presentResult, presentDeps := ev.Evaluate(present, store)
	if h.Tag(presentResult) != TagInt || h.IntValue(presentResult) != 42 {
		t.Fatalf("Evaluate(present): got %s, want 42", h.Format(presentResult))
	}
	if presentDeps.Len() != 1 {
		t.Errorf("expected exactly one dependency on a resolved Effect, got %d", presentDeps.Len())
	}

	absentResult, absentDeps := ev.Evaluate(absent, store)
	if h.Tag(absentResult) != TagSignal {
		t.Fatalf("Evaluate(absent): got %s, want a Signal", h.Format(absentResult))
	}
	if absentDeps.Len() != 1 {
		t.Errorf("expected exactly one dependency on an unresolved Effect, got %d", absentDeps.Len())
	}
}

// TestGetVariableSpecS3Example reproduces spec.md §8 S3 literally:
// GetVariable(Symbol(123), 3) against a store keyed
// reflex::variable::get[Symbol(123),3](Nil) resolves to Int(4), with the
// same condition (including the `initial` field of the payload) recorded
// as the sole dependency.
func TestGetVariableSpecS3Example(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	symbol := h.Symbol(123)
	store := NewMapStore(h)
	cond := h.NewCondition(conditionVariableGet, []Address{symbol, h.Int(3)}, h.Nil())
	store.Resolve(cond, h.Int(4))

	term := h.NewApplication(h.NewBuiltin(BuiltinGetVariable), []Address{symbol, h.Int(3)})
	result, deps := ev.Evaluate(term, store)
	if h.Tag(result) != TagInt || h.IntValue(result) != 4 {
		t.Fatalf("GetVariable(Symbol(123), 3): got %s, want 4", h.Format(result))
	}
	conds := deps.Members()
	if len(conds) != 1 || !h.Equals(conds[0], cond) {
		t.Errorf("expected the single dependency to be the get condition, got %v", conds)
	}
}

func TestStepLimitSignalsRatherThanLoopsForever(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h, WithMaxSteps(3))

	// ((x => x(x))(x => x(x))) never reduces to WHNF; the step budget must
	// cut it off rather than hang the test.
	omegaBody := h.NewApplication(h.NewVariable(0), []Address{h.NewVariable(0)})
	omega := h.NewLambda(1, false, omegaBody)
	term := h.NewApplication(omega, []Address{omega})

	result, _ := ev.Evaluate(term, NilStore{})
	if h.Tag(result) != TagSignal {
		t.Fatalf("expected a step-limit Signal, got %s", h.Format(result))
	}
	conds := h.SignalConditions(result).Members()
	if len(conds) != 1 || h.ConditionKind(conds[0]) != stepLimitConditionKind {
		t.Errorf("expected a single %s condition, got %v", stepLimitConditionKind, conds)
	}
}

func TestSignalShortCircuitsApplicationFunctionPosition(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	unresolved := h.NewApplication(h.NewBuiltin(BuiltinGetVariable), []Address{h.String("fn"), h.Int(0)})
	term := h.NewApplication(unresolved, []Address{h.Int(1)})

	result, deps := ev.Evaluate(term, NilStore{})
	if h.Tag(result) != TagSignal {
		t.Fatalf("expected the unresolved function position to propagate as a Signal, got %s", h.Format(result))
	}
	if deps.Len() != 1 {
		t.Errorf("expected one dependency, got %d", deps.Len())
	}
}
