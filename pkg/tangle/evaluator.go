package tangle

import "go.uber.org/zap"

// EvalOption configures an Evaluator (functional-options, the idiom
// gokando's solver configuration and erigon's kong-driven CLI both use).
type EvalOption func(*evalOptions)

type evalOptions struct {
	logger   *zap.Logger
	maxSteps int
}

// WithLogger attaches a structured logger; reduction steps are traced at
// debug level. A nil or never-supplied logger means zap.NewNop(), so the
// hot path never allocates when logging is disabled.
func WithLogger(l *zap.Logger) EvalOption {
	return func(o *evalOptions) { o.logger = l }
}

// WithMaxSteps bounds the number of reduction steps a single Evaluate call
// will perform before giving up with a step-limit Signal. 0 (the default)
// means unbounded. This is the one ambient addition spec.md's distillation
// leaves implicit: recursion through an encoded fixed point (spec.md §9
// "Cyclic structures") can diverge, and a production embedder needs a
// cooperative cutoff — the evaluator itself has no other notion of
// cancellation (spec.md §5 "Cancellation / timeouts: None intrinsic").
func WithMaxSteps(n int) EvalOption {
	return func(o *evalOptions) { o.maxSteps = n }
}

// Evaluator drives terms on one Heap to weak head normal form. It holds no
// per-call mutable state of its own (step budgets are threaded through a
// local counter) so the same Evaluator can be reused across many Evaluate
// calls against the same Heap, as the embedder re-evaluates a term graph
// after resolving state (spec.md §5).
type Evaluator struct {
	heap *Heap
	opts evalOptions
}

// NewEvaluator builds an Evaluator bound to heap.
func NewEvaluator(heap *Heap, opts ...EvalOption) *Evaluator {
	ev := &Evaluator{heap: heap, opts: evalOptions{logger: nopLogger}}
	for _, o := range opts {
		o(&ev.opts)
	}
	if ev.opts.logger == nil {
		ev.opts.logger = nopLogger
	}
	return ev
}

// Heap returns the Heap this Evaluator reduces terms on.
func (ev *Evaluator) Heap() *Heap { return ev.heap }

const stepLimitConditionKind = "tangle::step_limit_exceeded"

// Evaluate reduces term to weak head normal form against state, returning
// the result and the union of every Condition consulted along the way
// (spec.md §4.5). This is the package's one universal invariant: deps
// always reflects exactly the state the result depended on, so a caller
// can cache (result, deps) and cheaply decide whether a state change
// invalidates it (spec.md §1).
func (ev *Evaluator) Evaluate(term Address, state StateStore) (Address, *Tree) {
	steps := 0
	return ev.reduce(term, state, &steps)
}

func (ev *Evaluator) reduce(term Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	accDeps := NilDeps()

	for {
		if ev.opts.maxSteps > 0 {
			*steps++
			if *steps > ev.opts.maxSteps {
				cond := h.NewCondition(stepLimitConditionKind, nil, h.Nil())
				return h.NewSignalOf(cond), accDeps.Union(h, SingletonDeps(h, cond))
			}
		}

		ev.opts.logger.Debug("reduce", zap.String("tag", h.Tag(term).String()))

		switch h.Tag(term) {
		case TagApplication:
			fn := h.ApplicationFn(term)
			args := h.ApplicationArgs(term)

			fnResult, fnDeps := ev.reduce(fn, state, steps)
			accDeps = accDeps.Union(h, fnDeps)
			if h.Tag(fnResult) == TagSignal {
				return fnResult, accDeps
			}

			if h.Tag(fnResult) == TagBuiltin {
				result, deps := ev.applyBuiltin(fnResult, args, state, steps)
				accDeps = accDeps.Union(h, deps)
				if h.Tag(result) == TagSignal {
					return result, accDeps
				}
				term = result
				continue
			}

			applied := h.Apply(fnResult, args)
			if h.Tag(applied) == TagSignal {
				return applied, accDeps
			}
			term = applied
			continue

		case TagEffect:
			cond := h.EffectCondition(term)
			value, found := state.Lookup(h, cond)
			accDeps = accDeps.Union(h, SingletonDeps(h, cond))
			if !found {
				return h.NewSignalOf(cond), accDeps
			}
			term = value
			continue

		case TagSignal:
			return term, accDeps

		default:
			// Atomic scalars/aggregates, and WHNF values that only reduce
			// further under explicit collection (Lambda, Constructor,
			// Iterator, Builtin, a free Variable): all terminate the loop
			// unchanged (spec.md §4.5 steps 1 and 5).
			return term, accDeps
		}
	}
}
