package tangle

func init() {
	registerBuiltin(BuiltinResolveQueryBranch, "ResolveQueryBranch", 2, []bool{true, true}, queryBranchBuiltin)
	registerBuiltin(BuiltinResolveQueryLeaf, "ResolveQueryLeaf", 1, []bool{true}, queryLeafBuiltin)
}

func queryBranchBuiltin(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	return ev.ResolveQueryBranch(args[0], args[1], state)
}

func queryLeafBuiltin(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	return ev.ResolveQueryLeaf(args[0], state)
}

// ResolveQueryBranch drives the GraphQL-shaped traversal of spec.md §4.4:
// shape is a unary function describing the desired result structure for a
// given branch value. self is strict by the builtin's own signature (the
// evaluator has already reduced it to weak head normal form before this
// implementation runs), so an Application wrapping a Record — e.g.
// Application(Identity, [record]) — has already collapsed to the Record
// itself by the time the Record rule below ever gets to match it.
func (ev *Evaluator) ResolveQueryBranch(self, shape Address, state StateStore) (Address, *Tree) {
	h := ev.heap
	switch h.Tag(self) {
	case TagNil:
		return h.Nil(), NilDeps()

	case TagRecord:
		call := h.NewApplication(shape, []Address{self})
		shaped, deps := ev.Evaluate(call, state)
		if h.Tag(shaped) == TagSignal {
			return shaped, deps
		}
		resolved, resolveDeps := ev.resolveRecord(shaped, state)
		return resolved, deps.Union(h, resolveDeps)

	case TagHashmap, TagHashset, TagTree:
		return h.invalidFunctionArgs(self), NilDeps()

	default:
		if h.IsIterable(self) {
			return ev.resolveQueryBranchIterable(self, shape, state)
		}
		return h.invalidFunctionArgs(self), NilDeps()
	}
}

// resolveRecord evaluates every field of a record produced by a shape
// function strictly, unioning every field's Signal into one combined
// result rather than stopping at the first (spec.md §4.4 "resolved via
// ResolveRecord which evaluates each field strictly, shorting to a signal
// if any field becomes one").
func (ev *Evaluator) resolveRecord(record Address, state StateStore) (Address, *Tree) {
	h := ev.heap
	if h.Tag(record) != TagRecord {
		return h.invalidFunctionArgs(record), NilDeps()
	}
	keys, values := h.RecordKeys(record), h.RecordValues(record)
	outValues := make([]Address, len(values))
	deps := NilDeps()
	var signal *Tree
	for i, v := range values {
		resolved, fieldDeps := ev.Evaluate(v, state)
		deps = deps.Union(h, fieldDeps)
		if h.Tag(resolved) == TagSignal {
			signal = signal.Union(h, h.SignalConditions(resolved))
			continue
		}
		outValues[i] = resolved
	}
	if signal != nil {
		return h.NewSignal(signal), deps
	}
	return h.NewRecord(keys, outValues), deps
}

// resolveQueryBranchIterable recurses ResolveQueryBranch over every item
// of an iterable self, collecting the results into a List and unioning
// every item's Signal into one combined result (spec.md §4.4 "Iterable:
// recursively call ResolveQueryBranch(item, shape) for each item, collect
// into a List").
func (ev *Evaluator) resolveQueryBranchIterable(self, shape Address, state StateStore) (Address, *Tree) {
	h := ev.heap
	it := h.IteratorFor(self)
	var items []Address
	deps := NilDeps()
	var signal *Tree
	for {
		item, next, itemDeps, ok := it.Next(ev, state)
		deps = deps.Union(h, itemDeps)
		if !ok {
			break
		}
		reduced, reduceDeps := ev.Evaluate(item, state)
		deps = deps.Union(h, reduceDeps)
		if h.Tag(reduced) == TagSignal {
			signal = signal.Union(h, h.SignalConditions(reduced))
			it = next
			continue
		}
		result, resultDeps := ev.ResolveQueryBranch(reduced, shape, state)
		deps = deps.Union(h, resultDeps)
		if h.Tag(result) == TagSignal {
			signal = signal.Union(h, h.SignalConditions(result))
			it = next
			continue
		}
		items = append(items, result)
		it = next
	}
	if signal != nil {
		return h.NewSignal(signal), deps
	}
	return h.NewList(items), deps
}

// ResolveQueryLeaf descends into a leaf selection, producing a value free
// of lambdas and iterators (spec.md §4.4). self is strict, so it already
// arrives in weak head normal form.
func (ev *Evaluator) ResolveQueryLeaf(self Address, state StateStore) (Address, *Tree) {
	h := ev.heap
	switch h.Tag(self) {
	case TagNil, TagBool, TagInt, TagFloat, TagString:
		return self, NilDeps()

	case TagLambda:
		arity, variadic := h.LambdaArity(self)
		if variadic || arity != 0 {
			return h.invalidFunctionArgs(self), NilDeps()
		}
		call := h.NewApplication(self, nil)
		applied, deps := ev.Evaluate(call, state)
		if h.Tag(applied) == TagSignal {
			return applied, deps
		}
		leaf, leafDeps := ev.ResolveQueryLeaf(applied, state)
		return leaf, deps.Union(h, leafDeps)

	case TagRecord, TagHashmap, TagHashset, TagTree:
		return h.invalidFunctionArgs(self), NilDeps()

	default:
		if h.IsIterable(self) {
			return ev.resolveQueryLeafIterable(self, state)
		}
		return h.invalidFunctionArgs(self), NilDeps()
	}
}

func (ev *Evaluator) resolveQueryLeafIterable(self Address, state StateStore) (Address, *Tree) {
	h := ev.heap
	it := h.IteratorFor(self)
	var items []Address
	deps := NilDeps()
	var signal *Tree
	for {
		item, next, itemDeps, ok := it.Next(ev, state)
		deps = deps.Union(h, itemDeps)
		if !ok {
			break
		}
		reduced, reduceDeps := ev.Evaluate(item, state)
		deps = deps.Union(h, reduceDeps)
		if h.Tag(reduced) == TagSignal {
			signal = signal.Union(h, h.SignalConditions(reduced))
			it = next
			continue
		}
		leaf, leafDeps := ev.ResolveQueryLeaf(reduced, state)
		deps = deps.Union(h, leafDeps)
		if h.Tag(leaf) == TagSignal {
			signal = signal.Union(h, h.SignalConditions(leaf))
			it = next
			continue
		}
		items = append(items, leaf)
		it = next
	}
	if signal != nil {
		return h.NewSignal(signal), deps
	}
	return h.NewList(items), deps
}
