package tangle

// substituteArgs replaces Variables 0..len(args)-1 in body with args,
// using scope offsets so nested lambdas are not affected (spec.md
// §4.2.4: "substitute variables 0..arity-1 in the body with the supplied
// args, using scope offsets so nested lambdas are not affected"). This is
// ordinary de Bruijn multi-substitution: a free variable deeper than the
// substituted range is shifted down by the number of args consumed (the
// binder that introduced them is gone), and a substituted argument is
// shifted up by the current nesting depth so that any variables free
// within it still refer to their original (now more deeply nested)
// binders.
func (h *Heap) substituteArgs(body Address, args []Address) Address {
	return h.subst(body, args, 0)
}

func (h *Heap) subst(term Address, args []Address, depth int) Address {
	s := h.slot(term)
	switch s.tag {
	case TagVariable:
		idx := int(s.intVal)
		if idx < depth {
			return term
		}
		j := idx - depth
		if j < len(args) {
			return h.shift(args[j], depth, 0)
		}
		return h.NewVariable(idx - len(args))

	case TagLambda:
		newBody := h.subst(s.fields[0], args, depth+1)
		if newBody == s.fields[0] {
			return term
		}
		return h.NewLambda(s.arity, s.variadic, newBody)

	case TagApplication:
		newFn := h.subst(s.fields[0], args, depth)
		newArgs := substSlice(h, s.fields[1:], args, depth)
		return h.NewApplication(newFn, newArgs)

	case TagPartial:
		newFn := h.subst(s.fields[0], args, depth)
		newCaptured := substSlice(h, s.fields[1:], args, depth)
		return h.NewPartial(newFn, newCaptured)

	case TagList:
		return h.NewList(substSlice(h, s.fields, args, depth))

	case TagRecord:
		return h.NewRecord(s.keys, substSlice(h, s.fields, args, depth))

	case TagEffect:
		return h.NewEffect(h.subst(s.fields[0], args, depth))

	case TagCondition:
		newFields := substSlice(h, s.fields, args, depth)
		newToken := s.conditionToken
		if newToken != NoAddress {
			newToken = h.subst(newToken, args, depth)
		}
		return h.NewCondition(s.conditionKind, newFields, newToken)

	default:
		if isIteratorTag(s.tag) {
			newFields := substSlice(h, s.fields, args, depth)
			return h.rebuildIterator(term, newFields)
		}
		// Nil, Bool, Int, Float, String, Symbol, Builtin, Constructor,
		// Signal, Hashmap/Hashset literals: no variables to substitute.
		return term
	}
}

func substSlice(h *Heap, items []Address, args []Address, depth int) []Address {
	out := make([]Address, len(items))
	for i, it := range items {
		out[i] = h.subst(it, args, depth)
	}
	return out
}

// shift adds delta to every free Variable in term whose index is >=
// cutoff (the standard de Bruijn shifting operation used when relocating
// a term under additional binders during substitution).
func (h *Heap) shift(term Address, delta, cutoff int) Address {
	if delta == 0 {
		return term
	}
	s := h.slot(term)
	switch s.tag {
	case TagVariable:
		idx := int(s.intVal)
		if idx >= cutoff {
			return h.NewVariable(idx + delta)
		}
		return term

	case TagLambda:
		return h.NewLambda(s.arity, s.variadic, h.shift(s.fields[0], delta, cutoff+1))

	case TagApplication:
		return h.NewApplication(h.shift(s.fields[0], delta, cutoff), shiftSlice(h, s.fields[1:], delta, cutoff))

	case TagPartial:
		return h.NewPartial(h.shift(s.fields[0], delta, cutoff), shiftSlice(h, s.fields[1:], delta, cutoff))

	case TagList:
		return h.NewList(shiftSlice(h, s.fields, delta, cutoff))

	case TagRecord:
		return h.NewRecord(s.keys, shiftSlice(h, s.fields, delta, cutoff))

	case TagEffect:
		return h.NewEffect(h.shift(s.fields[0], delta, cutoff))

	case TagCondition:
		newToken := s.conditionToken
		if newToken != NoAddress {
			newToken = h.shift(newToken, delta, cutoff)
		}
		return h.NewCondition(s.conditionKind, shiftSlice(h, s.fields, delta, cutoff), newToken)

	default:
		if isIteratorTag(s.tag) {
			return h.rebuildIterator(term, shiftSlice(h, s.fields, delta, cutoff))
		}
		return term
	}
}

func shiftSlice(h *Heap, items []Address, delta, cutoff int) []Address {
	out := make([]Address, len(items))
	for i, it := range items {
		out[i] = h.shift(it, delta, cutoff)
	}
	return out
}
