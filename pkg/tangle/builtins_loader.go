package tangle

import "strconv"

func init() {
	registerBuiltin(BuiltinResolveLoaderResults, "ResolveLoaderResults", 2, []bool{true, true}, resolveLoaderResultsImpl)
}

const conditionLoaderError = "tangle::loader_error"

// resolveLoaderResultsImpl correlates a list of requested keys against a
// batch of results keyed positionally (a List) or by key (a Hashmap or
// Record), per spec.md §4.3/S8. It is a pure builtin — no Effect, no
// StateStore round trip: both the keys and the results are already in
// hand by the time an embedder calls it, typically after resolving a
// DataLoader-style batched fetch itself.
func resolveLoaderResultsImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	keysColl, results := args[0], args[1]
	if !h.IsIterable(keysColl) {
		return h.invalidFunctionArgs(args...), NilDeps()
	}
	keys, deps := h.ListCollectStrict(ev, h.IteratorFor(keysColl), state)
	if h.Tag(keys) == TagSignal {
		return keys, deps
	}
	keyItems := h.ListItems(keys)

	switch h.Tag(results) {
	case TagList:
		resultItems := h.ListItems(results)
		if len(resultItems) != len(keyItems) {
			return h.loaderError("Expected " + strconv.Itoa(len(keyItems)) + " results, received " +
				strconv.Itoa(len(resultItems))), deps
		}
		return h.NewList(append([]Address(nil), resultItems...)), deps

	case TagHashmap, TagRecord:
		lookup := func(key Address) (Address, bool) {
			if h.Tag(results) == TagHashmap {
				return h.HashmapGet(results, key)
			}
			return h.RecordGet(results, key)
		}
		entryCount := 0
		if h.Tag(results) == TagHashmap {
			resultKeys, _ := h.HashmapEntries(results)
			entryCount = len(resultKeys)
		} else {
			entryCount = h.RecordLength(results)
		}
		// This only catches an oversized result map. A same-size map that
		// substitutes a wrong key for one of keyItems falls through to the
		// per-key lookup below and is reported as "Missing result for key",
		// not as an unexpected-key error.
		if entryCount > len(keyItems) {
			return h.loaderError("Expected " + strconv.Itoa(len(keyItems)) + " results, received " +
				strconv.Itoa(entryCount)), deps
		}
		out := make([]Address, len(keyItems))
		for i, k := range keyItems {
			v, ok := lookup(k)
			if !ok {
				return h.loaderError("Missing result for key: " + h.Format(k)), deps
			}
			out[i] = v
		}
		return h.NewList(out), deps

	default:
		return h.invalidFunctionArgs(args...), deps
	}
}

// loaderError builds a Signal carrying a human-readable correlation
// failure (spec.md S8: "Expected N results, received M", "Missing result
// for key: X") rather than an opaque typed Condition — the message itself
// is the payload, the same "error is a value" discipline the rest of the
// builtin layer follows (spec.md §7).
func (h *Heap) loaderError(message string) Address {
	cond := h.NewCondition(conditionLoaderError, []Address{h.String(message)}, h.Nil())
	return h.NewSignalOf(cond)
}
