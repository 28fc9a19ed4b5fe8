package tangle

func init() {
	registerBuiltin(BuiltinToRequest, "ToRequest", 1, []bool{true}, toRequestImpl)
}

// toRequestImpl normalizes either a bare URL string or a loosely-shaped
// Record into the canonical four-field request shape {method, url,
// headers, body} an embedder's transport layer can treat uniformly,
// filling in defaults for every field but url (spec.md §8 S7:
// `ToRequest("http://example.com/")` and `ToRequest({url, method,
// headers, body})` in any key order both yield the canonical shape).
func toRequestImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	v := args[0]

	var url, source Address
	switch h.Tag(v) {
	case TagString:
		url, source = v, NoAddress
	case TagRecord:
		got, hasURL := h.RecordGet(v, h.String("url"))
		if !hasURL {
			return h.invalidFunctionArgs(v), NilDeps()
		}
		url, source = got, v
	default:
		return h.invalidFunctionArgs(v), NilDeps()
	}

	field := func(name string, def Address) Address {
		if source == NoAddress {
			return def
		}
		if val, ok := h.RecordGet(source, h.String(name)); ok {
			return val
		}
		return def
	}
	method := field("method", h.String("GET"))
	headers := field("headers", h.emptyRecordAddr)
	body := field("body", h.Nil())

	keys := []Address{h.String("method"), h.String("url"), h.String("headers"), h.String("body")}
	values := []Address{method, url, headers, body}
	return h.NewRecord(keys, values), NilDeps()
}
