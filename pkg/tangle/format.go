package tangle

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Format renders a term in the package's canonical textual grammar
// (spec.md §6), the same surface a REPL or log line shows a human: data
// terms print as their literal syntax; Lambdas print as "(arity) => body",
// Applications as "(fn args...)", Variables as "$index", Effects and
// Signals with their conditions spelled out; Constructors, Partials,
// Builtins, Cells and iterators print as an opaque "<...>" tag.
func (h *Heap) Format(addr Address) string {
	var b strings.Builder
	h.format(&b, addr)
	return b.String()
}

func (h *Heap) format(b *strings.Builder, addr Address) {
	switch h.Tag(addr) {
	case TagNil:
		b.WriteString("null")
	case TagBool:
		b.WriteString(strconv.FormatBool(h.BoolValue(addr)))
	case TagInt:
		b.WriteString(strconv.FormatInt(h.IntValue(addr), 10))
	case TagFloat:
		b.WriteString(strconv.FormatFloat(h.FloatValue(addr), 'g', -1, 64))
	case TagString:
		b.WriteString(strconv.Quote(h.StringValue(addr)))
	case TagSymbol:
		b.WriteString("Symbol(")
		b.WriteString(strconv.FormatUint(uint64(h.SymbolValue(addr)), 10))
		b.WriteByte(')')
	case TagList:
		b.WriteByte('[')
		for i, item := range h.ListItems(addr) {
			if i > 0 {
				b.WriteString(", ")
			}
			h.format(b, item)
		}
		b.WriteByte(']')
	case TagRecord:
		keys, values := h.RecordKeys(addr), h.RecordValues(addr)
		if len(keys) == 0 {
			b.WriteString("{}")
			break
		}
		b.WriteString("{ ")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			h.format(b, k)
			b.WriteString(": ")
			h.format(b, values[i])
		}
		b.WriteString(" }")
	case TagHashmap:
		keys, values := h.HashmapEntries(addr)
		if len(keys) == 0 {
			b.WriteString("#{}")
			break
		}
		b.WriteString("#{ ")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			h.format(b, k)
			b.WriteString(": ")
			h.format(b, values[i])
		}
		b.WriteString(" }")
	case TagHashset:
		members := h.HashsetMembers(addr)
		if len(members) == 0 {
			b.WriteString("#{}")
			break
		}
		b.WriteString("#{ ")
		for i, m := range members {
			if i > 0 {
				b.WriteString(", ")
			}
			h.format(b, m)
		}
		b.WriteString(" }")
	case TagConstructor:
		b.WriteString("<constructor/")
		b.WriteString(strconv.Itoa(len(h.ConstructorKeys(addr))))
		b.WriteByte('>')
	case TagLambda:
		arity, variadic := h.LambdaArity(addr)
		b.WriteByte('(')
		b.WriteString(strconv.Itoa(arity))
		if variadic {
			b.WriteByte('+')
		}
		b.WriteString(") => ")
		h.format(b, h.LambdaBody(addr))
	case TagPartial:
		b.WriteString("<partial/")
		b.WriteString(strconv.Itoa(len(h.PartialCaptured(addr))))
		b.WriteByte('>')
	case TagBuiltin:
		b.WriteString("<builtin:")
		b.WriteString(h.BuiltinName(addr))
		b.WriteByte('>')
	case TagApplication:
		b.WriteByte('(')
		h.format(b, h.ApplicationFn(addr))
		for _, a := range h.ApplicationArgs(addr) {
			b.WriteByte(' ')
			h.format(b, a)
		}
		b.WriteByte(')')
	case TagVariable:
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(h.VariableIndex(addr)))
	case TagEffect:
		b.WriteString("<effect:")
		h.formatCondition(b, h.EffectCondition(addr))
		b.WriteByte('>')
	case TagCondition:
		h.formatCondition(b, addr)
	case TagSignal:
		b.WriteByte('{')
		for i, c := range h.SignalConditions(addr).Members() {
			if i > 0 {
				b.WriteByte(',')
			}
			h.formatCondition(b, c)
		}
		b.WriteByte('}')
	case TagCell:
		b.WriteString("<cell>")
	default:
		if isIteratorTag(h.Tag(addr)) {
			b.WriteString("<")
			b.WriteString(h.Tag(addr).String())
			b.WriteString(">")
			return
		}
		b.WriteString("<")
		b.WriteString(h.Tag(addr).String())
		b.WriteString(">")
	}
}

// formatCondition renders a Condition as `<Kind:payload>` or, when it
// carries a correlation token, `<Kind:payload:token>` (spec.md §6
// "conditions: `<Kind:payload:token>` with payload in list form"). The
// kind is this project's own condition-kind string (e.g.
// "tangle::invalid_args") rather than a separately maintained display
// name — spec.md §6's shortcut examples (`<ErrorCondition:"foo">`) belong
// to the original implementation's own type taxonomy, which this package
// does not carry; the condition-kind string already is this project's
// wire contract (§6 "Condition kinds used by builtins").
func (h *Heap) formatCondition(b *strings.Builder, addr Address) {
	b.WriteByte('<')
	b.WriteString(h.ConditionKind(addr))
	b.WriteByte(':')
	b.WriteByte('[')
	for i, p := range h.ConditionPayload(addr) {
		if i > 0 {
			b.WriteString(", ")
		}
		h.format(b, p)
	}
	b.WriteByte(']')
	if token := h.ConditionToken(addr); token != NoAddress && h.Tag(token) != TagNil {
		b.WriteByte(':')
		h.format(b, token)
	}
	b.WriteByte('>')
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ToJSON renders a fully-resolved data term (spec.md §6 "JSON interop"):
// Nil/Bool/Int/Float/String map directly, List becomes a JSON array,
// Record and Hashmap become a JSON object keyed by the key's string value
// (or its Format output for a non-string key). Non-data terms (functions, Effects, Signals, iterators) are
// rejected — an embedder wanting their shape should Format them instead.
func (h *Heap) ToJSON(addr Address) ([]byte, error) {
	v, err := h.toJSONValue(addr)
	if err != nil {
		return nil, err
	}
	return jsonAPI.Marshal(v)
}

func (h *Heap) toJSONValue(addr Address) (interface{}, error) {
	switch h.Tag(addr) {
	case TagNil:
		return nil, nil
	case TagBool:
		return h.BoolValue(addr), nil
	case TagInt:
		return h.IntValue(addr), nil
	case TagFloat:
		return h.FloatValue(addr), nil
	case TagString:
		return h.StringValue(addr), nil
	case TagSymbol:
		return h.Format(addr), nil
	case TagList:
		items := h.ListItems(addr)
		out := make([]interface{}, len(items))
		for i, it := range items {
			v, err := h.toJSONValue(it)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case TagRecord:
		keys, values := h.RecordKeys(addr), h.RecordValues(addr)
		out := make(map[string]interface{}, len(keys))
		for i, k := range keys {
			v, err := h.toJSONValue(values[i])
			if err != nil {
				return nil, err
			}
			out[h.jsonKey(k)] = v
		}
		return out, nil
	case TagHashmap:
		keys, values := h.HashmapEntries(addr)
		out := make(map[string]interface{}, len(keys))
		for i, k := range keys {
			v, err := h.toJSONValue(values[i])
			if err != nil {
				return nil, err
			}
			out[h.jsonKey(k)] = v
		}
		return out, nil
	case TagHashset:
		members := h.HashsetMembers(addr)
		out := make([]interface{}, len(members))
		for i, m := range members {
			v, err := h.toJSONValue(m)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, &FormatError{Addr: addr, Tag: h.Tag(addr)}
	}
}

func (h *Heap) jsonKey(addr Address) string {
	if h.Tag(addr) == TagString {
		return h.StringValue(addr)
	}
	return h.Format(addr)
}

// FormatError reports a term ToJSON cannot represent — any term whose
// value depends on a function, state, or an in-progress collection.
type FormatError struct {
	Addr Address
	Tag  Tag
}

func (e *FormatError) Error() string {
	return "tangle: cannot render " + e.Tag.String() + " term as JSON"
}
