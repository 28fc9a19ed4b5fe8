package tangle

import (
	"strings"
	"testing"
)

func TestFormatScalars(t *testing.T) {
	h := NewHeap()
	cases := []struct {
		v    Address
		want string
	}{
		{h.Nil(), "null"},
		{h.Bool(true), "true"},
		{h.Bool(false), "false"},
		{h.Int(42), "42"},
		{h.String("hi"), `"hi"`},
	}
	for _, c := range cases {
		if got := h.Format(c.v); got != c.want {
			t.Errorf("Format: got %q, want %q", got, c.want)
		}
	}
}

func TestFormatSymbol(t *testing.T) {
	h := NewHeap()
	sym := h.Symbol(7)
	if got, want := h.Format(sym), "Symbol(7)"; got != want {
		t.Errorf("Format(symbol): got %q, want %q", got, want)
	}
}

func TestFormatList(t *testing.T) {
	h := NewHeap()
	list := h.NewList([]Address{h.Int(1), h.Int(2), h.Int(3)})
	if got, want := h.Format(list), "[1, 2, 3]"; got != want {
		t.Errorf("Format(list): got %q, want %q", got, want)
	}
	if got, want := h.Format(h.NewList(nil)), "[]"; got != want {
		t.Errorf("Format(empty list): got %q, want %q", got, want)
	}
}

func TestFormatRecord(t *testing.T) {
	h := NewHeap()
	rec := h.NewRecord([]Address{h.String("a")}, []Address{h.Int(1)})
	if got, want := h.Format(rec), `{ "a": 1 }`; got != want {
		t.Errorf("Format(record): got %q, want %q", got, want)
	}
	if got, want := h.Format(h.NewRecord(nil, nil)), "{}"; got != want {
		t.Errorf("Format(empty record): got %q, want %q", got, want)
	}
}

func TestFormatLambdaShowsArityAndBody(t *testing.T) {
	h := NewHeap()
	lambda := h.NewLambda(1, false, h.NewVariable(0))
	if got, want := h.Format(lambda), "(1) => $0"; got != want {
		t.Errorf("Format(lambda): got %q, want %q", got, want)
	}

	variadic := h.NewLambda(2, true, h.NewVariable(0))
	if got, want := h.Format(variadic), "(2+) => $0"; got != want {
		t.Errorf("Format(variadic lambda): got %q, want %q", got, want)
	}
}

func TestFormatSignalBraceSyntax(t *testing.T) {
	h := NewHeap()
	cond := h.NewCondition("tangle::test", []Address{h.Int(1)}, h.Nil())
	signal := h.NewSignalOf(cond)
	got := h.Format(signal)
	if !strings.HasPrefix(got, "{<tangle::test:[1]>") || !strings.HasSuffix(got, "}") {
		t.Errorf("Format(signal): got %q", got)
	}
}

func TestFormatConditionWithToken(t *testing.T) {
	h := NewHeap()
	token := h.NewToken()
	cond := h.NewCondition("tangle::scan", []Address{h.String("x")}, token)
	got := h.Format(cond)
	want := `<tangle::scan:["x"]:` + h.Format(token) + `>`
	if got != want {
		t.Errorf("Format(condition with token): got %q, want %q", got, want)
	}
}

func TestFormatConditionWithoutToken(t *testing.T) {
	h := NewHeap()
	cond := h.NewCondition("tangle::no_token", nil, h.Nil())
	if got, want := h.Format(cond), "<tangle::no_token:[]>"; got != want {
		t.Errorf("Format(condition without token): got %q, want %q", got, want)
	}
}

func TestToJSONRoundTripsDataTerms(t *testing.T) {
	h := NewHeap()
	rec := h.NewRecord([]Address{h.String("a"), h.String("b")}, []Address{h.Int(1), h.NewList([]Address{h.Int(2), h.Int(3)})})

	out, err := h.ToJSON(rec)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, `"a":1`) || !strings.Contains(got, `"b":[2,3]`) {
		t.Errorf("ToJSON: got %s", got)
	}
}

func TestToJSONRejectsNonDataTerm(t *testing.T) {
	h := NewHeap()
	lambda := h.NewLambda(1, false, h.NewVariable(0))

	_, err := h.ToJSON(lambda)
	if err == nil {
		t.Fatal("ToJSON(lambda): want an error, got nil")
	}
	var fe *FormatError
	if !asFormatError(err, &fe) {
		t.Fatalf("ToJSON(lambda): error is not a *FormatError: %v", err)
	}
	if fe.Tag != TagLambda {
		t.Errorf("FormatError.Tag: got %v, want TagLambda", fe.Tag)
	}
}

func asFormatError(err error, target **FormatError) bool {
	fe, ok := err.(*FormatError)
	if ok {
		*target = fe
	}
	return ok
}
