package css

import (
	"reflect"
	"testing"
)

func TestParseTerm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  TermKind
		fname string
		args  []string
	}{
		{name: "token", input: "medium2", kind: TermKindToken, fname: "medium2"},
		{name: "token with whitespace", input: "  ease-out  ", kind: TermKindToken, fname: "ease-out"},
		{name: "dimension literal", input: "280ms", kind: TermKindLiteral},
		{name: "number literal", input: "280", kind: TermKindLiteral},
		{name: "multi token literal", input: "opacity 1s linear", kind: TermKindLiteral},
		{name: "empty", input: "", kind: TermKindLiteral},
		{
			name:  "calc",
			input: "min(10px, 24px)",
			kind:  TermKindCalc,
			fname: "min",
			args:  []string{"10px", "24px"},
		},
		{
			name:  "calc name is lowercased",
			input: "CLAMP(16px, 24px, 32px)",
			kind:  TermKindCalc,
			fname: "clamp",
			args:  []string{"16px", "24px", "32px"},
		},
		{
			name:  "nested call stays one argument",
			input: "clamp(16px, min(5vw, 24px), 32px)",
			kind:  TermKindCalc,
			fname: "clamp",
			args:  []string{"16px", "min(5vw, 24px)", "32px"},
		},
		{
			name:  "helper call",
			input: "transition(opacity transform, medium2, ease-out)",
			kind:  TermKindCalc,
			fname: "transition",
			args:  []string{"opacity transform", "medium2", "ease-out"},
		},
		{
			name:  "no arguments",
			input: "transition()",
			kind:  TermKindCalc,
			fname: "transition",
		},
		{
			name:  "trailing priority keeps value literal",
			input: "rpx(24px, mp) !important",
			kind:  TermKindLiteral,
		},
		{
			name:  "trailing value keeps value literal",
			input: "min(10px, 24px) solid",
			kind:  TermKindLiteral,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := ParseTerm(tc.input)
			if term.Kind != tc.kind {
				t.Fatalf("ParseTerm(%q).Kind = %v, want %v", tc.input, term.Kind, tc.kind)
			}
			if term.Name != tc.fname {
				t.Errorf("ParseTerm(%q).Name = %q, want %q", tc.input, term.Name, tc.fname)
			}
			if !reflect.DeepEqual(term.Args, tc.args) {
				t.Errorf("ParseTerm(%q).Args = %#v, want %#v", tc.input, term.Args, tc.args)
			}
		})
	}
}

func TestTerm_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// calc comes out canonical regardless of source spacing
		{"min( 10px,24px )", "min(10px, 24px)"},
		{"clamp(16px, min(5vw, 24px), 32px)", "clamp(16px, min(5vw, 24px), 32px)"},
		{"medium2", "medium2"},
		{"280ms", "280ms"},
	}

	for _, tc := range tests {
		if got := ParseTerm(tc.input).String(); got != tc.want {
			t.Errorf("ParseTerm(%q).String() = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTerm_WithArg(t *testing.T) {
	term := ParseTerm("clamp(16px, 24px, 32px)")

	got := term.WithArg(1, "3.1vw")
	if s := got.String(); s != "clamp(16px, 3.1vw, 32px)" {
		t.Errorf("WithArg result = %q, want %q", s, "clamp(16px, 3.1vw, 32px)")
	}

	// receiver must be untouched
	if s := term.String(); s != "clamp(16px, 24px, 32px)" {
		t.Errorf("original term changed to %q", s)
	}

	// out of range index is a no-op
	if s := term.WithArg(5, "x").String(); s != "clamp(16px, 24px, 32px)" {
		t.Errorf("out of range WithArg changed term to %q", s)
	}
}

func TestTermKind(t *testing.T) {
	for _, k := range []TermKind{TermKindLiteral, TermKindToken, TermKindCalc} {
		if !k.IsValid() {
			t.Errorf("TermKind %v reported invalid", k)
		}
		parsed, err := ParseTermKind(k.String())
		if err != nil {
			t.Errorf("ParseTermKind(%q) failed: %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseTermKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}

	if _, err := ParseTermKind("nope"); err == nil {
		t.Error("ParseTermKind accepted unknown name")
	}
}
