package css

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParser_Parse(t *testing.T) {
	input := `
@import url("base.css");

.card {
  color: #333;
  font-size: 24px;
}

h1, h2 {
  margin: 0;
}

@media (max-width: 768px) {
  .card {
    font-size: 18px;
  }
  .note {
    display: none;
  }
}
`
	sheet := NewParser(zap.NewNop()).Parse([]byte(input), "test.css")

	if len(sheet.Items) != 4 {
		t.Fatalf("expected 4 top-level items, got %d", len(sheet.Items))
	}

	if sheet.Items[0].Raw == "" || !strings.HasPrefix(sheet.Items[0].Raw, "@import") {
		t.Errorf("first item should be raw @import, got %+v", sheet.Items[0])
	}

	card := sheet.Items[1].Rule
	if card == nil {
		t.Fatal("second item should be a rule")
	}
	if card.Selector != ".card" {
		t.Errorf("selector = %q, want %q", card.Selector, ".card")
	}
	if len(card.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(card.Declarations))
	}
	if v, ok := card.Get("font-size"); !ok || v.Raw != "24px" {
		t.Errorf("font-size = %+v, ok=%v", v, ok)
	}

	grouped := sheet.Items[2].Rule
	if grouped == nil {
		t.Fatal("third item should be a rule")
	}
	if grouped.Selector != "h1, h2" {
		t.Errorf("grouped selector = %q, want %q", grouped.Selector, "h1, h2")
	}

	mb := sheet.Items[3].MediaBlock
	if mb == nil {
		t.Fatal("fourth item should be a media block")
	}
	if mb.Query != "(max-width: 768px)" && mb.Query != "(max-width:768px)" {
		t.Errorf("media query = %q", mb.Query)
	}
	if len(mb.Rules) != 2 {
		t.Fatalf("expected 2 rules in media block, got %d", len(mb.Rules))
	}
}

func TestParser_NilLogger(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(".a { color: red; }"))
	if len(sheet.Items) != 1 || sheet.Items[0].Rule == nil {
		t.Fatalf("unexpected parse result: %+v", sheet.Items)
	}
}

func TestParser_PreservesOtherAtRules(t *testing.T) {
	input := `@font-face {
  font-family: "Mine";
  src: url("mine.woff2");
}
`
	sheet := NewParser(nil).Parse([]byte(input))
	if len(sheet.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(sheet.Items))
	}
	raw := sheet.Items[0].Raw
	if !strings.HasPrefix(raw, "@font-face") {
		t.Errorf("raw text lost at-rule name: %q", raw)
	}
	if !strings.Contains(raw, "font-family") || !strings.Contains(raw, "mine.woff2") {
		t.Errorf("raw text lost declarations: %q", raw)
	}
}

func TestParser_CustomProperties(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(`:root { --accent: #06c; }`))
	if len(sheet.Items) != 1 || sheet.Items[0].Rule == nil {
		t.Fatal("expected a single rule")
	}
	if v, ok := sheet.Items[0].Rule.Get("--accent"); !ok || v.Raw != "#06c" {
		t.Errorf("--accent = %+v, ok=%v", v, ok)
	}
}

func TestStylesheet_Rules(t *testing.T) {
	input := `.a { color: red; }
@media screen {
  .b { color: blue; }
}
.c { color: green; }
`
	sheet := NewParser(nil).Parse([]byte(input))

	rules := sheet.Rules()
	if len(rules) != 3 {
		t.Fatalf("Rules() returned %d rules, want 3", len(rules))
	}

	// returned pointers must alias the stylesheet
	rules[1].Set("color", "black")
	if v, _ := sheet.Items[1].MediaBlock.Rules[0].Get("color"); v.Raw != "black" {
		t.Errorf("in-place rewrite through Rules() did not stick: %q", v.Raw)
	}
}

func TestStylesheet_RulesBySelector(t *testing.T) {
	input := `.a { color: red; }
.b { color: blue; }
.a { margin: 0; }
`
	sheet := NewParser(nil).Parse([]byte(input))

	if got := sheet.RulesBySelector(".a"); len(got) != 2 {
		t.Errorf("RulesBySelector(.a) returned %d rules, want 2", len(got))
	}
	if got := sheet.RulesBySelector(".missing"); len(got) != 0 {
		t.Errorf("RulesBySelector(.missing) returned %d rules, want 0", len(got))
	}
}

func TestRule_Set(t *testing.T) {
	r := &Rule{Selector: ".a"}

	r.Set("color", "red")
	if len(r.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(r.Declarations))
	}

	// updates in place, does not append
	r.Set("color", "blue")
	if len(r.Declarations) != 1 {
		t.Fatalf("expected Set to update in place, got %d declarations", len(r.Declarations))
	}
	if v, _ := r.Get("color"); v.Raw != "blue" {
		t.Errorf("color = %q, want %q", v.Raw, "blue")
	}
}

func TestStylesheet_String(t *testing.T) {
	input := `.card {
  color: #333;
}

@media (max-width: 768px) {
  .card {
    color: #000;
  }
}
`
	sheet := NewParser(nil).Parse([]byte(input))
	out := sheet.String()

	for _, want := range []string{
		".card {",
		"  color: #333;",
		"@media (max-width: 768px) {",
		"    color: #000;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// output must reparse to the same shape
	again := NewParser(nil).Parse([]byte(out))
	if len(again.Items) != len(sheet.Items) {
		t.Errorf("reparse produced %d items, want %d", len(again.Items), len(sheet.Items))
	}
}
