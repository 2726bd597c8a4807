package sizing

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"cssmix/css"
)

func TestConverter_Rpx(t *testing.T) {
	c := NewConverter(nil, zap.NewNop())

	tests := []struct {
		name    string
		px      string
		width   string
		want    string
		wantErr error
	}{
		{name: "pc breakpoint", px: "60px", width: "pc", want: "3.1vw"},
		{name: "mp breakpoint", px: "24px", width: "mp", want: "3.1vw"},
		{name: "bare number size", px: "60", width: "pc", want: "3.1vw"},
		{name: "literal width", px: "24px", width: "768", want: "3.1vw"},
		{name: "literal width with unit", px: "24px", width: "768px", want: "3.1vw"},
		{name: "exact result has no padding", px: "96px", width: "pc", want: "5vw"},
		{
			name:  "clamp keeps bounds verbatim",
			px:    "clamp(16px, 24px, 32px)",
			width: "mp",
			want:  "clamp(16px, 3.1vw, 32px)",
		},
		{
			name:  "min rewrite",
			px:    "min(10px, 24px)",
			width: "mp",
			want:  "min(10px, 3.1vw)",
		},
		{
			name:  "max rewrite",
			px:    "max(10px, 24px)",
			width: "mp",
			want:  "max(10px, 3.1vw)",
		},
		{name: "unknown breakpoint", px: "24px", width: "tablet", wantErr: ErrInvalidWidth},
		{name: "zero width", px: "24px", width: "0", wantErr: ErrInvalidWidth},
		{name: "negative width", px: "24px", width: "-768", wantErr: ErrInvalidWidth},
		{name: "not a size", px: "red", width: "pc", wantErr: ErrInvalidSize},
		{name: "wrong size unit", px: "2em", width: "pc", wantErr: ErrInvalidSize},
		{name: "calc without 2nd argument", px: "min(10px)", width: "pc", wantErr: ErrInvalidSize},
		{name: "calc with bad 2nd argument", px: "min(10px, red)", width: "pc", wantErr: ErrInvalidSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Rpx(tc.px, tc.width)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Rpx(%q, %q) error = %v, want %v", tc.px, tc.width, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Rpx(%q, %q) failed: %v", tc.px, tc.width, err)
			}
			if got != tc.want {
				t.Errorf("Rpx(%q, %q) = %q, want %q", tc.px, tc.width, got, tc.want)
			}
		})
	}
}

func TestConverter_Convert(t *testing.T) {
	c := NewConverter(nil, zap.NewNop())

	tests := []struct {
		name    string
		px      string
		width   string
		unit    string
		decimal int
		want    string
		wantErr error
	}{
		{name: "two decimals", px: "45px", width: "pc", unit: "vw", decimal: 2, want: "2.34vw"},
		{name: "vh unit", px: "60px", width: "pc", unit: "vh", decimal: 1, want: "3.1vh"},
		{name: "percent unit", px: "60px", width: "pc", unit: "%", decimal: 1, want: "3.1%"},
		{name: "zero decimal disables rounding", px: "60px", width: "pc", unit: "vw", decimal: 0, want: "3.125vw"},
		{name: "rounds half away", px: "3px", width: "160", unit: "vw", decimal: 1, want: "1.9vw"},
		{name: "bad unit", px: "60px", width: "pc", unit: "12", decimal: 1, wantErr: ErrInvalidUnit},
		{name: "empty unit", px: "60px", width: "pc", unit: "", decimal: 1, wantErr: ErrInvalidUnit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Convert(tc.px, tc.width, tc.unit, tc.decimal)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Convert() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Convert() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestConverter_Options(t *testing.T) {
	c := NewConverter(nil, zap.NewNop(), WithUnit("rem"), WithDecimal(3))

	if c.Unit() != "rem" {
		t.Errorf("Unit() = %q, want rem", c.Unit())
	}
	if c.Decimal() != 3 {
		t.Errorf("Decimal() = %d, want 3", c.Decimal())
	}

	got, err := c.Rpx("24px", "mp")
	if err != nil {
		t.Fatalf("Rpx() failed: %v", err)
	}
	if got != "3.125rem" {
		t.Errorf("Rpx() = %q, want 3.125rem", got)
	}
}

func TestConverter_WidthOverrides(t *testing.T) {
	widths := DefaultWidths()
	widths["tablet"] = 1024
	widths["pc"] = 1280

	c := NewConverter(widths, zap.NewNop())

	if got, _ := c.Rpx("32px", "tablet"); got != "3.1vw" {
		t.Errorf("tablet breakpoint = %q, want 3.1vw", got)
	}
	if got, _ := c.Rpx("64px", "pc"); got != "5vw" {
		t.Errorf("overridden pc breakpoint = %q, want 5vw", got)
	}
	// untouched entries stay at their defaults
	if got, _ := c.Rpx("24px", "mp"); got != "3.1vw" {
		t.Errorf("mp breakpoint = %q, want 3.1vw", got)
	}
}

func TestConverter_NonPositiveTableEntry(t *testing.T) {
	c := NewConverter(Widths{"broken": 0}, zap.NewNop())
	if _, err := c.Rpx("24px", "broken"); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("expected ErrInvalidWidth for zero table entry, got %v", err)
	}
}

func TestConverter_Apply(t *testing.T) {
	c := NewConverter(nil, zap.NewNop())

	rule := &css.Rule{Selector: ".title"}
	if err := c.Apply(rule, "24px", "mp"); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	v, ok := rule.Get("font-size")
	if !ok {
		t.Fatal("font-size declaration was not set")
	}
	if v.Raw != "3.1vw" {
		t.Errorf("font-size = %q, want 3.1vw", v.Raw)
	}

	if err := c.Apply(rule, "bad", "mp"); err == nil {
		t.Error("Apply() with bad size should fail")
	}
	// failed Apply leaves the declaration untouched
	if v, _ := rule.Get("font-size"); v.Raw != "3.1vw" {
		t.Errorf("font-size changed after failed Apply: %q", v.Raw)
	}
}

func TestDefaultWidths_ReturnsCopies(t *testing.T) {
	a := DefaultWidths()
	a["pc"] = 1

	if b := DefaultWidths(); b["pc"] != 1920 {
		t.Error("mutating one DefaultWidths copy leaked into another")
	}
}
