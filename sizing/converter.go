// Package sizing implements the responsive size helper: conversion of
// absolute pixel sizes into viewport-relative units against a reference
// design width, with min/max/clamp rewriting.
package sizing

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"strings"

	"go.uber.org/zap"

	"cssmix/css"
)

// Input validation failures. All are hard failures at evaluation time.
var (
	ErrInvalidWidth = errors.New("invalid reference width")
	ErrInvalidSize  = errors.New("invalid pixel size")
	ErrInvalidUnit  = errors.New("invalid target unit")
)

// Widths maps named breakpoints to reference design widths in pixels.
type Widths map[string]float64

// DefaultWidths returns a copy of the built-in reference-width table.
func DefaultWidths() Widths {
	return maps.Clone(defaultWidths)
}

var defaultWidths = Widths{
	"pc": 1920,
	"mp": 768,
}

// Conversion defaults. MaxDecimal bounds the rounding precision, matching
// the configuration validation limit.
const (
	DefaultUnit    = "vw"
	DefaultDecimal = 1
	MaxDecimal     = 6
)

// Converter turns absolute pixel sizes into percentages of a reference
// width. The width table, target unit and rounding precision are fixed at
// construction; the converter itself is stateless beyond them.
type Converter struct {
	widths  Widths
	unit    string
	decimal int
	log     *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithUnit overrides the default target unit (any CSS unit identifier).
func WithUnit(unit string) Option {
	return func(c *Converter) { c.unit = unit }
}

// WithDecimal overrides the default rounding precision. Zero disables the
// rounding step entirely.
func WithDecimal(decimal int) Option {
	return func(c *Converter) { c.decimal = decimal }
}

// NewConverter creates a converter over the given width table. A nil table
// falls back to the built-in defaults.
func NewConverter(widths Widths, log *zap.Logger, options ...Option) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	if widths == nil {
		widths = DefaultWidths()
	}
	c := &Converter{
		widths:  widths,
		unit:    DefaultUnit,
		decimal: DefaultDecimal,
		log:     log.Named("sizing"),
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// Unit returns the configured target unit.
func (c *Converter) Unit() string { return c.unit }

// Decimal returns the configured rounding precision.
func (c *Converter) Decimal() int { return c.decimal }

// Rpx converts a pixel size against a named or literal reference width using
// the converter's configured unit and precision. The size may be wrapped in
// a calculation expression (min/max/clamp and friends), in which case only
// its 2nd argument is converted and the call is re-serialized around it.
func (c *Converter) Rpx(px, width string) (string, error) {
	return c.Convert(px, width, c.unit, c.decimal)
}

// Convert is the full form of Rpx with explicit unit and precision.
func (c *Converter) Convert(px, width, unit string, decimal int) (string, error) {
	if !css.IsUnit(unit) {
		return "", fmt.Errorf("%q: %w", unit, ErrInvalidUnit)
	}

	ref, err := c.resolveWidth(width)
	if err != nil {
		return "", err
	}

	term := css.ParseTerm(px)
	if term.Kind != css.TermKindCalc {
		size, err := pixelSize(px)
		if err != nil {
			return "", err
		}
		return formatResult(size, ref, unit, decimal), nil
	}

	// Only the 2nd argument of a calculation expression is the convertible
	// pixel size; everything else is preserved verbatim.
	if len(term.Args) < 2 {
		return "", fmt.Errorf("calculation %q has no 2nd argument: %w", px, ErrInvalidSize)
	}
	size, err := pixelSize(term.Args[1])
	if err != nil {
		return "", err
	}
	return term.WithArg(1, formatResult(size, ref, unit, decimal)).String(), nil
}

// Apply converts a pixel size and sets it as the rule's `font-size`
// property - the declaration-writing variant of Rpx.
func (c *Converter) Apply(rule *css.Rule, px, width string) error {
	v, err := c.Rpx(px, width)
	if err != nil {
		return err
	}
	c.log.Debug("Setting font-size", zap.String("selector", rule.Selector), zap.String("value", v))
	rule.Set("font-size", v)
	return nil
}

// resolveWidth looks the width up in the breakpoint table first, then takes
// it as a literal pixel value. Zero and negative widths are rejected rather
// than letting the division misbehave.
func (c *Converter) resolveWidth(width string) (float64, error) {
	name := strings.TrimSpace(width)
	if w, ok := c.widths[name]; ok {
		if w <= 0 {
			return 0, fmt.Errorf("breakpoint %q is %s: %w", name, css.FormatNumber(w), ErrInvalidWidth)
		}
		return w, nil
	}

	val := css.ParseValue(name)
	if !val.IsNumeric() || (val.Unit != "" && val.Unit != "px") {
		return 0, fmt.Errorf("%q is neither a breakpoint nor a pixel width: %w", width, ErrInvalidWidth)
	}
	if val.Value <= 0 {
		return 0, fmt.Errorf("width %q must be positive: %w", width, ErrInvalidWidth)
	}
	return val.Value, nil
}

// pixelSize normalizes a pixel literal to its bare magnitude.
func pixelSize(s string) (float64, error) {
	val := css.ParseValue(strings.TrimSpace(s))
	if !val.IsNumeric() || (val.Unit != "" && val.Unit != "px") {
		return 0, fmt.Errorf("%q is not a pixel size: %w", s, ErrInvalidSize)
	}
	return val.Value, nil
}

// formatResult scales the size against the reference width and renders it
// with the target unit. Rounding is round-half-away at the requested number
// of fractional digits; decimal == 0 leaves the result untouched.
func formatResult(size, ref float64, unit string, decimal int) string {
	result := size / ref * 100
	if decimal > 0 {
		p := math.Pow(10, float64(decimal))
		result = math.Round(result*p) / p
	}
	return css.FormatNumber(result) + unit
}
