// Package css implements the value layer shared by the authoring helpers:
// classification of helper inputs into literals, tokens and calculation
// expressions, dimension parsing, and a small stylesheet model used by the
// expander to rewrite declarations in place.
package css

import (
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "ms", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// handles the "0" case
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// ParseValue parses a single CSS value string into a Value. Multi-token
// values (shorthands, function calls) are stored with Keyword set to the
// normalized raw text.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	val := Value{Raw: s}
	if s == "" {
		return val
	}

	l := css.NewLexer(parse.NewInputString(s))

	var tokens []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		tokens = append(tokens, token{tt, string(data)})
	}

	// strip surrounding whitespace tokens
	for len(tokens) > 0 && tokens[0].typ == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].typ == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return val
	}

	if len(tokens) == 1 {
		t := tokens[0]
		switch t.typ {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(t.data)
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(t.data, 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(t.data)
		case css.StringToken:
			val.Keyword = unquote(t.data)
		case css.HashToken:
			val.Keyword = t.data
		default:
			val.Keyword = val.Raw
		}
		return val
	}

	// Multi-token values (including function calls) keep the raw text.
	val.Keyword = val.Raw
	return val
}

type token struct {
	typ  css.TokenType
	data string
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// FormatNumber renders a float the way CSS expects it - no exponent, no
// trailing zeros, "0.5" rather than ".5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsUnit reports whether s looks like a CSS unit identifier ("vw", "rem",
// "%") that can be appended to a numeric magnitude.
func IsUnit(s string) bool {
	if s == "" {
		return false
	}
	if s == "%" {
		return true
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
