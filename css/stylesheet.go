package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single property: value pair inside a rule. Order matters
// to CSS authors, so rules keep declarations as a slice, not a map.
type Declaration struct {
	Property string
	Value    Value
}

// Rule represents a single CSS rule: a raw selector (grouped selectors stay
// grouped) plus its ordered declarations.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns the value of the last declaration for a property.
func (r *Rule) Get(name string) (Value, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			return r.Declarations[i].Value, true
		}
	}
	return Value{}, false
}

// Set updates the last declaration for a property in place, or appends a new
// declaration when the property is not present yet.
func (r *Rule) Set(name, raw string) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			r.Declarations[i].Value = ParseValue(raw)
			return
		}
	}
	r.Declarations = append(r.Declarations, Declaration{Property: name, Value: ParseValue(raw)})
}

// MediaBlock represents a @media block with its raw query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, or Raw is set.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
	Raw        string // any other at-rule, preserved verbatim in normalized form
}

// Stylesheet is a parsed stylesheet kept in source order.
type Stylesheet struct {
	Items    []StylesheetItem
	Warnings []string
}

// Rules returns all rules in source order, including rules nested inside
// @media blocks. The returned pointers alias the stylesheet so callers can
// rewrite declarations in place.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	for i := range s.Items {
		switch {
		case s.Items[i].Rule != nil:
			rules = append(rules, s.Items[i].Rule)
		case s.Items[i].MediaBlock != nil:
			for j := range s.Items[i].MediaBlock.Rules {
				rules = append(rules, &s.Items[i].MediaBlock.Rules[j])
			}
		}
	}
	return rules
}

// RulesBySelector returns all top-level rules with the given raw selector.
func (s *Stylesheet) RulesBySelector(selector string) []*Rule {
	var matches []*Rule
	for i := range s.Items {
		if s.Items[i].Rule != nil && s.Items[i].Rule.Selector == selector {
			matches = append(matches, s.Items[i].Rule)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing
// io.WriterTo. Declarations keep their source order.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case len(item.Raw) > 0:
			n, err = fmt.Fprintf(w, "%s\n", item.Raw)
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w with the given indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Property, d.Value.Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeMediaBlock writes a @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
