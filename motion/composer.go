package motion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"cssmix/css"
)

// Lookup failures. Both are hard failures - there is no recovery path, a
// failed lookup produces no output for the declaration being composed.
var (
	ErrInvalidDuration = errors.New("invalid transition duration")
	ErrInvalidEasing   = errors.New("invalid transition easing")
)

// Composer resolves duration/easing tokens and composes CSS `transition`
// values. Tables are injected at construction and never mutated, so a single
// composer may be shared freely.
type Composer struct {
	tables Tables
	log    *zap.Logger
}

// NewComposer creates a composer over the given tables. Zero-value maps fall
// back to the built-in defaults.
func NewComposer(tables Tables, log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultTables()
	if tables.Durations == nil {
		tables.Durations = def.Durations
	}
	if tables.Easings == nil {
		tables.Easings = def.Easings
	}
	if tables.Aliases == nil {
		tables.Aliases = def.Aliases
	}
	return &Composer{tables: tables, log: log.Named("motion")}
}

// Duration resolves a duration token or numeric literal to a CSS time value.
// Numeric passthrough and table lookup are mutually exclusive - a value is
// never coerced between the two forms. Unitless numbers are interpreted as
// milliseconds.
func (c *Composer) Duration(v string) (string, error) {
	term := css.ParseTerm(v)
	switch term.Kind {
	case css.TermKindToken:
		if ms, ok := c.tables.Durations[term.Name]; ok {
			return strconv.Itoa(ms) + "ms", nil
		}
		return "", fmt.Errorf("unknown duration token %q: %w", term.Name, ErrInvalidDuration)

	case css.TermKindLiteral:
		if !term.Value.IsNumeric() {
			return "", fmt.Errorf("%q is not a duration: %w", v, ErrInvalidDuration)
		}
		switch term.Value.Unit {
		case "":
			return term.Value.Raw + "ms", nil
		case "ms", "s":
			return term.Value.Raw, nil
		default:
			return "", fmt.Errorf("%q is not a time value: %w", v, ErrInvalidDuration)
		}

	default:
		return "", fmt.Errorf("%q is not a duration: %w", v, ErrInvalidDuration)
	}
}

// Easing resolves an easing token to a cubic-bezier literal. Raw
// cubic-bezier input the author wrote directly passes through unmodified.
// Alias indirection is tried only after the primary table misses.
func (c *Composer) Easing(v string) (string, error) {
	name := strings.TrimSpace(v)
	if strings.HasPrefix(name, "cubic-bezier") {
		return v, nil
	}
	if bezier, ok := c.tables.Easings[name]; ok {
		return bezier, nil
	}
	if target, ok := c.tables.Aliases[name]; ok {
		if bezier, ok := c.tables.Easings[target]; ok {
			return bezier, nil
		}
		return "", fmt.Errorf("alias %q points at missing easing %q: %w", name, target, ErrInvalidEasing)
	}
	return "", fmt.Errorf("unknown easing token %q: %w", name, ErrInvalidEasing)
}

// TimingFunction is an alias of Easing matching the CSS property name.
func (c *Composer) TimingFunction(v string) (string, error) {
	return c.Easing(v)
}

// Transition composes a CSS `transition` value for one or more properties.
// Every property shares the same resolved duration/easing/delay. Empty
// duration and easing fall back to DefaultDuration and DefaultEasing; a
// zero or empty delay renders as empty, not "0ms".
func (c *Composer) Transition(props []string, duration, easing, delay string) (string, error) {
	if len(props) == 0 {
		return "", errors.New("no transition properties given")
	}
	if duration == "" {
		duration = DefaultDuration
	}
	if easing == "" {
		easing = DefaultEasing
	}

	d, err := c.Duration(duration)
	if err != nil {
		return "", err
	}
	e, err := c.Easing(easing)
	if err != nil {
		return "", err
	}
	dl, err := c.resolveDelay(delay)
	if err != nil {
		return "", err
	}

	fragments := make([]string, 0, len(props))
	for _, prop := range props {
		fields := []string{prop, d, e}
		if dl != "" {
			fields = append(fields, dl)
		}
		fragments = append(fragments, strings.Join(fields, " "))
	}
	return strings.Join(fragments, ", "), nil
}

// Apply composes a transition value and sets it as the rule's `transition`
// property - the declaration-writing variant of Transition.
func (c *Composer) Apply(rule *css.Rule, props []string, duration, easing, delay string) error {
	v, err := c.Transition(props, duration, easing, delay)
	if err != nil {
		return err
	}
	c.log.Debug("Setting transition", zap.String("selector", rule.Selector), zap.String("value", v))
	rule.Set("transition", v)
	return nil
}

func (c *Composer) resolveDelay(delay string) (string, error) {
	delay = strings.TrimSpace(delay)
	if delay == "" {
		return "", nil
	}
	if term := css.ParseTerm(delay); term.Kind == css.TermKindLiteral && term.Value.IsNumeric() && term.Value.Value == 0 {
		return "", nil
	}
	return c.Duration(delay)
}
