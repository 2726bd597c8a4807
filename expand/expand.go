// Package expand rewrites authoring helper calls inside stylesheets: any
// declaration whose value is a transition(), rpx(), duration(), easing() or
// timing-function() call is replaced with its computed CSS value.
package expand

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssmix/config"
	"cssmix/css"
	"cssmix/motion"
	"cssmix/sizing"
)

// Expander evaluates helper calls against a composer and a converter. It
// holds no mutable state and may be reused across stylesheets.
type Expander struct {
	log    *zap.Logger
	parser *css.Parser
	comp   *motion.Composer
	conv   *sizing.Converter
}

// New creates an expander over the given composer and converter.
func New(comp *motion.Composer, conv *sizing.Converter, log *zap.Logger) *Expander {
	if log == nil {
		log = zap.NewNop()
	}
	return &Expander{
		log:    log.Named("expand"),
		parser: css.NewParser(log),
		comp:   comp,
		conv:   conv,
	}
}

// NewFromConfig creates an expander with tables and conversion defaults
// taken from the configuration.
func NewFromConfig(cfg *config.Config, log *zap.Logger) *Expander {
	comp := motion.NewComposer(cfg.Helpers.Motion.Tables(), log)
	conv := sizing.NewConverter(cfg.Helpers.Sizing.Table(), log,
		sizing.WithUnit(cfg.Helpers.Sizing.Unit),
		sizing.WithDecimal(cfg.Helpers.Sizing.Decimal))
	return New(comp, conv, log)
}

// Parse parses stylesheet text into the model Expand works on.
func (e *Expander) Parse(data []byte, source ...string) *css.Stylesheet {
	return e.parser.Parse(data, source...)
}

// Expand walks every rule - top level and inside @media blocks - and
// rewrites declarations whose entire value is a helper call. A failed
// lookup is a hard failure: the declaration keeps no output and the
// accumulated error reports every offender with its selector and property.
func (e *Expander) Expand(sheet *css.Stylesheet) (err error) {
	for _, rule := range sheet.Rules() {
		for i := range rule.Declarations {
			decl := &rule.Declarations[i]

			term := css.ParseTerm(decl.Value.Raw)
			if term.Kind != css.TermKindCalc {
				continue
			}
			out, ok, everr := e.eval(term)
			if everr != nil {
				err = multierr.Append(err, fmt.Errorf("%s { %s }: %w", rule.Selector, decl.Property, everr))
				continue
			}
			if !ok {
				// not a helper call (min, rgb, var, ...) - pass through
				continue
			}
			e.log.Debug("Expanded helper call",
				zap.String("selector", rule.Selector), zap.String("property", decl.Property),
				zap.String("from", decl.Value.Raw), zap.String("to", out))
			decl.Value = css.ParseValue(out)
		}
	}
	return err
}

// Eval evaluates a single helper expression, for the CLI eval command.
func (e *Expander) Eval(expr string) (string, error) {
	term := css.ParseTerm(expr)
	if term.Kind != css.TermKindCalc {
		return "", fmt.Errorf("%q is not a helper call", expr)
	}
	out, ok, err := e.eval(term)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("unknown helper %q", term.Name)
	}
	return out, nil
}

// eval dispatches a calculation term to the helper it names. The second
// return is false when the function is not one of ours.
func (e *Expander) eval(term css.Term) (string, bool, error) {
	arg := func(i int) string {
		if i < len(term.Args) {
			return term.Args[i]
		}
		return ""
	}

	switch term.Name {
	case "transition":
		props := strings.Fields(arg(0))
		out, err := e.comp.Transition(props, arg(1), arg(2), arg(3))
		return out, true, err

	case "rpx":
		if len(term.Args) < 2 {
			return "", true, errors.New("rpx needs a size and a reference width")
		}
		unit := e.conv.Unit()
		if len(term.Args) > 2 {
			unit = arg(2)
		}
		decimal := e.conv.Decimal()
		if len(term.Args) > 3 {
			d, err := strconv.Atoi(arg(3))
			if err != nil || d < 0 || d > sizing.MaxDecimal {
				return "", true, fmt.Errorf("rpx precision %q is not an integer between 0 and %d", arg(3), sizing.MaxDecimal)
			}
			decimal = d
		}
		out, err := e.conv.Convert(arg(0), arg(1), unit, decimal)
		return out, true, err

	case "duration":
		out, err := e.comp.Duration(arg(0))
		return out, true, err

	case "easing", "timing-function":
		out, err := e.comp.Easing(arg(0))
		return out, true, err
	}

	return "", false, nil
}
