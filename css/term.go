package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind of a classified helper input.
// ENUM(literal, token, calc)
type TermKind int

// Term is the classified form of a helper input: a plain literal value, a
// bare name to be looked up in one of the tables, or a calculation
// expression (a CSS function call such as min/max/clamp).
type Term struct {
	Kind  TermKind
	Raw   string   // original input, trimmed
	Value Value    // literal payload (Kind == TermKindLiteral)
	Name  string   // token name or calculation function name (lowercase for calc)
	Args  []string // calculation arguments, verbatim, in source order
}

// ParseTerm classifies a helper input string into one of the three variants.
// It never fails - input that is neither a lone identifier nor a function
// call is a literal.
func ParseTerm(s string) Term {
	s = strings.TrimSpace(s)
	t := Term{Kind: TermKindLiteral, Raw: s}
	if s == "" {
		return t
	}

	l := css.NewLexer(parse.NewInputString(s))

	tt, data := l.Next()
	for tt == css.WhitespaceToken {
		tt, data = l.Next()
	}

	switch tt {
	case css.FunctionToken:
		name := strings.ToLower(strings.TrimSuffix(string(data), "("))
		args := lexArguments(l)
		// anything after the close paren ("!important", a second value)
		// means the value is not a lone call - keep it literal
		if next := skipWhitespace(l); next == css.ErrorToken {
			t.Kind = TermKindCalc
			t.Name = name
			t.Args = args
			return t
		}
	case css.IdentToken:
		name := string(data)
		if next, _ := l.Next(); next == css.ErrorToken {
			// a lone identifier is a table token, anything longer is a literal
			t.Kind = TermKindToken
			t.Name = name
			return t
		}
	}

	t.Value = ParseValue(s)
	return t
}

// skipWhitespace returns the next non-whitespace token type.
func skipWhitespace(l *css.Lexer) css.TokenType {
	for {
		tt, _ := l.Next()
		if tt != css.WhitespaceToken {
			return tt
		}
	}
}

// lexArguments consumes tokens after an opening function token until the
// matching close parenthesis, splitting on top-level commas only. Nested
// function calls stay verbatim inside a single argument.
func lexArguments(l *css.Lexer) []string {
	var (
		args  []string
		sb    strings.Builder
		depth = 1
	)

	push := func() {
		if arg := strings.TrimSpace(sb.String()); arg != "" {
			args = append(args, arg)
		}
		sb.Reset()
	}

	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			push()
			return args
		case css.WhitespaceToken:
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case css.CommaToken:
			if depth == 1 {
				push()
			} else {
				sb.Write(data)
			}
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
			sb.Write(data)
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				push()
				return args
			}
			sb.Write(data)
		default:
			sb.Write(data)
		}
	}
}

// String re-serializes the term. Calculation expressions come out in
// canonical form: name(arg1, arg2, ...).
func (t Term) String() string {
	switch t.Kind {
	case TermKindCalc:
		return t.Name + "(" + strings.Join(t.Args, ", ") + ")"
	case TermKindToken:
		return t.Name
	default:
		return t.Raw
	}
}

// WithArg returns a copy of the term with argument i (0-based) replaced.
// The receiver is left untouched.
func (t Term) WithArg(i int, arg string) Term {
	args := make([]string, len(t.Args))
	copy(args, t.Args)
	if i >= 0 && i < len(args) {
		args[i] = arg
	}
	t.Args = args
	return t
}
