package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into the model the expander works on. It is
// deliberately preserving: selectors and at-rule queries are kept raw, and
// at-rules the expander has no business with survive as verbatim text.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var pendingSelectors []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule == "@media" {
				query := joinTokens(nil, parser.Values())
				rules := p.parseMediaBlockRules(parser, sheet)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: query, Rules: rules},
				})
			} else {
				// Preserve @font-face, @keyframes, @supports and friends as
				// raw text - the expander does not rewrite inside them.
				raw := p.reconstructAtRule(parser, atRule, parser.Values())
				sheet.Items = append(sheet.Items, StylesheetItem{Raw: raw})
				p.log.Debug("Preserving @-rule verbatim", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g. @import, @charset)
			raw := joinTokens(data, parser.Values()) + ";"
			sheet.Items = append(sheet.Items, StylesheetItem{Raw: raw})
			p.log.Debug("Preserving @-rule verbatim", zap.String("rule", string(data)))

		case css.QualifiedRuleGrammar:
			// One comma-separated selector part; the ruleset opens later.
			pendingSelectors = append(pendingSelectors, joinTokens(data, parser.Values()))

		case css.BeginRulesetGrammar:
			pendingSelectors = append(pendingSelectors, joinTokens(data, parser.Values()))
			rule := Rule{
				Selector:     strings.Join(pendingSelectors, ", "),
				Declarations: p.parseDeclarations(parser),
			}
			sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			pendingSelectors = nil
		}
	}
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			raw := joinTokens(nil, parser.Values())
			decls = append(decls, Declaration{
				Property: string(data),
				Value:    ParseValue(raw),
			})
		}
	}
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var (
		rules            []Rule
		pendingSelectors []string
	)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.QualifiedRuleGrammar:
			pendingSelectors = append(pendingSelectors, joinTokens(data, parser.Values()))

		case css.BeginRulesetGrammar:
			pendingSelectors = append(pendingSelectors, joinTokens(data, parser.Values()))
			rules = append(rules, Rule{
				Selector:     strings.Join(pendingSelectors, ", "),
				Declarations: p.parseDeclarations(parser),
			})
			pendingSelectors = nil

		case css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "dropping nested @-rule inside @media: "+string(data))
			p.skipAtRuleBlock(parser)
		}
	}
}

// reconstructAtRule consumes an at-rule block and rebuilds its text with
// normalized whitespace. Good enough for passthrough of blocks we do not
// model (@font-face, @keyframes, @supports).
func (p *Parser) reconstructAtRule(parser *css.Parser, name string, values []css.Token) string {
	var sb strings.Builder
	sb.WriteString(joinTokens([]byte(name), values))
	sb.WriteString(" {\n")
	p.reconstructBlock(parser, &sb, "  ")
	sb.WriteString("}")
	return sb.String()
}

func (p *Parser) reconstructBlock(parser *css.Parser, sb *strings.Builder, indent string) {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar, css.EndRulesetGrammar:
			return

		case css.AtRuleGrammar:
			sb.WriteString(indent + joinTokens(data, parser.Values()) + ";\n")

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			sb.WriteString(indent + string(data) + ": " + joinTokens(nil, parser.Values()) + ";\n")

		case css.QualifiedRuleGrammar:
			sb.WriteString(indent + joinTokens(data, parser.Values()) + ",\n")

		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			sb.WriteString(indent + joinTokens(data, parser.Values()) + " {\n")
			p.reconstructBlock(parser, sb, indent+"  ")
			sb.WriteString(indent + "}\n")
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// joinTokens renders a token sequence back to text, collapsing whitespace
// runs to single spaces. The optional head is prepended as-is.
func joinTokens(head []byte, tokens []css.Token) string {
	var parts []string
	if len(head) > 0 {
		parts = append(parts, string(head))
	}
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
