// Package parser reads a JavaScript-family document and works out which of its
// top-level declarations can be re-exported by name.
package parser

import "exporter/internal/core/errors"

type Parser struct {
	dialect    Dialect
	statements []Statement
}

type Option func(*options)

type options struct {
	dialect  Dialect
	fallback Dialect
}

// WithDialect selects the grammar. The default is DialectTypeScript, which
// accepts plain JavaScript as well as type annotations.
func WithDialect(d Dialect) Option {
	return func(o *options) {
		if d != "" {
			o.dialect = d
		}
	}
}

// WithFallback retries with d when the selected grammar reports a syntax
// error. Plain JavaScript files that carry type annotations parse this way
// while JSX stays available to the primary grammar.
func WithFallback(d Dialect) Option {
	return func(o *options) {
		o.fallback = d
	}
}

// New parses document and snapshots its top-level statements. A document that
// does not parse cleanly yields a SYNTAX_ERROR and no Parser.
func New(document string, opts ...Option) (*Parser, error) {
	o := options{dialect: DialectTypeScript}
	for _, opt := range opts {
		opt(&o)
	}

	source := []byte(document)
	statements, err := parseProgram(source, o.dialect)
	if err != nil && o.fallback != "" && o.fallback != o.dialect && errors.IsCode(err, errors.CodeSyntax) {
		if retried, retryErr := parseProgram(source, o.fallback); retryErr == nil {
			return &Parser{dialect: o.fallback, statements: retried}, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return &Parser{dialect: o.dialect, statements: statements}, nil
}

func (p *Parser) Dialect() Dialect {
	return p.dialect
}

// Statements returns a deep copy of the top-level statements in source order.
func (p *Parser) Statements() []Statement {
	out := make([]Statement, len(p.statements))
	for i, stmt := range p.statements {
		out[i] = stmt.clone()
	}
	return out
}

func (p *Parser) filter(keep func(Statement) bool) []Statement {
	var out []Statement
	for _, stmt := range p.statements {
		if keep(stmt) {
			out = append(out, stmt.clone())
		}
	}
	return out
}
