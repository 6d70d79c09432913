package parser

import (
	"github.com/stolas-lang/stolas/internal/ast"
	"github.com/stolas-lang/stolas/internal/diag"
	"github.com/stolas-lang/stolas/internal/lexer"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the
// provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message string
	Span    lexer.Span
	Code    diag.Code
}

// Parser implements a recursive descent parser for catalog files.
//
// Lookahead contract: curTok always reflects the token currently under
// examination; peekTok mirrors the next token pulled from the lexer. The pair
// is only mutated via nextToken. Every parse function is entered with curTok
// on the first token of its production and returns with curTok on the last
// token it consumed; callers advance. The errors slice is an append-only
// accumulator of recoverable diagnostics consulted after ParseFile.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors []ParseError

	filename string
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:       lexer.New(input),
		filename: cfg.filename,
	}

	// Prime the curTok/peekTok window.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Diagnostics returns lexer and parser problems as shared diagnostics, in
// source order within each stage.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, le := range p.lx.Errors {
		le.Span.Filename = p.filename
		out = append(out, le.ToDiagnostic())
	}
	for _, pe := range p.errors {
		code := pe.Code
		if code == "" {
			code = diag.CodeParseUnexpectedToken
		}
		out = append(out, diag.Diagnostic{
			Stage:    diag.StageParser,
			Severity: diag.SeverityError,
			Code:     code,
			Message:  pe.Message,
			Span: diag.Span{
				Filename: pe.Span.Filename,
				Line:     pe.Span.Line,
				Column:   pe.Span.Column,
				Start:    pe.Span.Start,
				End:      pe.Span.End,
			},
		})
	}
	return out
}

// ParseFile parses a full catalog file and returns its AST. Parse errors are
// recovered at declaration granularity: a malformed declaration is skipped up
// to the next 'trait' or 'impl' keyword and parsing continues.
func (p *Parser) ParseFile() *ast.File {
	file := ast.NewFile(p.curTok.Span)

	for p.curTok.Type != lexer.EOF {
		prev := p.curTok

		var decl ast.Decl
		switch p.curTok.Type {
		case lexer.TRAIT:
			decl = p.parseTraitDecl()
		case lexer.IMPL:
			decl = p.parseImplDecl()
		default:
			p.reportError("expected 'trait' or 'impl' declaration", p.curTok.Span)
		}

		if decl != nil {
			file.Decls = append(file.Decls, decl)
			file.SetSpan(mergeSpan(file.Span(), decl.Span()))
			p.nextToken()
			continue
		}

		p.recoverDecl(prev)
	}

	file.SetSpan(mergeSpan(file.Span(), p.curTok.Span))

	return file
}

// ParseQuery parses a single query of the form "Type: TraitRef".
func (p *Parser) ParseQuery() (ast.TypeExpr, *ast.TraitRefExpr) {
	if !isTypeStart(p.curTok.Type) {
		p.reportError("expected type expression", p.curTok.Span)
		return nil, nil
	}

	recv := p.parseType()
	if recv == nil {
		return nil, nil
	}

	if !p.expect(lexer.COLON) {
		return nil, nil
	}
	p.nextToken()

	ref := p.parseTraitRef()
	if ref == nil {
		return nil, nil
	}

	if p.peekTok.Type != lexer.EOF {
		p.reportError("unexpected input after query", p.peekTok.Span)
		return nil, nil
	}

	return recv, ref
}

// nextToken advances the parser's token window.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// expect asserts that the peek token matches the provided type. On success it
// promotes peekTok into curTok; expect never rewinds.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	p.reportError("expected '"+string(tt)+"'", p.peekTok.Span)
	return false
}

func (p *Parser) spanWithFilename(span lexer.Span) lexer.Span {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}
	return span
}

func (p *Parser) reportError(msg string, span lexer.Span) {
	p.errors = append(p.errors, ParseError{
		Message: msg,
		Span:    p.spanWithFilename(span),
	})
}

func (p *Parser) reportErrorCode(msg string, span lexer.Span, code diag.Code) {
	p.errors = append(p.errors, ParseError{
		Message: msg,
		Span:    p.spanWithFilename(span),
		Code:    code,
	})
}

// recoverDecl skips tokens until the next declaration keyword so one
// malformed declaration cannot poison the rest of the file.
func (p *Parser) recoverDecl(prev lexer.Token) {
	if p.curTok.Type == prev.Type && p.curTok.Span == prev.Span {
		p.nextToken()
	}
	for p.curTok.Type != lexer.EOF && p.curTok.Type != lexer.TRAIT && p.curTok.Type != lexer.IMPL {
		p.nextToken()
	}
}

func mergeSpan(a, b lexer.Span) lexer.Span {
	out := a
	if b.End > out.End {
		out.End = b.End
	}
	if out.Filename == "" {
		out.Filename = b.Filename
	}
	return out
}
