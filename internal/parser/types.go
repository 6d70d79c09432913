package parser

import (
	"github.com/stolas-lang/stolas/internal/ast"
	"github.com/stolas-lang/stolas/internal/diag"
	"github.com/stolas-lang/stolas/internal/lexer"
)

const codeExpectedType = diag.CodeParseExpectedType

func isTypeStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.DYN, lexer.SELFTYPE:
		return true
	default:
		return false
	}
}

// parseType parses a type expression. Entered with curTok on its first
// token; returns with curTok on its last.
func (p *Parser) parseType() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.IDENT:
		return p.parseNamedType()
	case lexer.DYN:
		return p.parseDynType()
	case lexer.SELFTYPE:
		return ast.NewSelfTypeExpr(p.spanWithFilename(p.curTok.Span))
	default:
		p.reportErrorCode("expected type expression", p.curTok.Span, codeExpectedType)
		return nil
	}
}

func (p *Parser) parseNamedType() ast.TypeExpr {
	start := p.curTok.Span
	name := ast.NewIdent(p.curTok.Literal, p.spanWithFilename(p.curTok.Span))

	args, ok := p.parseOptionalTypeArgs()
	if !ok {
		return nil
	}

	return ast.NewNamedType(name, args, p.spanWithFilename(mergeSpan(start, p.curTok.Span)))
}

func (p *Parser) parseDynType() ast.TypeExpr {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	ref := p.parseTraitRef()
	if ref == nil {
		return nil
	}

	return ast.NewDynType(ref, p.spanWithFilename(mergeSpan(start, p.curTok.Span)))
}

// parseTraitRef parses a trait reference: a name with optional bracketed
// type arguments. Entered with curTok on the name.
func (p *Parser) parseTraitRef() *ast.TraitRefExpr {
	if p.curTok.Type != lexer.IDENT {
		p.reportError("expected trait name", p.curTok.Span)
		return nil
	}

	start := p.curTok.Span
	name := ast.NewIdent(p.curTok.Literal, p.spanWithFilename(p.curTok.Span))

	args, ok := p.parseOptionalTypeArgs()
	if !ok {
		return nil
	}

	return ast.NewTraitRefExpr(name, args, p.spanWithFilename(mergeSpan(start, p.curTok.Span)))
}

// parseOptionalTypeArgs parses a bracketed, comma-separated type argument
// list when the peek token opens one. Returns ok=false only on a parse
// error; an absent list is (nil, true).
func (p *Parser) parseOptionalTypeArgs() ([]ast.TypeExpr, bool) {
	if p.peekTok.Type != lexer.LBRACKET {
		return nil, true
	}

	p.nextToken() // move to '['

	if p.peekTok.Type == lexer.RBRACKET {
		p.reportErrorCode("expected type expression in argument list", p.peekTok.Span, codeExpectedType)
		return nil, false
	}

	var args []ast.TypeExpr
	for {
		if !isTypeStart(p.peekTok.Type) {
			p.reportErrorCode("expected type expression", p.peekTok.Span, codeExpectedType)
			return nil, false
		}
		p.nextToken()

		arg := p.parseType()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)

		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(lexer.RBRACKET) {
		return nil, false
	}

	return args, true
}
