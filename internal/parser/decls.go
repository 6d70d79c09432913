package parser

import (
	"github.com/stolas-lang/stolas/internal/ast"
	"github.com/stolas-lang/stolas/internal/lexer"
)

// parseTraitDecl parses
//
//	trait Name[P, Q]: Super1 + Super2 { fn ... }
//
// where the parameter list, supertrait list, and method block are each
// optional. Entered with curTok on 'trait'.
func (p *Parser) parseTraitDecl() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Literal, p.spanWithFilename(p.curTok.Span))

	var params []*ast.Ident
	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken() // move to '['
		for {
			if !p.expect(lexer.IDENT) {
				return nil
			}
			params = append(params, ast.NewIdent(p.curTok.Literal, p.spanWithFilename(p.curTok.Span)))
			if p.peekTok.Type == lexer.COMMA {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
	}

	var supers []*ast.TraitRefExpr
	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to first supertrait
		for {
			ref := p.parseTraitRef()
			if ref == nil {
				return nil
			}
			supers = append(supers, ref)
			if p.peekTok.Type == lexer.PLUS {
				p.nextToken() // move to '+'
				p.nextToken() // move to next supertrait
				continue
			}
			break
		}
	}

	var methods []*ast.MethodSig
	if p.peekTok.Type == lexer.LBRACE {
		p.nextToken() // move to '{'
		p.nextToken()
		for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
			if p.curTok.Type != lexer.FN {
				p.reportError("expected 'fn' in trait body", p.curTok.Span)
				p.nextToken()
				continue
			}
			sig := p.parseMethodSig()
			if sig == nil {
				return nil
			}
			methods = append(methods, sig)
			p.nextToken()
		}
		if p.curTok.Type != lexer.RBRACE {
			p.reportError("expected '}' to close trait declaration", p.curTok.Span)
			return nil
		}
	}

	span := p.spanWithFilename(mergeSpan(start, p.curTok.Span))
	return ast.NewTraitDecl(name, params, supers, methods, span)
}

// parseImplDecl parses
//
//	impl[X: B1 + B2, Y] SelfType: TraitRef
//
// with an optional variable block. Entered with curTok on 'impl'.
func (p *Parser) parseImplDecl() ast.Decl {
	start := p.curTok.Span

	var vars []*ast.TypeVarDecl
	if p.peekTok.Type == lexer.LBRACKET {
		p.nextToken() // move to '['
		for {
			v := p.parseTypeVarDecl()
			if v == nil {
				return nil
			}
			vars = append(vars, v)
			if p.peekTok.Type == lexer.COMMA {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
	}

	if !isTypeStart(p.peekTok.Type) {
		p.reportErrorCode("expected self type after 'impl'", p.peekTok.Span, codeExpectedType)
		return nil
	}
	p.nextToken()

	selfType := p.parseType()
	if selfType == nil {
		return nil
	}

	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken()

	trait := p.parseTraitRef()
	if trait == nil {
		return nil
	}

	span := p.spanWithFilename(mergeSpan(start, p.curTok.Span))
	return ast.NewImplDecl(vars, selfType, trait, span)
}

// parseTypeVarDecl parses one entry of an impl variable block: a variable
// name with optional '+'-joined bounds. Entered with curTok on the token
// before the name.
func (p *Parser) parseTypeVarDecl() *ast.TypeVarDecl {
	if !p.expect(lexer.IDENT) {
		return nil
	}
	start := p.curTok.Span
	name := ast.NewIdent(p.curTok.Literal, p.spanWithFilename(p.curTok.Span))

	var bounds []*ast.TraitRefExpr
	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to first bound
		for {
			ref := p.parseTraitRef()
			if ref == nil {
				return nil
			}
			bounds = append(bounds, ref)
			if p.peekTok.Type == lexer.PLUS {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
	}

	return ast.NewTypeVarDecl(name, bounds, p.spanWithFilename(mergeSpan(start, p.curTok.Span)))
}

// parseMethodSig parses
//
//	fn name(self, other: Self) -> int
//
// Entered with curTok on 'fn'. Parameter names are recorded only through
// their types; the engine needs signatures for the object-safety check.
func (p *Parser) parseMethodSig() *ast.MethodSig {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Literal, p.spanWithFilename(p.curTok.Span))

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	var params []ast.TypeExpr

	if p.peekTok.Type == lexer.SELF {
		p.nextToken()
	} else if p.peekTok.Type == lexer.IDENT {
		param := p.parseMethodParam()
		if param == nil {
			return nil
		}
		params = append(params, param)
	}

	for p.peekTok.Type == lexer.COMMA {
		p.nextToken() // move to ','
		param := p.parseMethodParam()
		if param == nil {
			return nil
		}
		params = append(params, param)
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	var ret ast.TypeExpr
	if p.peekTok.Type == lexer.ARROW {
		p.nextToken() // move to '->'
		if !isTypeStart(p.peekTok.Type) {
			p.reportErrorCode("expected return type after '->'", p.peekTok.Span, codeExpectedType)
			return nil
		}
		p.nextToken()
		ret = p.parseType()
		if ret == nil {
			return nil
		}
	}

	return ast.NewMethodSig(name, params, ret, p.spanWithFilename(mergeSpan(start, p.curTok.Span)))
}

// parseMethodParam parses "name: Type" and returns the type. Entered with
// curTok on the token before the parameter name.
func (p *Parser) parseMethodParam() ast.TypeExpr {
	if !p.expect(lexer.IDENT) {
		return nil
	}
	if !p.expect(lexer.COLON) {
		return nil
	}
	if !isTypeStart(p.peekTok.Type) {
		p.reportErrorCode("expected parameter type", p.peekTok.Span, codeExpectedType)
		return nil
	}
	p.nextToken()
	return p.parseType()
}
