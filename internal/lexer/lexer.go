package lexer

import (
	"fmt"
	"unicode"

	"github.com/stolas-lang/stolas/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
	ErrUnterminatedBlockComment
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	default:
		return diag.CodeLexerIllegalRune
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input  []rune
	pos    int  // index of the current rune
	ch     rune // current rune (0 = EOF)
	line   int  // current line number (1-based)
	column int  // current column number (1-based)

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read()
	return l
}

// read advances the lexer to the next character, keeping line/column in sync
// with the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1

	if prevPos >= 0 && prevPos < len(l.input) && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.pos >= len(l.input) {
		l.ch = 0 // EOF
		return
	}
	l.ch = l.input[l.pos]
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, literal string) Token {
	return Token{
		Type:    tokType,
		Literal: literal,
		Span: Span{
			Line:   startLine,
			Column: startColumn,
			Start:  startPos,
			End:    endPos,
		},
	}
}

// skipWhitespace skips spaces, tabs and newlines.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// skipLineComment skips a // comment up to the line terminator.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.read()
	}
}

// skipBlockComment skips a /* */ comment, honoring nesting.
func (l *Lexer) skipBlockComment(startLine, startColumn, startPos int) {
	depth := 1
	for depth > 0 {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return
		}
		if l.ch == '/' && l.peek() == '*' {
			l.read()
			l.read()
			depth++
		} else if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			depth--
		} else {
			l.read()
		}
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// NextToken produces the next token from the input.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		if l.ch == '/' && l.peek() == '/' {
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peek() == '*' {
			startLine, startColumn, startPos := l.line, l.column, l.pos
			l.read()
			l.read()
			l.skipBlockComment(startLine, startColumn, startPos)
			continue
		}
		break
	}

	startLine, startColumn, startPos := l.line, l.column, l.pos

	switch {
	case l.ch == 0:
		return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "")
	case l.ch == ':':
		l.read()
		return l.makeToken(COLON, startLine, startColumn, startPos, l.pos, ":")
	case l.ch == ',':
		l.read()
		return l.makeToken(COMMA, startLine, startColumn, startPos, l.pos, ",")
	case l.ch == '+':
		l.read()
		return l.makeToken(PLUS, startLine, startColumn, startPos, l.pos, "+")
	case l.ch == '-' && l.peek() == '>':
		l.read()
		l.read()
		return l.makeToken(ARROW, startLine, startColumn, startPos, l.pos, "->")
	case l.ch == '(':
		l.read()
		return l.makeToken(LPAREN, startLine, startColumn, startPos, l.pos, "(")
	case l.ch == ')':
		l.read()
		return l.makeToken(RPAREN, startLine, startColumn, startPos, l.pos, ")")
	case l.ch == '{':
		l.read()
		return l.makeToken(LBRACE, startLine, startColumn, startPos, l.pos, "{")
	case l.ch == '}':
		l.read()
		return l.makeToken(RBRACE, startLine, startColumn, startPos, l.pos, "}")
	case l.ch == '[':
		l.read()
		return l.makeToken(LBRACKET, startLine, startColumn, startPos, l.pos, "[")
	case l.ch == ']':
		l.read()
		return l.makeToken(RBRACKET, startLine, startColumn, startPos, l.pos, "]")
	case isLetter(l.ch) || l.ch == '_':
		ident := l.readIdentifier()
		return l.makeToken(LookupIdent(ident), startLine, startColumn, startPos, l.pos, ident)
	default:
		ch := l.ch
		l.read()
		span := Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos}
		l.addError(ErrIllegalRune, fmt.Sprintf("illegal character %q", ch), span)
		return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, string(ch))
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
