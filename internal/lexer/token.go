package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune or original string
	End      int    // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers
	IDENT TokenType = "IDENT" // Vec, Eq, A, ...

	// Delimiters and operators
	COLON    TokenType = ":"
	COMMA    TokenType = ","
	PLUS     TokenType = "+"
	ARROW    TokenType = "->"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	TRAIT    TokenType = "TRAIT"
	IMPL     TokenType = "IMPL"
	DYN      TokenType = "DYN"
	FN       TokenType = "FN"
	SELF     TokenType = "SELF"     // the `self` receiver marker
	SELFTYPE TokenType = "SELFTYPE" // the `Self` type placeholder
)

var keywords = map[string]TokenType{
	"trait": TRAIT,
	"impl":  IMPL,
	"dyn":   DYN,
	"fn":    FN,
	"self":  SELF,
	"Self":  SELFTYPE,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
