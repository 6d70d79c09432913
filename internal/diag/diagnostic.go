package diag

import "fmt"

// Stage identifies which engine phase produced the diagnostic.
type Stage string

const (
	StageLexer    Stage = "lexer"
	StageParser   Stage = "parser"
	StageRegister Stage = "register"
	StageQuery    Stage = "query"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerIllegalRune              Code = "LEX_ILLEGAL_RUNE"
	CodeLexerUnterminatedBlockComment Code = "LEX_UNTERMINATED_BLOCK_COMMENT"

	// Parser errors
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseExpectedType    Code = "PARSE_EXPECTED_TYPE"

	// Catalog registration errors
	CodeMalformedImpl    Code = "MALFORMED_IMPL"
	CodeUnknownTrait     Code = "UNKNOWN_TRAIT"
	CodeArityMismatch    Code = "ARITY_MISMATCH"
	CodeDuplicateTrait   Code = "DUPLICATE_TRAIT"
	CodeSupertraitCycle  Code = "SUPERTRAIT_CYCLE"
	CodeUnknownParameter Code = "UNKNOWN_PARAMETER"
)

// Span represents a location in a catalog source file.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a problem report surfaced to the catalog owner.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Notes    []string
	Help     string
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Errorf builds an error diagnostic for the given stage and code.
func Errorf(stage Stage, code Code, span Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}

// HasErrors reports whether any diagnostic in the slice is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
