package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanString(t *testing.T) {
	s := Span{Filename: "container.stc", Line: 3, Column: 7}
	assert.Equal(t, "container.stc:3:7", s.String())

	assert.Equal(t, "3:7", Span{Line: 3, Column: 7}.String())
}

func TestSpanIsValid(t *testing.T) {
	assert.True(t, Span{Line: 1, Column: 1}.IsValid())
	assert.False(t, Span{}.IsValid())
	assert.False(t, Span{Line: 1}.IsValid())
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Diagnostic{{Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]Diagnostic{
		{Severity: SeverityWarning},
		{Severity: SeverityError},
	}))
}

func TestFormatterHeaderAndSnippet(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)
	f.AddSource("eq.stc", "trait Eq\nimpl[X: Eq] X: Eq\n")

	d := Errorf(StageRegister, CodeMalformedImpl,
		Span{Filename: "eq.stc", Line: 2, Column: 13, Start: 21, End: 22},
		"declared variable X is the self type verbatim").
		WithNote("every declared variable must occur strictly nested inside the self type").
		WithHelp("wrap the variable, e.g. Box[X]")

	f.Format(d)

	got := out.String()
	require.Contains(t, got, "error[MALFORMED_IMPL]: declared variable X is the self type verbatim")
	assert.Contains(t, got, "--> eq.stc:2:13")
	assert.Contains(t, got, "impl[X: Eq] X: Eq")
	assert.Contains(t, got, "^")
	assert.Contains(t, got, "= note: every declared variable must occur strictly nested")
	assert.Contains(t, got, "help: wrap the variable")
}

func TestFormatterWithoutSource(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)

	f.Format(Errorf(StageQuery, CodeArityMismatch, Span{}, "trait Container expects 0 arguments, got 1"))

	got := out.String()
	assert.Contains(t, got, "error[ARITY_MISMATCH]")
	assert.NotContains(t, got, "-->")
}
