package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verr "github.com/lkndy/lr1-visualizer/error"
)

func TestTokenize_AppendsEOF(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	toks, diag := Tokenize(g, "id + id * id")
	require.Nil(t, diag)
	require.Len(t, toks, 6)
	assert.True(t, toks[len(toks)-1].IsEOF())
}

func TestTokenize_UnknownTokenFails(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	toks, diag := Tokenize(g, "id ? id")
	assert.Nil(t, toks)
	require.NotNil(t, diag)
	assert.Equal(t, verr.CauseUnknownToken, diag.Cause)
	assert.Equal(t, "?", diag.Detail)
}

func TestTokenize_EmptyInputIsJustEOF(t *testing.T) {
	g := mustBuild(t, "S -> L\nL -> L x | ε\n", "S")
	toks, diag := Tokenize(g, "")
	require.Nil(t, diag)
	require.Len(t, toks, 1)
	assert.True(t, toks[0].IsEOF())
}
