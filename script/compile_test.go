package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xplain/internal/render"
)

// ============================================================================
// Arithmetic
// ============================================================================

func TestCompileArithmeticChain(t *testing.T) {
	n, err := Compile("test", "a=10 + b=5 + c=3")
	require.NoError(t, err)

	i, ok := n.Value().Int()
	require.True(t, ok)
	assert.Equal(t, int64(18), i)
	assert.Len(t, n.Operands(), 3, "expected same-operator flattening")
}

func TestCompileDivisionPromotesToFloat(t *testing.T) {
	n, err := Compile("test", "a=9 / b=2")
	require.NoError(t, err)

	f, ok := n.Value().Float()
	require.True(t, ok)
	assert.Equal(t, 4.5, f)
}

func TestCompileDivisionByZeroFails(t *testing.T) {
	_, err := Compile("test", "a=1 / b=0")
	assert.Error(t, err)
}

// ============================================================================
// Comparisons and booleans
// ============================================================================

func TestCompileComparisonFlip(t *testing.T) {
	n, err := Compile("test", "a=1 > b=2")
	require.NoError(t, err)
	assert.Equal(t, "False because (a := 1) ≤ (b := 2)", render.Render(n))
}

func TestCompileBooleanAnd(t *testing.T) {
	n, err := Compile("test", "a=true and b=false")
	require.NoError(t, err)

	v, ok := n.Value().Bool()
	require.True(t, ok)
	assert.False(t, v)
}

// ============================================================================
// Parenthesized sub-scripts
// ============================================================================

func TestCompileParenthesizedSubScript(t *testing.T) {
	n, err := Compile("test", "a=1 + (b=2 * c=3)")
	require.NoError(t, err)

	i, ok := n.Value().Int()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)
}

// ============================================================================
// Conditional
// ============================================================================

func TestCompileConditionalPicksTrueBranch(t *testing.T) {
	n, err := Compile("test", "if a=true then x=1 else y=2")
	require.NoError(t, err)

	i, ok := n.Value().Int()
	require.True(t, ok)
	assert.Equal(t, int64(1), i)
}

func TestCompileConditionalElifChain(t *testing.T) {
	n, err := Compile("test", "if a=false then x=1 elif b=true then y=2 else z=3")
	require.NoError(t, err)

	i, ok := n.Value().Int()
	require.True(t, ok)
	assert.Equal(t, int64(2), i)
}

// ============================================================================
// Literals
// ============================================================================

func TestCompileStringAndNullLiterals(t *testing.T) {
	n, err := Compile("test", `s="hello"`)
	require.NoError(t, err)
	s, ok := n.Value().Str()
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	n, err = Compile("test", "n=null")
	require.NoError(t, err)
	assert.True(t, n.Value().IsNull())
}
