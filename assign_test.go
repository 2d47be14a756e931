package intexpr_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calclab/intexpr"
)

func TestAssign(t *testing.T) {
	env := intexpr.NewEnv()
	require.NoError(t, intexpr.Assign("x = 4", env))
	r, err := intexpr.EvalString("x * x", env)
	require.NoError(t, err)
	assert.Zero(t, r.Cmp(big.NewInt(16)))

	// Reassignment, referencing the old binding.
	require.NoError(t, intexpr.Assign("x = x + 1", env))
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Zero(t, v.Cmp(big.NewInt(5)))

	// Whitespace around = and in the name is tolerated.
	require.NoError(t, intexpr.Assign("  y  =  x ^ 2  ", env))
	v, ok = env.Get("y")
	require.True(t, ok)
	assert.Zero(t, v.Cmp(big.NewInt(25)))
}

func TestAssignBadName(t *testing.T) {
	env := intexpr.NewEnv()
	for _, src := range []string{"x3 = 1", "3x = 1", "x y = 1", " = 1", "x_ = 1"} {
		err := intexpr.Assign(src, env)
		var identErr *intexpr.IdentError
		require.ErrorAs(t, err, &identErr, "src %q", src)
		assert.Zero(t, env.Len(), "failed assignment must not bind: %q", src)
	}
}

func TestAssignNoEquals(t *testing.T) {
	env := intexpr.NewEnv()
	err := intexpr.Assign("x", env)
	var assignErr *intexpr.AssignError
	require.ErrorAs(t, err, &assignErr)
	assert.NoError(t, assignErr.Unwrap())
}

func TestAssignUnknownVariablePropagates(t *testing.T) {
	env := intexpr.NewEnv()
	err := intexpr.Assign("x = y + 1", env)
	var nameErr *intexpr.NameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "y", nameErr.Name)
	var assignErr *intexpr.AssignError
	assert.False(t, errors.As(err, &assignErr), "NameError must propagate unwrapped")
	assert.False(t, env.Has("x"))
}

func TestAssignBadRHS(t *testing.T) {
	env := intexpr.NewEnv()
	cases := []struct {
		src   string
		cause any
	}{
		{"x = (1 + 2", new(*intexpr.BracketError)},
		{"x = 3 4", new(*intexpr.AdjacencyError)},
		{"x = 1/0", new(*intexpr.DivisionError)},
		{"x = 2^-1", new(*intexpr.ExponentError)},
		{"x = ", new(*intexpr.EmptyExpressionError)},
	}
	for _, c := range cases {
		err := intexpr.Assign(c.src, env)
		var assignErr *intexpr.AssignError
		require.ErrorAs(t, err, &assignErr, "src %q", c.src)
		assert.Equal(t, "x", assignErr.Name)
		require.ErrorAs(t, err, c.cause, "src %q", c.src)
		assert.False(t, env.Has("x"), "failed assignment must not bind: %q", c.src)
	}
}
