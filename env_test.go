package intexpr_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calclab/intexpr"
)

func TestEnv(t *testing.T) {
	env := intexpr.NewEnv()
	assert.Zero(t, env.Len())
	assert.False(t, env.Has("x"))
	_, ok := env.Get("x")
	assert.False(t, ok)

	env.Set("x", big.NewInt(4))
	require.True(t, env.Has("x"))
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Zero(t, v.Cmp(big.NewInt(4)))
	assert.Equal(t, 1, env.Len())

	// Reassignment overwrites in place.
	env.Set("x", big.NewInt(7))
	v, ok = env.Get("x")
	require.True(t, ok)
	assert.Zero(t, v.Cmp(big.NewInt(7)))
	assert.Equal(t, 1, env.Len())
}

func TestEnvCopies(t *testing.T) {
	env := intexpr.NewEnv()
	in := big.NewInt(4)
	env.Set("x", in)
	in.SetInt64(100)
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Zero(t, v.Cmp(big.NewInt(4)), "Set must copy its argument")

	v.SetInt64(200)
	w, ok := env.Get("x")
	require.True(t, ok)
	assert.Zero(t, w.Cmp(big.NewInt(4)), "Get must return a copy")
}

func TestEnvNames(t *testing.T) {
	env := intexpr.NewEnv().
		Set("zz", big.NewInt(1)).
		Set("a", big.NewInt(2)).
		Set("m", big.NewInt(3))
	assert.Equal(t, []string{"a", "m", "zz"}, env.Names())
}
