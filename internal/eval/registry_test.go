package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mera/internal/srep"
	"github.com/born-ml/mera/internal/tensor"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry[float64]()
	a := tensor.Ones[float64](tensor.Shape{2}, 1)
	b := tensor.Zeros[float64](tensor.Shape{3}, 1)

	ha, err := reg.Add("a", 0, a)
	require.NoError(t, err)
	hb, err := reg.Add("a", 1, b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
	assert.Equal(t, 2, reg.Len())

	h, ok := reg.Lookup("a", 1)
	require.True(t, ok)
	assert.Same(t, b, reg.Tensor(h))
	assert.Equal(t, Key{Name: "a", ID: 1}, reg.Key(h))
	assert.Equal(t, "a1", reg.Key(h).String())

	_, ok = reg.Lookup("a", 2)
	assert.False(t, ok)
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry[float64]()
	_, err := reg.Add("u", 0, tensor.NewScalar[float64]())
	require.NoError(t, err)

	_, err = reg.Add("u", 0, tensor.NewScalar[float64]())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "u0")
}

func TestRegistryScope(t *testing.T) {
	parent := NewRegistry[float64]()
	a := tensor.Ones[float64](tensor.Shape{2}, 1)
	ha, err := parent.Add("a", 0, a)
	require.NoError(t, err)

	scope := parent.Scope()
	tmp := tensor.NewScalar[float64]()
	ht, err := scope.Add("t", 0, tmp)
	require.NoError(t, err)

	h, ok := scope.Lookup("a", 0)
	require.True(t, ok)
	assert.Equal(t, ha, h)
	assert.Same(t, a, scope.Tensor(h))
	assert.Equal(t, Key{Name: "a", ID: 0}, scope.Key(h))

	assert.Same(t, tmp, scope.Tensor(ht))
	assert.Equal(t, 2, scope.Len())

	_, ok = parent.Lookup("t", 0)
	assert.False(t, ok, "scope must not leak into parent")
	assert.Equal(t, 1, parent.Len())

	shadow := tensor.Zeros[float64](tensor.Shape{2}, 1)
	hs, err := scope.Add("a", 0, shadow)
	require.NoError(t, err)
	h, _ = scope.Lookup("a", 0)
	assert.Equal(t, hs, h)
	h, _ = parent.Lookup("a", 0)
	assert.Equal(t, ha, h)
}

func TestOutputOf(t *testing.T) {
	reg := NewRegistry[float64]()
	eq, err := srep.ParseEquation("e3()=a0(s0)b0(s0)")
	require.NoError(t, err)

	_, err = reg.OutputOf(eq)
	require.ErrorIs(t, err, ErrLookup)
	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "e", le.Name)
	assert.Equal(t, 3, le.ID)
	assert.Equal(t, "tensor e3 not found in registry", err.Error())

	want, err := reg.Add("e", 3, tensor.NewScalar[float64]())
	require.NoError(t, err)
	h, err := reg.OutputOf(eq)
	require.NoError(t, err)
	assert.Equal(t, want, h)
}
