package srep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEquation(t *testing.T, text string) *Equation {
	t.Helper()
	eq, err := ParseEquation(text)
	require.NoError(t, err)
	return eq
}

func TestParseEquation(t *testing.T) {
	eq := mustEquation(t, "e0(f0|f1) = a0(f0|s0) b0(s0|f1)")

	assert.Equal(t, "e", eq.OutputName())
	assert.Equal(t, 0, eq.OutputID())
	assert.Equal(t, 2, eq.RHS().Len())
	assert.Equal(t, "e0(f0|f1)=a0(f0|s0)b0(s0|f1)", eq.String())
	assert.NoError(t, eq.Validate())
}

func TestParseEquationErrors(t *testing.T) {
	for _, input := range []string{"a0(f0)", "a0()=b0()=c0()", "=b0()", "a0()=b0("} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseEquation(input)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestEquationValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   string
		tag   int
	}{
		{"dangling summed", "e0(f0)=a0(f0|s0)", "summed_count", 0},
		{"summed on output", "e0(s0)=a0(f0)", "lhs_summed", 0},
		{"duplicate output tag", "e0(f0,f0)=a0(f0)", "lhs_duplicate", 0},
		{"undeclared free", "e0(f0)=a0(f0,f1)", "free_mismatch", 1},
		{"unused free", "e0(f0,f1,f2)=a0(f0)", "free_mismatch", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustEquation(t, tt.input).Validate()
			require.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.typ, ve.Type)
			assert.Equal(t, tt.tag, ve.Tag)
		})
	}
}

func TestEquationValidateDummyOutput(t *testing.T) {
	assert.NoError(t, mustEquation(t, "e0(f0,0)=a0(f0|4)").Validate())
}

func TestCanonicalize(t *testing.T) {
	eq := mustEquation(t, "e0(f3|f1)=a0(f3|s0)b0(s0|f1)")
	eq.Canonicalize()
	assert.Equal(t, "e0(f0|f1)=a0(f0|s0)b0(s0|f1)", eq.String())
	assert.NoError(t, eq.Validate())

	eq.Canonicalize()
	assert.Equal(t, "e0(f0|f1)=a0(f0|s0)b0(s0|f1)", eq.String())
}

func TestCanonicalizeSwap(t *testing.T) {
	eq := mustEquation(t, "t0(f1,f0)=a0(f0|s0)b0(s0|f1)")
	eq.Canonicalize()
	assert.Equal(t, "t0(f0,f1)=a0(f1|s0)b0(s0|f0)", eq.String())
}

func TestEquationClone(t *testing.T) {
	eq := mustEquation(t, "e0(f0)=a0(f0)")
	c := eq.Clone()
	c.RHS().Conjugate()
	assert.Equal(t, "e0(f0)=a0(f0)", eq.String())
	assert.Equal(t, "e0(f0)=a'0(f0)", c.String())

	c.SetRHS(mustSrep(t, "b1(f0)"))
	assert.Equal(t, "e0(f0)=b1(f0)", c.String())
}
