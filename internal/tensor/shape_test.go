package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShape(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		elements int
		strides  []int
		valid    bool
	}{
		{"scalar", Shape{}, 1, []int{}, true},
		{"vector", Shape{5}, 5, []int{1}, true},
		{"matrix", Shape{2, 3}, 6, []int{3, 1}, true},
		{"rank 3", Shape{2, 3, 4}, 24, []int{12, 4, 1}, true},
		{"zero dimension", Shape{2, 0}, 0, []int{0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.elements, tt.shape.NumElements())
			assert.Equal(t, tt.strides, tt.shape.ComputeStrides())
			if tt.valid {
				assert.NoError(t, tt.shape.Validate())
			} else {
				assert.Error(t, tt.shape.Validate())
			}
		})
	}
}

func TestShapeEqualClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	assert.True(t, s.Equal(c))

	c[0] = 4
	assert.False(t, s.Equal(c))
	assert.False(t, s.Equal(Shape{2}))
}
