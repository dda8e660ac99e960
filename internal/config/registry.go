package config

import (
	"github.com/pkg/errors"

	"github.com/born-ml/mera/internal/eval"
	"github.com/born-ml/mera/internal/serialization"
	"github.com/born-ml/mera/internal/tensor"
)

// NewTensor creates the tensor described by t. A file initialiser loads the
// tensor with the same name and id from a snapshot.
func NewTensor[T tensor.Scalar](t TensorConfig) (*tensor.Dense[T], error) {
	dims := tensor.Shape(t.Dims)
	switch t.Init {
	case InitFile:
		return serialization.LoadTensor[T](t.File, t.Name, t.ID)
	case InitValues:
		return tensor.FromValues[T](dims, t.Ins, t.Values, t.Imag)
	case InitRandom:
		if err := dims.Validate(); err != nil {
			return nil, err
		}
		return tensor.Rand[T](dims, t.Ins, t.Seed), nil
	}

	d, err := tensor.New[T](dims, t.Ins)
	if err != nil {
		return nil, err
	}
	switch t.Init {
	case InitOnes:
		d.Fill(tensor.One[T]())
	case InitIdentity:
		d.SetToIdentity(tensor.One[T]())
	}
	return d, nil
}

// BuildRegistry creates and registers every tensor of the configuration.
func BuildRegistry[T tensor.Scalar](c *Config) (*eval.Registry[T], error) {
	reg := eval.NewRegistry[T]()
	for _, tc := range c.Tensors {
		d, err := NewTensor[T](tc)
		if err != nil {
			return nil, errors.Wrapf(err, "tensor %s%d", tc.Name, tc.ID)
		}
		if _, err := reg.Add(tc.Name, tc.ID, d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
