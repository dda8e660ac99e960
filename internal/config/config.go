// Package config loads run configurations for the mera command: the scalar
// type, evaluator mode, MERA parameters and the tensors to register.
//
// Example file:
//
//	scalar: real
//	evaluator: breakup
//	verbose: true
//	h: 8
//	m: 2
//	hamiltonianConnection: [1, 1, 1, 1, 1, 1, 1, 1]
//	tensors:
//	  - {name: u, id: 0, ins: 1, dims: [5], init: identity}
//	  - {name: m, id: 0, ins: 1, dims: [2, 2], init: values, values: [1, 2, 3, 4]}
//	  - {name: w, id: 0, init: file, file: previous.mera}
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scalar types.
const (
	ScalarReal    = "real"
	ScalarComplex = "complex"
)

// Evaluator modes.
const (
	EvaluatorSlow    = "slow"
	EvaluatorBreakup = "breakup"
)

// Tensor initialisers.
const (
	InitZero     = "zero"
	InitOnes     = "ones"
	InitIdentity = "identity"
	InitValues   = "values"
	InitRandom   = "random"
	InitFile     = "file"
)

// Config is a run configuration.
type Config struct {
	Scalar                string         `yaml:"scalar"`
	Evaluator             string         `yaml:"evaluator"`
	Verbose               bool           `yaml:"verbose"`
	H                     int            `yaml:"h"`
	M                     int            `yaml:"m"`
	HamiltonianConnection []float64      `yaml:"hamiltonianConnection"`
	Tensors               []TensorConfig `yaml:"tensors"`
}

// TensorConfig declares one tensor of the registry.
type TensorConfig struct {
	Name   string    `yaml:"name"`
	ID     int       `yaml:"id"`
	Ins    int       `yaml:"ins"`
	Dims   []int     `yaml:"dims"`
	Init   string    `yaml:"init"`
	Values []float64 `yaml:"values"`
	Imag   []float64 `yaml:"imag"`
	Seed   uint64    `yaml:"seed"`
	File   string    `yaml:"file"`
}

// Default returns a real-valued, brute-force configuration with no tensors.
func Default() Config {
	return Config{
		Scalar:    ScalarReal,
		Evaluator: EvaluatorSlow,
		M:         2,
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration. Missing fields take
// their Default values; unknown fields are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerations and tensor declarations.
func (c *Config) Validate() error {
	switch c.Scalar {
	case ScalarReal, ScalarComplex:
	default:
		return fmt.Errorf("scalar must be %q or %q, got %q", ScalarReal, ScalarComplex, c.Scalar)
	}
	switch c.Evaluator {
	case EvaluatorSlow, EvaluatorBreakup:
	default:
		return fmt.Errorf("evaluator must be %q or %q, got %q", EvaluatorSlow, EvaluatorBreakup, c.Evaluator)
	}
	if c.H < 0 || c.M < 0 {
		return fmt.Errorf("h and m must not be negative")
	}

	seen := make(map[string]bool)
	for i := range c.Tensors {
		t := &c.Tensors[i]
		key := fmt.Sprintf("%s%d", t.Name, t.ID)
		if seen[key] {
			return fmt.Errorf("tensor %s declared twice", key)
		}
		seen[key] = true
		if err := t.Validate(c.Scalar == ScalarComplex); err != nil {
			return errors.Wrapf(err, "tensor %s", key)
		}
	}
	return nil
}

// Validate checks one tensor declaration.
func (t *TensorConfig) Validate(complexScalar bool) error {
	if t.Name == "" {
		return fmt.Errorf("missing name")
	}
	if t.Init == InitFile {
		if t.File == "" {
			return fmt.Errorf("init %q needs a file", InitFile)
		}
		return nil
	}
	if t.Ins < 0 || t.Ins > len(t.Dims) {
		return fmt.Errorf("ins %d out of range for %d legs", t.Ins, len(t.Dims))
	}
	n := 1
	for _, d := range t.Dims {
		if d <= 0 {
			return fmt.Errorf("dimension %d must be positive", d)
		}
		n *= d
	}

	switch t.Init {
	case "":
		t.Init = InitZero
	case InitZero, InitOnes, InitIdentity, InitRandom:
	case InitValues:
		if len(t.Values) != n {
			return fmt.Errorf("%d values for %d elements", len(t.Values), n)
		}
		if t.Imag != nil && len(t.Imag) != n {
			return fmt.Errorf("%d imaginary parts for %d elements", len(t.Imag), n)
		}
		if t.Imag != nil && !complexScalar {
			return fmt.Errorf("imaginary parts given for real scalar type")
		}
	default:
		return fmt.Errorf("unknown init %q", t.Init)
	}
	return nil
}
