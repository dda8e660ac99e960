package serialization

import (
	"fmt"
	"sort"

	"github.com/born-ml/mera/internal/tensor"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 256               // Maximum tensor name length
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default, recommended).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal performs basic validation checks only.
	ValidationNormal
	// ValidationNone skips validation (use only with trusted input).
	ValidationNone
)

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Key(),
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", t.Offset, t.Size),
			}
		}
		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Key(),
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  t.Key(),
					Tensor2: next.Key(),
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}
	return nil
}

// ValidateTensorMeta checks that a tensor entry can be loaded: a stanza name,
// a known data type, a valid leg split and a byte size matching the shape.
func ValidateTensorMeta(m TensorMeta) error {
	if m.Name == "" || len(m.Name) > MaxTensorNameLen {
		return &ValidationError{Type: "invalid_name", Tensor: m.Key(), Details: fmt.Sprintf("name length %d", len(m.Name))}
	}
	for _, c := range m.Name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return &ValidationError{Type: "invalid_name", Tensor: m.Key(), Details: "stanza names are letters only"}
		}
	}
	if m.ID < 0 {
		return &ValidationError{Type: "invalid_id", Tensor: m.Key(), Details: "negative id"}
	}

	dt, ok := stringToDtype(m.DType)
	if !ok {
		return &ValidationError{Type: "invalid_dtype", Tensor: m.Key(), Details: fmt.Sprintf("unknown data type %q", m.DType)}
	}
	shape := tensor.Shape(m.Shape)
	if err := shape.Validate(); err != nil {
		return &ValidationError{Type: "invalid_shape", Tensor: m.Key(), Details: err.Error()}
	}
	if m.Ins < 0 || m.Ins > len(shape) {
		return &ValidationError{Type: "invalid_ins", Tensor: m.Key(), Details: fmt.Sprintf("%d input legs for %d legs", m.Ins, len(shape))}
	}
	if want := int64(shape.NumElements() * dt.Size()); m.Size != want {
		return &ValidationError{Type: "size_mismatch", Tensor: m.Key(), Details: fmt.Sprintf("size %d, shape needs %d", m.Size, want)}
	}
	return nil
}

// ValidateHeader performs header validation at the given level.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	seen := make(map[string]bool, len(h.Tensors))
	for _, t := range h.Tensors {
		if err := ValidateTensorMeta(t); err != nil {
			return err
		}
		if seen[t.Key()] {
			return &ValidationError{Type: "duplicate_tensor", Tensor: t.Key(), Details: "key stored twice"}
		}
		seen[t.Key()] = true
	}

	if level == ValidationStrict {
		if err := ValidateTensorOffsets(h.Tensors, dataSize); err != nil {
			return err
		}
	}
	return nil
}
