package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/mera/internal/eval"
	"github.com/born-ml/mera/internal/tensor"
)

// ReaderOptions configures snapshot loading.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// DefaultReaderOptions returns strict validation with checksum checks.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{ValidationLevel: ValidationStrict}
}

// Read loads a snapshot into a new registry of element type T. Real data can
// be loaded as a complex type; complex data cannot be loaded as a real type.
func Read[T tensor.Scalar](r io.Reader, opts ReaderOptions) (*eval.Registry[T], *Header, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, nil, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[:4]) != MagicBytes {
		return nil, nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	var stored [32]byte
	copy(stored[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, nil, ErrHeaderTooLarge
	}
	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header JSON: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	pos := int64(FixedHeaderSize) + int64(headerSize)
	if _, err := io.CopyN(io.Discard, r, alignedOffset(pos)-pos); err != nil {
		return nil, nil, fmt.Errorf("failed to skip padding: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(dataSize))) //nolint:gosec // G115: bounded by the reader
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if uint64(len(data)) != dataSize {
		return nil, nil, fmt.Errorf("%w: data section has %d bytes, header says %d", ErrOutOfBounds, len(data), dataSize)
	}

	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
			return nil, nil, err
		}
	}
	if err := ValidateHeader(&header, int64(len(data)), opts.ValidationLevel); err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}

	reg := eval.NewRegistry[T]()
	for _, m := range header.Tensors {
		t, err := loadTensor[T](m, data)
		if err != nil {
			return nil, nil, err
		}
		if _, err := reg.Add(m.Name, m.ID, t); err != nil {
			return nil, nil, err
		}
	}
	return reg, &header, nil
}

func loadTensor[T tensor.Scalar](m TensorMeta, data []byte) (*tensor.Dense[T], error) {
	dt, ok := stringToDtype(m.DType)
	if !ok {
		return nil, &ValidationError{Type: "invalid_dtype", Tensor: m.Key(), Details: fmt.Sprintf("unknown data type %q", m.DType)}
	}
	if dt.IsComplex() && !tensor.TypeOf[T]().IsComplex() {
		return nil, fmt.Errorf("%w: tensor %s is %s, requested %s", ErrDTypeMismatch, m.Key(), dt, tensor.TypeOf[T]())
	}
	if m.Offset < 0 || m.Size < 0 || m.Offset+m.Size > int64(len(data)) || m.Size%int64(dt.Size()) != 0 {
		return nil, fmt.Errorf("%w: tensor %s", ErrOutOfBounds, m.Key())
	}

	re, im := decodeParts(dt, data[m.Offset:m.Offset+m.Size])
	t, err := tensor.FromValues[T](tensor.Shape(m.Shape), m.Ins, re, im)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", m.Key(), err)
	}
	return t, nil
}

// Load reads a snapshot file with default options.
func Load[T tensor.Scalar](path string) (*eval.Registry[T], *Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for snapshots
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read[T](file, DefaultReaderOptions())
}

// LoadTensor reads a single tensor, identified by stanza name and id, from a
// snapshot file.
func LoadTensor[T tensor.Scalar](path, name string, id int) (*tensor.Dense[T], error) {
	reg, _, err := Load[T](path)
	if err != nil {
		return nil, err
	}
	h, ok := reg.Lookup(name, id)
	if !ok {
		return nil, &eval.LookupError{Name: name, ID: id}
	}
	return reg.Tensor(h), nil
}
