package serialization

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/born-ml/mera/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "MERA"
	FormatVersion   = 1
	HeaderAlignment = 64   // Align tensor data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in fixed header
)

// Flags for the .mera format.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
	FlagComplex     uint32 = 1 << 1 // bit 1: at least one complex tensor
)

const meraVersion = "0.1.0"

// Header represents the JSON header of a .mera file.
type Header struct {
	FormatVersion int               `json:"format_version"` // Version of the .mera format
	MeraVersion   string            `json:"mera_version"`   // Version of the writer
	CreatedAt     time.Time         `json:"created_at"`     // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`        // Tensor metadata
	Metadata      map[string]string `json:"metadata"`       // Custom metadata (equation, run id, ...)
}

// TensorMeta describes a tensor in the .mera file.
type TensorMeta struct {
	Name   string `json:"name"`   // Stanza name (e.g., "u")
	ID     int    `json:"id"`     // Instance id
	DType  string `json:"dtype"`  // Data type (e.g., "float64", "complex128")
	Shape  []int  `json:"shape"`  // Per-leg dimensions, inputs first
	Ins    int    `json:"ins"`    // Number of input legs
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// Key renders the tensor key as it prefixes a stanza, e.g. "u0".
func (m TensorMeta) Key() string {
	return m.Name + strconv.Itoa(m.ID)
}

// stringToDtype converts a stored data type name back to tensor.DataType.
func stringToDtype(s string) (tensor.DataType, bool) {
	for _, dt := range []tensor.DataType{tensor.Float32, tensor.Float64, tensor.Complex64, tensor.Complex128} {
		if dt.String() == s {
			return dt, true
		}
	}
	return 0, false
}

// appendValue encodes one element in little-endian order.
func appendValue[T tensor.Scalar](buf []byte, v T) []byte {
	le := binary.LittleEndian
	switch x := any(v).(type) {
	case float32:
		return le.AppendUint32(buf, math.Float32bits(x))
	case float64:
		return le.AppendUint64(buf, math.Float64bits(x))
	case complex64:
		buf = le.AppendUint32(buf, math.Float32bits(real(x)))
		return le.AppendUint32(buf, math.Float32bits(imag(x)))
	case complex128:
		buf = le.AppendUint64(buf, math.Float64bits(real(x)))
		return le.AppendUint64(buf, math.Float64bits(imag(x)))
	default:
		panic("unsupported type")
	}
}

// decodeParts splits stored elements into real and imaginary parts.
// imag is nil for real data types.
func decodeParts(dt tensor.DataType, data []byte) (re, im []float64) {
	le := binary.LittleEndian
	n := len(data) / dt.Size()
	re = make([]float64, n)
	if dt.IsComplex() {
		im = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		b := data[i*dt.Size():]
		switch dt {
		case tensor.Float32:
			re[i] = float64(math.Float32frombits(le.Uint32(b)))
		case tensor.Float64:
			re[i] = math.Float64frombits(le.Uint64(b))
		case tensor.Complex64:
			re[i] = float64(math.Float32frombits(le.Uint32(b)))
			im[i] = float64(math.Float32frombits(le.Uint32(b[4:])))
		case tensor.Complex128:
			re[i] = math.Float64frombits(le.Uint64(b))
			im[i] = math.Float64frombits(le.Uint64(b[8:]))
		}
	}
	return re, im
}

func alignedOffset(pos int64) int64 {
	return pos + (HeaderAlignment-(pos%HeaderAlignment))%HeaderAlignment
}
