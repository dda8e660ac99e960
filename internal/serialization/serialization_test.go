package serialization

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mera/internal/eval"
	"github.com/born-ml/mera/internal/tensor"
)

func sampleRegistry[T tensor.Scalar](t *testing.T) *eval.Registry[T] {
	t.Helper()
	reg := eval.NewRegistry[T]()
	for _, tc := range []struct {
		name string
		id   int
		d    *tensor.Dense[T]
	}{
		{"u", 0, tensor.Rand[T](tensor.Shape{2, 2, 3}, 2, 1)},
		{"w", 3, tensor.Identity[T](tensor.Shape{3, 3}, 1)},
		{"e", 0, tensor.NewScalar[T]()},
	} {
		_, err := reg.Add(tc.name, tc.id, tc.d)
		require.NoError(t, err)
	}
	return reg
}

func assertSameRegistry[T tensor.Scalar](t *testing.T, want, got *eval.Registry[T]) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for h := eval.Handle(0); int(h) < want.Len(); h++ {
		key := want.Key(h)
		gh, ok := got.Lookup(key.Name, key.ID)
		require.True(t, ok, key.String())
		w, g := want.Tensor(h), got.Tensor(gh)
		assert.Equal(t, w.Shape(), g.Shape(), key.String())
		assert.Equal(t, w.Ins(), g.Ins(), key.String())
		assert.Equal(t, w.Data(), g.Data(), key.String())
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Run("float64", func(t *testing.T) {
		reg := sampleRegistry[float64](t)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, reg, map[string]string{"equation": "e0()=u0(s0)"}))

		got, header, err := Read[float64](&buf, DefaultReaderOptions())
		require.NoError(t, err)
		assertSameRegistry(t, reg, got)
		assert.Equal(t, FormatVersion, header.FormatVersion)
		assert.Equal(t, "e0()=u0(s0)", header.Metadata["equation"])
		assert.Equal(t, "w3", header.Tensors[1].Key())
	})

	t.Run("complex128", func(t *testing.T) {
		reg := sampleRegistry[complex128](t)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, reg, nil))
		flags := binary.LittleEndian.Uint32(buf.Bytes()[8:12])
		assert.NotZero(t, flags&FlagComplex)

		got, _, err := Read[complex128](&buf, DefaultReaderOptions())
		require.NoError(t, err)
		assertSameRegistry(t, reg, got)
	})

	t.Run("float32", func(t *testing.T) {
		reg := sampleRegistry[float32](t)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, reg, nil))
		got, _, err := Read[float32](&buf, DefaultReaderOptions())
		require.NoError(t, err)
		assertSameRegistry(t, reg, got)
	})
}

func TestDataAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRegistry[float64](t), nil))

	raw := buf.Bytes()
	headerSize := int64(binary.LittleEndian.Uint64(raw[16:24]))
	dataSize := int64(binary.LittleEndian.Uint64(raw[24:32]))
	start := alignedOffset(FixedHeaderSize + headerSize)
	assert.Zero(t, start%HeaderAlignment)
	assert.Equal(t, int64(len(raw)), start+dataSize)
}

func TestReadRealAsComplex(t *testing.T) {
	reg := sampleRegistry[float64](t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, reg, nil))

	got, _, err := Read[complex128](&buf, DefaultReaderOptions())
	require.NoError(t, err)
	h, ok := got.Lookup("w", 3)
	require.True(t, ok)
	assert.Equal(t, []complex128{1, 0, 0, 0, 1, 0, 0, 0, 1}, got.Tensor(h).Data())
}

func TestReadComplexAsReal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRegistry[complex128](t), nil))

	_, _, err := Read[float64](&buf, DefaultReaderOptions())
	assert.ErrorIs(t, err, ErrDTypeMismatch)
}

func TestWriteSkipsShadowed(t *testing.T) {
	parent := sampleRegistry[float64](t)
	scope := parent.Scope()
	_, err := scope.Add("w", 3, tensor.Ones[float64](tensor.Shape{2}, 1))
	require.NoError(t, err)
	_, err = scope.Add("t", 0, tensor.Ones[float64](tensor.Shape{4}, 1))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, scope, nil))
	got, header, err := Read[float64](&buf, DefaultReaderOptions())
	require.NoError(t, err)

	assert.Len(t, header.Tensors, 4)
	h, ok := got.Lookup("w", 3)
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{2}, got.Tensor(h).Shape())
}

func TestReadCorrupted(t *testing.T) {
	encode := func(t *testing.T) []byte {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleRegistry[float64](t), nil))
		return buf.Bytes()
	}

	t.Run("magic", func(t *testing.T) {
		raw := encode(t)
		copy(raw, "BORN")
		_, _, err := Read[float64](bytes.NewReader(raw), DefaultReaderOptions())
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		raw := encode(t)
		binary.LittleEndian.PutUint32(raw[4:8], 9)
		_, _, err := Read[float64](bytes.NewReader(raw), DefaultReaderOptions())
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("checksum", func(t *testing.T) {
		raw := encode(t)
		raw[len(raw)-1] ^= 0xff
		_, _, err := Read[float64](bytes.NewReader(raw), DefaultReaderOptions())
		assert.ErrorIs(t, err, ErrChecksumMismatch)

		_, _, err = Read[float64](bytes.NewReader(raw), ReaderOptions{SkipChecksumValidation: true})
		assert.NoError(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		raw := encode(t)
		_, _, err := Read[float64](bytes.NewReader(raw[:len(raw)-8]), DefaultReaderOptions())
		assert.ErrorIs(t, err, ErrOutOfBounds)

		_, _, err = Read[float64](bytes.NewReader(raw[:10]), DefaultReaderOptions())
		assert.Error(t, err)
	})

	t.Run("header too large", func(t *testing.T) {
		raw := encode(t)
		binary.LittleEndian.PutUint64(raw[16:24], MaxHeaderSize+1)
		_, _, err := Read[float64](bytes.NewReader(raw), DefaultReaderOptions())
		assert.ErrorIs(t, err, ErrHeaderTooLarge)
	})
}

func TestSaveLoad(t *testing.T) {
	reg := sampleRegistry[complex128](t)
	path := filepath.Join(t.TempDir(), "run.mera")
	require.NoError(t, Save(path, reg, nil))

	got, _, err := Load[complex128](path)
	require.NoError(t, err)
	assertSameRegistry(t, reg, got)

	u, err := LoadTensor[complex128](path, "u", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, u.Ins())

	_, err = LoadTensor[complex128](path, "u", 7)
	assert.ErrorIs(t, err, eval.ErrLookup)

	_, _, err = Load[float64](filepath.Join(t.TempDir(), "missing.mera"))
	assert.Error(t, err)
}
