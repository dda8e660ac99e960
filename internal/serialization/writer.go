package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/born-ml/mera/internal/eval"
	"github.com/born-ml/mera/internal/tensor"
)

// Write stores every tensor visible from reg in .mera format. Tensors
// shadowed by a scope are skipped.
func Write[T tensor.Scalar](w io.Writer, reg *eval.Registry[T], metadata map[string]string) error {
	header := Header{
		FormatVersion: FormatVersion,
		MeraVersion:   meraVersion,
		CreatedAt:     time.Now().UTC(),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	dt := tensor.TypeOf[T]()
	var data []byte
	for h := eval.Handle(0); int(h) < reg.Len(); h++ {
		key := reg.Key(h)
		if visible, _ := reg.Lookup(key.Name, key.ID); visible != h {
			continue
		}
		t := reg.Tensor(h)
		offset := int64(len(data))
		for _, v := range t.Data() {
			data = appendValue(data, v)
		}
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   key.Name,
			ID:     key.ID,
			DType:  dt.String(),
			Shape:  []int(t.Shape().Clone()),
			Ins:    t.Ins(),
			Offset: offset,
			Size:   int64(len(data)) - offset,
		})
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if dt.IsComplex() && len(header.Tensors) > 0 {
		flags |= FlagComplex
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed, MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	checksum := ComputeChecksum(data)
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	var buf bytes.Buffer
	buf.Write(fixed)
	buf.Write(headerJSON)
	pos := int64(FixedHeaderSize + len(headerJSON))
	buf.Write(make([]byte, alignedOffset(pos)-pos))
	buf.Write(data)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Save writes a snapshot of reg to path.
func Save[T tensor.Scalar](path string, reg *eval.Registry[T], metadata map[string]string) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for snapshots
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, reg, metadata); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
