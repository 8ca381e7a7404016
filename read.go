package bed

import (
	"errors"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
)

// rowByteOffset maps a logical row index to the absolute byte offset of its
// chunk. It performs no I/O.
func (b *BED) rowByteOffset(idx int) (int64, error) {
	if idx < 0 || idx >= b.rows {
		return 0, fmt.Errorf("%w: %d with %d rows", ErrIndexOutOfRange, idx, b.rows)
	}

	return headerSize + int64(b.ChunkSizeBytes)*int64(idx+b.rowOffset), nil
}

// readChunkInto seeks to row idx and fills buf, which must be
// ChunkSizeBytes long. Seeking happens before every read, so rows may be
// requested in any order.
func (b *BED) readChunkInto(idx int, buf []byte) error {
	if b.File == nil {
		return ErrClosedReader
	}

	offset, err := b.rowByteOffset(idx)
	if err != nil {
		return err
	}

	if _, err := b.File.Seek(offset, io.SeekStart); err != nil {
		return pfx.Err(err)
	}
	if _, err := io.ReadFull(b.File, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: row %d needs %d bytes at offset %d", ErrUnexpectedEOF, idx, b.ChunkSizeBytes, offset)
		}
		return pfx.Err(err)
	}

	return nil
}

// ReadRow decodes the genotype codes of one addressable row. The result has
// exactly NSNPs entries for individual-major files and NSamples entries for
// SNP-major files, and is a fresh slice on every call.
func (b *BED) ReadRow(idx int) ([]GenotypeCode, error) {
	chunk := make([]byte, b.ChunkSizeBytes)
	if err := b.readChunkInto(idx, chunk); err != nil {
		return nil, err
	}

	return decodeChunk(chunk, b.cols), nil
}

// ReadRange decodes one row per index produced by the half-open slice
// [start:stop:step], following the clamping and step conventions of
// ordinary sequence slicing (negative indexes count from the end, negative
// steps walk backwards). An empty range yields an empty result, not an
// error.
func (b *BED) ReadRange(start, stop, step int) ([][]GenotypeCode, error) {
	if step == 0 {
		return nil, errors.New("bed: slice step cannot be zero")
	}
	if b.File == nil {
		return nil, ErrClosedReader
	}

	start, stop = clampSlice(start, stop, step, b.rows)

	var out [][]GenotypeCode
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		row, err := b.ReadRow(i)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, nil
}

// clampSlice normalizes slice bounds against length the same way ordinary
// sequence slicing does, so that iterating from start towards stop by step
// visits only valid indexes.
func clampSlice(start, stop, step, length int) (int, int) {
	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}

	if start < 0 {
		start += length
		if start < lower {
			start = lower
		}
	} else if start > upper {
		start = upper
	}

	if stop < 0 {
		stop += length
		if stop < lower {
			stop = lower
		}
	} else if stop > upper {
		stop = upper
	}

	return start, stop
}
