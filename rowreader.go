package bed

// RowReader iterates over the addressable rows of a BED in order, and can
// also jump to an arbitrary row. It reuses an internal chunk buffer across
// reads; the decoded rows it returns are fresh slices.
type RowReader struct {
	RowsSeen int
	b        *BED
	next     int
	err      error

	// Cached values
	buffer []byte
}

func (b *BED) NewRowReader() *RowReader {
	rr := &RowReader{
		b:      b,
		buffer: make([]byte, b.ChunkSizeBytes),
	}

	return rr
}

func (rr *RowReader) Error() error {
	return rr.err
}

// Read decodes the next row, or returns nil once every row has been seen.
// After a nil result, Error distinguishes exhaustion (nil) from failure.
func (rr *RowReader) Read() []GenotypeCode {
	if rr.next >= rr.b.Len() {
		return nil
	}

	row := rr.ReadAt(rr.next)
	if row == nil {
		return nil
	}
	rr.next++

	return row
}

// ReadAt decodes the row at idx without affecting the sequential position.
// On failure it returns nil and records the error for Error.
func (rr *RowReader) ReadAt(idx int) []GenotypeCode {
	if err := rr.b.readChunkInto(idx, rr.buffer); err != nil {
		rr.err = err
		return nil
	}

	rr.RowsSeen++

	return decodeChunk(rr.buffer, rr.b.cols)
}
