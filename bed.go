package bed

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/genomisc"
	"github.com/carbocation/pfx"
)

// MagicNumber contains the value required to confirm that a file is
// PLINK BED-conformant. The original PLINK tooling does not verify it when
// reading; this package does, as a stricter trigger for ErrInvalidHeader.
var MagicNumber = []byte{0x6c, 0x1b}

const (
	offsetMagicNumber = 0
	offsetMode        = 2

	// headerSize is the fixed number of bytes before the packed genotype
	// body: two magic bytes plus the mode byte.
	headerSize = 3
)

// BED is the main object used for reading PLINK BED genotype matrices. One
// addressable row is a SNP across all samples (SNP-major files) or a sample
// across all SNPs (individual-major files).
//
// A BED carries a single file cursor, so it is not safe for concurrent use;
// callers that want parallel reads should open one BED per goroutine, as in
// example/parallel.
type BED struct {
	FilePath       string
	File           io.ReadSeekCloser
	Mode           MajorMode
	NSamples       int
	NSNPs          int
	ChunkSizeBytes int

	// rowOffset counts addressable rows skipped at the start of the body,
	// distinct from the 3-byte header.
	rowOffset int
	rows      int
	cols      int
}

// Open attempts to read a PLINK BED fileset whose .bed file is located at
// path. The path may be given with or without the .bed suffix, and may be a
// gs:// URL when WithGoogleStorageClient is supplied. The matrix dimensions
// are learned by counting lines in the .fam and .bim companions, which
// default to siblings of the .bed file. If successful, this returns a new
// BED object. Otherwise, it returns an error.
func Open(path string, opts ...Option) (*BED, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	prefix := strings.TrimSuffix(path, ".bed")
	famPath := o.famPath
	if famPath == "" {
		famPath = prefix + ".fam"
	}
	bimPath := o.bimPath
	if bimPath == "" {
		bimPath = prefix + ".bim"
	}

	rawSamples, err := CountFAMSamples(famPath, o.client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	rawSNPs, err := CountBIMVariants(bimPath, o.client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	file, err := genomisc.MaybeOpenSeekerFromGoogleStorage(prefix+".bed", o.client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	b := &BED{
		FilePath:  prefix + ".bed",
		File:      file,
		rowOffset: o.offset,
	}

	if err := populateBEDHeader(b); err != nil {
		file.Close()
		return nil, err
	}

	if o.hasMode && o.mode != b.Mode {
		file.Close()
		return nil, fmt.Errorf("%w: expected %s but file is %s", ErrModeMismatch, o.mode, b.Mode)
	}

	// Only the addressable-row axis is windowed by offset/count; the
	// complementary axis always spans the full companion file.
	switch b.Mode {
	case IndividualMajor:
		b.NSamples = rawSamples - o.offset
		if o.hasCount {
			b.NSamples = o.count
		}
		b.NSNPs = rawSNPs
		b.rows, b.cols = b.NSamples, b.NSNPs
	case SNPMajor:
		b.NSamples = rawSamples
		b.NSNPs = rawSNPs - o.offset
		if o.hasCount {
			b.NSNPs = o.count
		}
		b.rows, b.cols = b.NSNPs, b.NSamples
	}

	// 4 genotype codes per byte, rounded up to a whole byte per row.
	b.ChunkSizeBytes = (b.cols + 3) / 4

	return b, nil
}

func populateBEDHeader(b *BED) error {
	magic := make([]byte, len(MagicNumber))
	if err := peekAt(b.File, offsetMagicNumber, magic); err != nil {
		return err
	}
	if !bytes.Equal(magic, MagicNumber) {
		return fmt.Errorf("%w: magic bytes %v, expected %v", ErrInvalidHeader, magic, MagicNumber)
	}

	mode, err := detectMajorMode(b.File)
	if err != nil {
		return err
	}
	b.Mode = mode

	return nil
}

// detectMajorMode reads the mode byte at offset 2 without disturbing the
// file cursor.
func detectMajorMode(f io.ReadSeekCloser) (MajorMode, error) {
	buf := make([]byte, 1)
	if err := peekAt(f, offsetMode, buf); err != nil {
		return 0, err
	}

	switch buf[0] {
	case byte(SNPMajor):
		return SNPMajor, nil
	case byte(IndividualMajor):
		return IndividualMajor, nil
	}

	return 0, fmt.Errorf("%w: mode byte 0x%02x", ErrInvalidHeader, buf[0])
}

// peekAt fills buf from the given absolute offset and then restores the
// cursor to wherever it was beforehand, even if the read fails.
func peekAt(f io.ReadSeekCloser, offset int64, buf []byte) (err error) {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if _, seekErr := f.Seek(pos, io.SeekStart); seekErr != nil && err == nil {
			err = pfx.Err(seekErr)
		}
	}()

	if _, err = f.Seek(offset, io.SeekStart); err != nil {
		return pfx.Err(err)
	}
	if _, err = io.ReadFull(f, buf); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Len reports the number of addressable rows: NSamples for
// individual-major files, NSNPs for SNP-major files.
func (b *BED) Len() int {
	return b.rows
}

// Close releases the underlying file. Any read after Close fails with
// ErrClosedReader.
func (b *BED) Close() error {
	if b.File == nil {
		return nil
	}

	err := b.File.Close()
	b.File = nil

	return err
}
