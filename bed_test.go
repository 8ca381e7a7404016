package bed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// codeToPair inverts the decoder's pair translation so tests can build
// byte-exact .bed bodies from genotype codes.
var codeToPair = [4]byte{0, 2, 1, 3}

func encodeRow(codes []GenotypeCode) []byte {
	out := make([]byte, (len(codes)+3)/4)
	for i, code := range codes {
		out[i/4] |= codeToPair[code] << uint(2*(i%4))
	}

	return out
}

// writeFileset writes a .bed/.fam/.bim triple into dir and returns the
// shared path prefix. The genotype at (row, col) is (row+col) % 4, which
// makes rows distinguishable in windowing tests.
func writeFileset(t *testing.T, dir string, modeByte byte, nSamples, nSNPs int) string {
	t.Helper()

	nRows, nCols := nSamples, nSNPs
	if modeByte == byte(SNPMajor) {
		nRows, nCols = nSNPs, nSamples
	}

	body := []byte{0x6c, 0x1b, modeByte}
	for r := 0; r < nRows; r++ {
		body = append(body, encodeRow(testRow(r, nCols))...)
	}

	prefix := filepath.Join(dir, "testdata")
	if err := os.WriteFile(prefix+".bed", body, 0o644); err != nil {
		t.Fatal(err)
	}

	var fam strings.Builder
	for i := 0; i < nSamples; i++ {
		fmt.Fprintf(&fam, "F%d I%d 0 0 1 -9\n", i, i)
	}
	if err := os.WriteFile(prefix+".fam", []byte(fam.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	var bim strings.Builder
	for i := 0; i < nSNPs; i++ {
		fmt.Fprintf(&bim, "1 rs%d 0 %d A G\n", i, 1000+i)
	}
	if err := os.WriteFile(prefix+".bim", []byte(bim.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	return prefix
}

func testRow(r, nCols int) []GenotypeCode {
	row := make([]GenotypeCode, nCols)
	for c := range row {
		row[c] = GenotypeCode((r + c) % 4)
	}

	return row
}

func equalRows(a, b []GenotypeCode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestHeaderDetection(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 7, 4)

	b, err := Open(prefix + ".bed")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if b.Mode != SNPMajor {
		t.Errorf("Got mode %s, expected %s", b.Mode, SNPMajor)
	}

	prefix2 := writeFileset(t, t.TempDir(), byte(IndividualMajor), 7, 4)
	b2, err := Open(prefix2)
	if err != nil {
		t.Fatal(err)
	}
	defer b2.Close()

	if b2.Mode != IndividualMajor {
		t.Errorf("Got mode %s, expected %s", b2.Mode, IndividualMajor)
	}
}

func TestInvalidModeByte(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), 0x02, 3, 3)

	if _, err := Open(prefix); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("Got %v, expected ErrInvalidHeader", err)
	}
}

func TestInvalidMagic(t *testing.T) {
	dir := t.TempDir()
	prefix := writeFileset(t, dir, byte(SNPMajor), 3, 3)

	raw, err := os.ReadFile(prefix + ".bed")
	if err != nil {
		t.Fatal(err)
	}
	raw[0] = 0x00
	if err := os.WriteFile(prefix+".bed", raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(prefix); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("Got %v, expected ErrInvalidHeader", err)
	}
}

func TestModeMismatch(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 3, 3)

	if _, err := Open(prefix, WithMode(IndividualMajor)); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("Got %v, expected ErrModeMismatch", err)
	}

	// A hint matching the file is harmless
	b, err := Open(prefix, WithMode(SNPMajor))
	if err != nil {
		t.Fatal(err)
	}
	b.Close()
}

func TestDimensions(t *testing.T) {
	// 7 samples means 2 bytes per SNP-major row, with 1 padding pair
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 7, 5)

	b, err := Open(prefix)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if b.NSamples != 7 || b.NSNPs != 5 {
		t.Errorf("Got %d samples x %d SNPs, expected 7 x 5", b.NSamples, b.NSNPs)
	}
	if b.Len() != 5 {
		t.Errorf("Got %d rows, expected 5", b.Len())
	}
	if b.ChunkSizeBytes != 2 {
		t.Errorf("Got chunk size %d, expected 2", b.ChunkSizeBytes)
	}
}

func TestReadRow(t *testing.T) {
	for _, mode := range []MajorMode{SNPMajor, IndividualMajor} {
		prefix := writeFileset(t, t.TempDir(), byte(mode), 7, 5)

		b, err := Open(prefix)
		if err != nil {
			t.Fatal(err)
		}

		nCols := b.NSamples
		if mode == IndividualMajor {
			nCols = b.NSNPs
		}

		for idx := 0; idx < b.Len(); idx++ {
			row, err := b.ReadRow(idx)
			if err != nil {
				t.Fatal(err)
			}
			if len(row) != nCols {
				t.Errorf("%s row %d: got %d codes, expected %d", mode, idx, len(row), nCols)
			}
			if !equalRows(row, testRow(idx, nCols)) {
				t.Errorf("%s row %d: got %v, expected %v", mode, idx, row, testRow(idx, nCols))
			}
		}

		b.Close()
	}
}

func TestWindowing(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 6, 10)

	b, err := Open(prefix, WithRowOffset(2), WithRowCount(3))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if b.Len() != 3 {
		t.Fatalf("Got %d rows, expected 3", b.Len())
	}

	// Row 0 of the windowed reader is physical row 2
	row, err := b.ReadRow(0)
	if err != nil {
		t.Fatal(err)
	}
	if !equalRows(row, testRow(2, 6)) {
		t.Errorf("Got %v, expected physical row 2 %v", row, testRow(2, 6))
	}

	// Offset alone leaves the remainder of the file addressable
	b2, err := Open(prefix, WithRowOffset(2))
	if err != nil {
		t.Fatal(err)
	}
	defer b2.Close()

	if b2.Len() != 8 {
		t.Errorf("Got %d rows, expected 8", b2.Len())
	}
}

func TestReadRange(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 5, 8)

	b, err := Open(prefix)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	got, err := b.ReadRange(2, 6, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("Got %d rows, expected 4", len(got))
	}
	for i, row := range got {
		want, err := b.ReadRow(2 + i)
		if err != nil {
			t.Fatal(err)
		}
		if !equalRows(row, want) {
			t.Errorf("Range row %d disagrees with ReadRow(%d)", i, 2+i)
		}
	}

	// Out-of-bounds ends clamp rather than fail
	all, err := b.ReadRange(-100, 100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != b.Len() {
		t.Errorf("Got %d rows, expected %d", len(all), b.Len())
	}

	// Strides skip rows
	strided, err := b.ReadRange(0, 8, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(strided) != 3 {
		t.Errorf("Got %d rows, expected 3", len(strided))
	}

	// Negative steps walk backwards
	back, err := b.ReadRange(4, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 3 {
		t.Fatalf("Got %d rows, expected 3", len(back))
	}
	if !equalRows(back[0], testRow(4, 5)) || !equalRows(back[2], testRow(2, 5)) {
		t.Error("Backwards range returned rows in the wrong order")
	}

	// Empty ranges are not an error
	empty, err := b.ReadRange(3, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("Got %d rows, expected none", len(empty))
	}

	if _, err := b.ReadRange(0, 5, 0); err == nil {
		t.Error("Expected an error for a zero step")
	}
}

func TestIndexOutOfRange(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 3, 4)

	b, err := Open(prefix)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if _, err := b.ReadRow(b.Len()); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Got %v, expected ErrIndexOutOfRange", err)
	}
	if _, err := b.ReadRow(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Got %v, expected ErrIndexOutOfRange", err)
	}

	// A failed read leaves the reader usable
	if _, err := b.ReadRow(0); err != nil {
		t.Errorf("Reader unusable after out-of-range read: %v", err)
	}
}

func TestClosedReader(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 3, 4)

	b, err := Open(prefix)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := b.ReadRow(0); !errors.Is(err, ErrClosedReader) {
		t.Errorf("Got %v, expected ErrClosedReader", err)
	}
	if _, err := b.ReadRange(0, 2, 1); !errors.Is(err, ErrClosedReader) {
		t.Errorf("Got %v, expected ErrClosedReader", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Second Close errored: %v", err)
	}
}

func TestTruncatedBody(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 8, 4)

	b, err := Open(prefix)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	// Cut the last row short by one byte
	stat, err := os.Stat(prefix + ".bed")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Truncate(prefix+".bed", stat.Size()-1); err != nil {
		t.Fatal(err)
	}

	if _, err := b.ReadRow(b.Len() - 1); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Got %v, expected ErrUnexpectedEOF", err)
	}

	// Earlier rows are still intact
	if _, err := b.ReadRow(0); err != nil {
		t.Errorf("Intact row unreadable: %v", err)
	}

	// A row entirely past the end of the file behaves the same way
	if err := os.Truncate(prefix+".bed", headerSize); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReadRow(0); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Got %v, expected ErrUnexpectedEOF", err)
	}
}

func TestSuffixAgnosticPath(t *testing.T) {
	prefix := writeFileset(t, t.TempDir(), byte(SNPMajor), 3, 3)

	withSuffix, err := Open(prefix + ".bed")
	if err != nil {
		t.Fatal(err)
	}
	withSuffix.Close()

	withoutSuffix, err := Open(prefix)
	if err != nil {
		t.Fatal(err)
	}
	withoutSuffix.Close()

	if withSuffix.FilePath != withoutSuffix.FilePath {
		t.Errorf("Got %s and %s, expected identical paths", withSuffix.FilePath, withoutSuffix.FilePath)
	}
}
