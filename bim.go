package bed

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
)

// BIM reads the rows of a PLINK .bim companion file, one SNP per row.
type BIM struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

func OpenBIM(path string) (*BIM, error) {
	bim := &BIM{
		path: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	bim.file = file
	bim.scanner = bufio.NewScanner(file)

	return bim, nil
}

func (b *BIM) Close() error {
	return b.file.Close()
}

func (b *BIM) Err() error {
	if b.err != nil {
		return b.err
	}

	return b.scanner.Err()
}

func (b *BIM) Read() *BIMRow {
	if !b.scanner.Scan() {
		return nil
	}

	cols := strings.Fields(b.scanner.Text())
	if len(cols) < bimAllele2+1 {
		return nil
	}

	row := &BIMRow{
		Chromosome: cols[bimChromosome],
		VariantID:  cols[bimVariantID],
		Allele1:    cols[bimAllele1],
		Allele2:    cols[bimAllele2],
	}

	coord64, err := strconv.ParseUint(cols[bimCoordinate], 10, 32)
	if err != nil {
		b.err = err
		return nil
	}
	row.Coordinate = uint32(coord64)

	return row
}

// CountBIMVariants reports the number of SNPs in a .bim companion by
// counting its lines. Record content is never inspected.
func CountBIMVariants(path string, client *storage.Client) (int, error) {
	r, err := openCompanion(path, client)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return countLines(r)
}
