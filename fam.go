package bed

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
)

// Map columns in the FAM file to their positions
const (
	famFamilyID int = iota
	famIndividualID
	famPaternalID
	famMaternalID
	famSex
	famPhenotype
)

type FAMRow struct {
	FamilyID     string
	IndividualID string
	PaternalID   string // 0 when the father is not in the dataset
	MaternalID   string // 0 when the mother is not in the dataset
	Sex          int    // 1 = male, 2 = female, 0 = unknown
	Phenotype    string
}

// FAM reads the rows of a PLINK .fam companion file, one sample per row.
type FAM struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

func OpenFAM(path string) (*FAM, error) {
	fam := &FAM{
		path: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fam.file = file
	fam.scanner = bufio.NewScanner(file)

	return fam, nil
}

func (f *FAM) Close() error {
	return f.file.Close()
}

func (f *FAM) Err() error {
	if f.err != nil {
		return f.err
	}

	return f.scanner.Err()
}

func (f *FAM) Read() *FAMRow {
	if !f.scanner.Scan() {
		return nil
	}

	cols := strings.Fields(f.scanner.Text())
	if len(cols) < famPhenotype+1 {
		return nil
	}

	row := &FAMRow{
		FamilyID:     cols[famFamilyID],
		IndividualID: cols[famIndividualID],
		PaternalID:   cols[famPaternalID],
		MaternalID:   cols[famMaternalID],
		Phenotype:    cols[famPhenotype],
	}

	sex, err := strconv.Atoi(cols[famSex])
	if err != nil {
		f.err = err
		return nil
	}
	row.Sex = sex

	return row
}

// CountFAMSamples reports the number of samples in a .fam companion by
// counting its lines. Record content is never inspected.
func CountFAMSamples(path string, client *storage.Client) (int, error) {
	r, err := openCompanion(path, client)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return countLines(r)
}
