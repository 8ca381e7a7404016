package bed

import (
	"fmt"
	"os"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

// BDIIndex wraps a BED Index (.bdi) file: an SQLite database mapping the
// variants of a SNP-major fileset to their row and byte positions, so that
// a row can be fetched by rsid without scanning the .bim.
type BDIIndex struct {
	DB       *sqlx.DB
	Metadata *BDIMetadata
}

func (b *BDIIndex) Close() error {
	return b.DB.Close()
}

func OpenBDI(path string) (*BDIIndex, error) {
	bdi := &BDIIndex{
		Metadata: &BDIMetadata{},
	}

	db, err := openBDIDB(path)
	if err != nil {
		return nil, err
	}
	bdi.DB = db

	// Not all index files have metadata; ignore any error
	_ = bdi.DB.Get(bdi.Metadata, "SELECT * FROM Metadata LIMIT 1")

	return bdi, nil
}

// VariantByRSID fetches the index entry whose rsid matches exactly. Its
// RowIndex is directly usable with ReadRow on the unwindowed fileset.
func (b *BDIIndex) VariantByRSID(rsid string) (*VariantIndex, error) {
	v := &VariantIndex{}
	if err := b.DB.Get(v, "SELECT * FROM Variant WHERE rsid = ? LIMIT 1", rsid); err != nil {
		return nil, pfx.Err(err)
	}

	return v, nil
}

// VariantIndex conforms to the data found in the rows of the SQLite table
// "Variant" from BED Index (.bdi) files, and can be easily parsed with sqlx.
type VariantIndex struct {
	Chromosome        string
	Position          uint32
	RSID              string `db:"rsid"`
	Allele1           string
	Allele2           string
	RowIndex          int  `db:"row_index"`
	FileStartPosition uint `db:"file_start_position"`
	SizeInBytes       uint `db:"size_in_bytes"`
}

// BDIMetadata conforms to the data found in the rows of the SQLite table
// "Metadata" of .bdi files.
type BDIMetadata struct {
	Filename           string
	FileSize           uint   `db:"file_size"`
	LastWriteTime      Time   `db:"last_write_time"`
	FirstThousandBytes []byte `db:"first_1000_bytes"`
	IndexCreationTime  Time   `db:"index_creation_time"`
}

const bdiSchema = `
CREATE TABLE IF NOT EXISTS Variant (
	chromosome TEXT NOT NULL,
	position INTEGER NOT NULL,
	rsid TEXT NOT NULL,
	allele1 TEXT NOT NULL,
	allele2 TEXT NOT NULL,
	row_index INTEGER NOT NULL,
	file_start_position INTEGER NOT NULL,
	size_in_bytes INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS VariantRSID ON Variant (rsid);
CREATE TABLE IF NOT EXISTS Metadata (
	filename TEXT,
	file_size INTEGER,
	last_write_time INTEGER,
	first_1000_bytes BLOB,
	index_creation_time INTEGER
);
`

// CreateBDI walks the .bim companion at bimPath and writes a .bdi index at
// bdiPath for the fileset behind b. Only SNP-major files can be indexed,
// since only there does a .bim line correspond to one addressable row. The
// index always describes the unwindowed file, regardless of any offset or
// count the BED was opened with.
func CreateBDI(b *BED, bimPath, bdiPath string) error {
	if b.File == nil {
		return ErrClosedReader
	}

	switch b.Mode {
	case SNPMajor:
		// One .bim line per addressable row; proceed.
	case IndividualMajor:
		return fmt.Errorf("%w: cannot index an individual-major file by variant", ErrModeMismatch)
	}

	bim, err := OpenBIM(bimPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer bim.Close()

	db, err := openBDIDB(bdiPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer db.Close()

	if _, err := db.Exec(bdiSchema); err != nil {
		return pfx.Err(err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}

	stmt, err := tx.Prepare("INSERT INTO Variant VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return pfx.Err(err)
	}

	for i := 0; ; i++ {
		row := bim.Read()
		if row == nil {
			break
		}

		startPosition := headerSize + b.ChunkSizeBytes*i
		if _, err := stmt.Exec(
			Chromosome(row.Chromosome),
			row.Coordinate,
			row.VariantID,
			row.Allele1,
			row.Allele2,
			i,
			startPosition,
			b.ChunkSizeBytes,
		); err != nil {
			tx.Rollback()
			return pfx.Err(err)
		}
	}
	if err := bim.Err(); err != nil {
		tx.Rollback()
		return pfx.Err(err)
	}

	if err := writeBDIMetadata(tx, b); err != nil {
		tx.Rollback()
		return pfx.Err(err)
	}

	return pfx.Err(tx.Commit())
}

// writeBDIMetadata records provenance for the indexed .bed file. Metadata
// is best-effort: a fileset that cannot be stat'ed (e.g. gs:// paths) is
// indexed without it, which OpenBDI tolerates.
func writeBDIMetadata(tx *sqlx.Tx, b *BED) error {
	stat, err := os.Stat(b.FilePath)
	if err != nil {
		return nil
	}

	first := make([]byte, 1000)
	if err := peekAt(b.File, 0, first); err != nil {
		first = nil
	}

	_, err = tx.Exec(
		"INSERT INTO Metadata VALUES (?, ?, ?, ?, ?)",
		b.FilePath,
		stat.Size(),
		stat.ModTime().Unix(),
		first,
		time.Now().Unix(),
	)

	return err
}
