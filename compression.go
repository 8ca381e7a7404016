package bed

import (
	"bufio"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/genomisc"
	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// openCompanion opens a FAM or BIM companion file for reading, from local
// disk or from Google Storage when a client is provided. Companions ending
// in .gz or .zst (the compressed text that plink2 distributes) are
// decompressed transparently.
func openCompanion(path string, client *storage.Client) (io.ReadCloser, error) {
	f, err := genomisc.MaybeOpenSeekerFromGoogleStorage(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &companionReader{Reader: gz, closers: []io.Closer{gz, f}}, nil

	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		rc := zr.IOReadCloser()
		return &companionReader{Reader: rc, closers: []io.Closer{rc, f}}, nil
	}

	return f, nil
}

// companionReader couples a decompressing reader with the file beneath it
// so that one Close releases both.
type companionReader struct {
	io.Reader
	closers []io.Closer
}

func (c *companionReader) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// countLines reports the number of newline-delimited records in r. A final
// record without a trailing newline still counts.
func countLines(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
	}
	if err := scanner.Err(); err != nil {
		return 0, pfx.Err(err)
	}

	return n, nil
}
