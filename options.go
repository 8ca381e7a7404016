package bed

import "cloud.google.com/go/storage"

type options struct {
	offset   int
	count    int
	hasCount bool
	mode     MajorMode
	hasMode  bool
	famPath  string
	bimPath  string
	client   *storage.Client
}

// Option configures Open behavior.
type Option func(*options)

// WithRowOffset skips the first n addressable rows (samples in
// individual-major files, SNPs in SNP-major files). The skipped rows are
// invisible to the reader: row 0 of the opened file is physical row n.
func WithRowOffset(n int) Option {
	return func(o *options) {
		o.offset = n
	}
}

// WithRowCount limits the reader to n addressable rows. Without it, the
// reader exposes every row after the offset, as counted from the companion
// files.
func WithRowCount(n int) Option {
	return func(o *options) {
		o.count = n
		o.hasCount = true
	}
}

// WithMode declares the major mode the caller expects. The mode is always
// inferred from the file itself; this is a sanity check, and Open fails with
// ErrModeMismatch if the file disagrees.
func WithMode(m MajorMode) Option {
	return func(o *options) {
		o.mode = m
		o.hasMode = true
	}
}

// WithFAMPath overrides the .fam companion path, which otherwise defaults to
// a sibling of the .bed file.
func WithFAMPath(path string) Option {
	return func(o *options) {
		o.famPath = path
	}
}

// WithBIMPath overrides the .bim companion path, which otherwise defaults to
// a sibling of the .bed file.
func WithBIMPath(path string) Option {
	return func(o *options) {
		o.bimPath = path
	}
}

// WithGoogleStorageClient permits the .bed file and its companions to be
// addressed with gs:// paths, read via the provided client.
func WithGoogleStorageClient(client *storage.Client) Option {
	return func(o *options) {
		o.client = client
	}
}
