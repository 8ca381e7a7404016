package bed

import "errors"

var (
	// ErrInvalidHeader is returned when the 3-byte .bed header does not
	// carry the expected magic number or a recognized mode byte.
	ErrInvalidHeader = errors.New("bed: invalid header")

	// ErrModeMismatch is returned when a caller-supplied major mode
	// disagrees with the mode byte actually present in the file.
	ErrModeMismatch = errors.New("bed: major mode mismatch")

	// ErrIndexOutOfRange is returned when a row index falls outside
	// [0, Len()).
	ErrIndexOutOfRange = errors.New("bed: row index out of range")

	// ErrUnexpectedEOF is returned when the file ends before a full row
	// chunk could be read, which indicates truncation or companion
	// metadata that disagrees with the file's true dimensions.
	ErrUnexpectedEOF = errors.New("bed: unexpected end of file")

	// ErrClosedReader is returned by any read performed after Close.
	ErrClosedReader = errors.New("bed: reader is closed")
)
