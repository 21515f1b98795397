// Package errs defines the sentinel errors returned throughout mseedpack.
//
// Callers that need the legacy qlib2 numeric contract (stable, negative
// integer error codes) can recover it with Code.
package errs

import "errors"

var (
	// ErrInvalidArgument covers bad call arguments: n <= 0, a trace whose
	// data type does not match the entry point, or samples of the wrong
	// slice type. An invalid blksize and an unknown data type have their
	// own sentinels below. Maps to MS_ERROR.
	ErrInvalidArgument = errors.New("mseedpack: invalid argument")

	// ErrInvalidBlockSize reports a blksize that is not a power of two >= 128.
	ErrInvalidBlockSize = errors.New("mseedpack: blksize must be a power of two >= 128")

	// ErrUnimplementedFormat reports a trace data type the driver does not
	// know how to pack.
	ErrUnimplementedFormat = errors.New("mseedpack: unimplemented data format")

	// ErrHeaderInit reports a failure while materializing the fixed SDR
	// header or blockette chain for a record.
	ErrHeaderInit = errors.New("mseedpack: failed to initialize record header")

	// ErrCompress reports a Steim difference that cannot be represented by
	// any bucket (a saturation artifact surfacing out of the encoder).
	// Maps to MS_COMPRESS.
	ErrCompress = errors.New("mseedpack: value cannot be Steim-compressed")

	// ErrAlloc reports a failed allocation while growing a library-owned
	// output buffer. Maps to MALLOC_ERROR.
	ErrAlloc = errors.New("mseedpack: failed to allocate output buffer")

	// ErrSampleOverflow reports a sample value that does not fit in the
	// destination width of a fixed-integer encoder (e.g. INT_16).
	ErrSampleOverflow = errors.New("mseedpack: sample does not fit in destination width")
)

// Code maps err to the stable, negative qlib2-style error code it
// corresponds to, or 0 if err is nil.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrCompress):
		return -2
	case errors.Is(err, ErrAlloc):
		return -3
	default:
		// ErrInvalidArgument, ErrInvalidBlockSize, ErrUnimplementedFormat,
		// ErrHeaderInit, ErrSampleOverflow, and any wrapped variant all
		// report as the generic MS_ERROR code.
		return -1
	}
}
