// Package errs defines the sentinel error kinds propagated across tplog's
// encode, decode, index, and query paths.
//
// Every error surfaced by the core packages wraps one of these sentinels
// with fmt.Errorf("%w: ...", errs.ErrX, ...), so callers can classify
// failures with errors.Is regardless of which package produced them.
package errs

import "errors"

var (
	// ErrBadArgument marks invalid caller input (bad CLI flags, invalid
	// encoder options).
	ErrBadArgument = errors.New("bad argument")

	// ErrIO marks an underlying filesystem or stream failure. The core
	// packages never perform I/O themselves; this sentinel exists for the
	// CLI boundary that does.
	ErrIO = errors.New("io error")

	// ErrMalformed marks a structurally invalid encoding: a bad magic
	// number, an unsupported version, a malformed varint/bstr, or a
	// malformed template CSV.
	ErrMalformed = errors.New("malformed data")

	// ErrTruncated marks a byte slice that ends before the structure it
	// encodes is complete.
	ErrTruncated = errors.New("truncated data")

	// ErrCorrupt marks an invariant violation discovered at decode time:
	// an event ID with no template entry, a row-count/mask mismatch, an
	// offset table that doesn't tile the blob.
	ErrCorrupt = errors.New("corrupt blob")

	// ErrCompressor marks a failure inside a compression or decompression
	// codec that is not itself a training failure.
	ErrCompressor = errors.New("compressor error")

	// ErrTrainingFailed marks a recoverable shared-dictionary training
	// failure. Callers that see this should fall back to plain
	// compression rather than aborting the encode.
	ErrTrainingFailed = errors.New("dictionary training failed")
)
