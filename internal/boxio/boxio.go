// Package boxio implements the low-level JUMBF box header codec and the
// shared stream cursor used by the reader-based parser. The public data
// model and parse entry points live in the root package; this package
// only deals in header arithmetic and classified read failures.
package boxio

import (
	"encoding/binary"
	"io"
	"math"
)

// Type is a 4-byte box type identifier. Box types are conventionally
// printable ISO/IEC 646 characters but any byte values are legal.
type Type [4]byte

func (t Type) String() string {
	return string(t[:])
}

// TypeOf builds a Type from the first four bytes of s. Shorter strings
// are zero-padded; this is a convenience for literals, not a validator.
func TypeOf(s string) Type {
	var t Type
	copy(t[:], s)
	return t
}

// Issue codes shared with the root package. The root package re-exports
// these as part of its public error model; boxio reports them through
// IssueError so no boxio error type leaks into the public API.
const (
	CodeTruncated      = "truncated"
	CodeStructural     = "structural_mismatch"
	CodeBounds         = "bounds_violation"
	CodeEncoding       = "invalid_encoding"
	CodeRecursionLimit = "recursion_limit"
	CodeSourceFailure  = "source_failure"
)

// SimpleIssue is a lightweight issue record produced below the public
// error model.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
	Cause   error
}

// IssueError carries a SimpleIssue across the internal/public boundary.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }
func (e IssueError) Unwrap() error { return e.SimpleIssue.Cause }

func issuef(code string, offset int64, msg string) error {
	return IssueError{SimpleIssue{Code: code, Message: msg, Offset: offset}}
}

// Header is a decoded box header.
type Header struct {
	// Type is the 4-byte box type.
	Type Type

	// HeaderLen is the number of header bytes consumed: 8 for the
	// compact form, 16 for the extended form.
	HeaderLen int

	// PayloadLen is the declared payload length in bytes. Undefined
	// when ToEnd is set.
	PayloadLen uint64

	// ToEnd reports the size==0 form: the payload runs to the end of
	// the enclosing scope.
	ToEnd bool

	// Offset is the byte offset of the header within the parse source.
	Offset int64
}

// TotalLen returns the total box length (header plus payload). Undefined
// when ToEnd is set.
func (h Header) TotalLen() uint64 {
	return uint64(h.HeaderLen) + h.PayloadLen
}

const (
	compactHeaderLen  = 8
	extendedHeaderLen = 16
)

// Toggle bits of the description box payload, in wire order of the
// fields they gate.
const (
	ToggleRequestable = 0x01
	ToggleLabel       = 0x02
	ToggleID          = 0x04
	ToggleHash        = 0x08
	TogglePrivate     = 0x10
)

// DecodeHeader decodes a box header from the front of b. offset is the
// position of b within the parse source and is used only for error
// reporting and Header.Offset.
//
// Compact sizes 2..7 declare a box smaller than its own header and are
// rejected as bounds violations. An extended size below 16 is rejected
// for the same reason.
func DecodeHeader(b []byte, offset int64) (Header, error) {
	if len(b) < compactHeaderLen {
		return Header{}, issuef(CodeTruncated, offset, "box header needs 8 bytes")
	}

	size := binary.BigEndian.Uint32(b[0:4])
	var t Type
	copy(t[:], b[4:8])

	switch {
	case size == 0:
		return Header{Type: t, HeaderLen: compactHeaderLen, ToEnd: true, Offset: offset}, nil

	case size == 1:
		if len(b) < extendedHeaderLen {
			return Header{}, issuef(CodeTruncated, offset, "extended box header needs 16 bytes")
		}
		xl := binary.BigEndian.Uint64(b[8:16])
		if xl < extendedHeaderLen {
			return Header{}, issuef(CodeBounds, offset, "extended box size smaller than header")
		}
		return Header{
			Type:       t,
			HeaderLen:  extendedHeaderLen,
			PayloadLen: xl - extendedHeaderLen,
			Offset:     offset,
		}, nil

	case size < compactHeaderLen:
		return Header{}, issuef(CodeBounds, offset, "box size smaller than header")

	default:
		return Header{
			Type:       t,
			HeaderLen:  compactHeaderLen,
			PayloadLen: uint64(size) - compactHeaderLen,
			Offset:     offset,
		}, nil
	}
}

// HeaderLenFor returns the header length the canonical encoding uses for
// the given payload length: compact unless the total box length would
// overflow the 32-bit size field.
func HeaderLenFor(payloadLen uint64) int {
	if payloadLen > math.MaxUint32-compactHeaderLen {
		return extendedHeaderLen
	}
	return compactHeaderLen
}

// AppendHeader appends the canonical header encoding for a box of the
// given type and payload length to dst.
func AppendHeader(dst []byte, t Type, payloadLen uint64) []byte {
	if HeaderLenFor(payloadLen) == extendedHeaderLen {
		var b [extendedHeaderLen]byte
		binary.BigEndian.PutUint32(b[0:4], 1)
		copy(b[4:8], t[:])
		binary.BigEndian.PutUint64(b[8:16], payloadLen+extendedHeaderLen)
		return append(dst, b[:]...)
	}
	var b [compactHeaderLen]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(payloadLen)+compactHeaderLen)
	copy(b[4:8], t[:])
	return append(dst, b[:]...)
}

// WriteHeader writes the canonical header encoding to w.
func WriteHeader(w io.Writer, t Type, payloadLen uint64) error {
	b := AppendHeader(make([]byte, 0, extendedHeaderLen), t, payloadLen)
	_, err := w.Write(b)
	return err
}
