package jumbf

import "bytes"

// InputData is a run of payload bytes together with its provenance: a
// borrowed InputData aliases the caller's buffer (zero-copy slice
// parsing), an owned InputData holds its own copy (streaming parsing,
// or an explicit ToOwned). The distinction never changes observable
// bytes, only aliasing and lifetime.
type InputData struct {
	data   []byte
	owned  bool
	offset int64
}

// BorrowedData wraps b without copying. The InputData remains valid
// only as long as the caller keeps b alive and unmodified. offset is
// the absolute position of b[0] in the original input.
func BorrowedData(b []byte, offset int64) InputData {
	return InputData{data: b, offset: offset}
}

// OwnedData copies b into a fresh buffer.
func OwnedData(b []byte, offset int64) InputData {
	return InputData{data: append([]byte(nil), b...), owned: true, offset: offset}
}

// ownedData wraps b without copying but marks it owned. Callers must
// not retain b. Used by the streaming parser, which allocates per-box
// buffers that nothing else references.
func ownedData(b []byte, offset int64) InputData {
	return InputData{data: b, owned: true, offset: offset}
}

// Bytes returns the underlying bytes. Callers must not mutate the
// result of a borrowed InputData.
func (d InputData) Bytes() []byte { return d.data }

// Len reports the number of bytes.
func (d InputData) Len() int { return len(d.data) }

// IsEmpty reports whether the data is zero-length.
func (d InputData) IsEmpty() bool { return len(d.data) == 0 }

// IsBorrowed reports whether the data aliases the original input
// buffer.
func (d InputData) IsBorrowed() bool { return !d.owned }

// IsOwned reports whether the data is independently held.
func (d InputData) IsOwned() bool { return d.owned }

// Offset is the absolute position of the first byte within the
// original input. For empty data it is the position the bytes would
// occupy.
func (d InputData) Offset() int64 { return d.offset }

// ToOwned returns an owned copy. An already-owned InputData is
// returned as is.
func (d InputData) ToOwned() InputData {
	if d.owned {
		return d
	}
	return OwnedData(d.data, d.offset)
}

// Equal compares byte content only; provenance and offset are ignored.
func (d InputData) Equal(other InputData) bool {
	return bytes.Equal(d.data, other.data)
}

// Label is an optional NUL-terminated UTF-8 label from a description
// box. Strings are immutable in Go, so both variants carry the
// materialized value; the borrowed/owned flag records provenance the
// same way InputData does.
type Label struct {
	value string
	owned bool
}

// BorrowedLabel records s as decoded in place from the input.
func BorrowedLabel(s string) Label { return Label{value: s} }

// OwnedLabel records s as independently held.
func OwnedLabel(s string) Label { return Label{value: s, owned: true} }

// String returns the label text.
func (l Label) String() string { return l.value }

// IsBorrowed reports whether the label was decoded in place.
func (l Label) IsBorrowed() bool { return !l.owned }

// IsOwned reports whether the label is independently held.
func (l Label) IsOwned() bool { return l.owned }

// ToOwned returns an owned variant of the label.
func (l Label) ToOwned() Label { return Label{value: l.value, owned: true} }

// Equal compares label text only.
func (l Label) Equal(other Label) bool { return l.value == other.value }
