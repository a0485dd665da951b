package jumbf

import "github.com/reoring/jumbf/internal/boxio"

// BoxType is a 4-byte box type identifier. Box types are conventionally
// printable ISO/IEC 646 characters (and are referred to by their string
// translation, e.g. "jumb"), but any byte values are legal. Equality is
// exact byte comparison.
//
// Type alias so the header codec under internal/boxio and the public
// model share one identifier type.
type BoxType = boxio.Type

// NewBoxType builds a BoxType from the first four bytes of s. Shorter
// strings are zero-padded.
func NewBoxType(s string) BoxType { return boxio.TypeOf(s) }

// Native box types.
var (
	// TypeSuperBox is "jumb": a description box followed by child boxes.
	TypeSuperBox = BoxType{'j', 'u', 'm', 'b'}

	// TypeDescriptionBox is "jumd": identity metadata for the enclosing
	// superbox.
	TypeDescriptionBox = BoxType{'j', 'u', 'm', 'd'}
)
