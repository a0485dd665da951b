package jumbf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/reoring/jumbf/internal/boxio"
)

// Toggle bits in the description box payload.
const (
	toggleRequestable = boxio.ToggleRequestable
	toggleLabel       = boxio.ToggleLabel
	toggleID          = boxio.ToggleID
	toggleHash        = boxio.ToggleHash
	togglePrivate     = boxio.TogglePrivate
)

// DescriptionBox is the "jumd" box that opens every superbox payload.
// It carries the content-type UUID and the optional identity fields
// gated by the toggles byte.
type DescriptionBox struct {
	// UUID identifies the content type of the enclosing superbox.
	UUID [16]byte

	// Requestable marks the enclosing superbox as addressable by
	// label from outside the file.
	Requestable bool

	// Label, ID, Hash and Private are present only when the
	// corresponding toggle bit was set.
	Label   *Label
	ID      *uint32
	Hash    *[32]byte
	Private *InputData

	// Original is the full description box, header included.
	Original InputData
}

// DescriptionBoxFromSlice parses one description box from the front of
// b without copying and returns the remaining bytes after it.
func DescriptionBoxFromSlice(b []byte) (*DescriptionBox, []byte, error) {
	box, rest, err := dataBoxFromSlice(b, 0, "/", boxio.CodeTruncated, false)
	if err != nil {
		return nil, nil, err
	}
	desc, derr := descriptionFromDataBox(box, false, "/")
	if derr != nil {
		return nil, nil, derr
	}
	return desc, rest, nil
}

// DescriptionBoxFromDataBox reinterprets an already-parsed box as a
// description box. The box must have type "jumd".
func DescriptionBoxFromDataBox(box *DataBox) (*DescriptionBox, error) {
	return descriptionFromDataBox(box, false, "/")
}

// descriptionFromDataBox decodes the description payload of box. owned
// controls whether the private field aliases box.Data or is marked as
// independently held; it mirrors the provenance of box itself.
func descriptionFromDataBox(box *DataBox, owned bool, path string) (*DescriptionBox, error) {
	if box.Type != TypeDescriptionBox {
		return nil, singleIssue(CodeStructuralMismatch, path, box.Original.Offset(),
			fmt.Sprintf("expected box type %q, found %q", TypeDescriptionBox, box.Type))
	}
	desc, err := descriptionFromPayload(box.Data, owned, path)
	if err != nil {
		return nil, err
	}
	desc.Original = box.Original
	return desc, nil
}

// descriptionFromPayload decodes the description box payload: a
// 16-byte UUID, a toggles byte, then the optional fields in toggle
// order. Everything after the last toggled field belongs to the
// private field when its toggle is set.
func descriptionFromPayload(data InputData, owned bool, path string) (*DescriptionBox, error) {
	b := data.Bytes()
	base := data.Offset()
	if len(b) < 17 {
		return nil, singleIssue(CodeTruncated, path, base,
			fmt.Sprintf("description payload needs at least 17 bytes, found %d", len(b)))
	}
	desc := &DescriptionBox{}
	copy(desc.UUID[:], b[:16])
	toggles := b[16]
	pos := 17

	desc.Requestable = toggles&toggleRequestable != 0

	if toggles&toggleLabel != 0 {
		nul := bytes.IndexByte(b[pos:], 0)
		if nul < 0 {
			return nil, singleIssue(CodeTruncated, path, base+int64(pos),
				"label is not NUL-terminated within the payload")
		}
		raw := b[pos : pos+nul]
		if !utf8.Valid(raw) {
			return nil, singleIssue(CodeInvalidEncoding, path, base+int64(pos),
				"label is not valid UTF-8")
		}
		label := BorrowedLabel(string(raw))
		if owned {
			label = label.ToOwned()
		}
		desc.Label = &label
		pos += nul + 1
	}

	if toggles&toggleID != 0 {
		if len(b)-pos < 4 {
			return nil, singleIssue(CodeTruncated, path, base+int64(pos),
				"id field needs 4 bytes")
		}
		id := binary.BigEndian.Uint32(b[pos:])
		desc.ID = &id
		pos += 4
	}

	if toggles&toggleHash != 0 {
		if len(b)-pos < 32 {
			return nil, singleIssue(CodeTruncated, path, base+int64(pos),
				"hash field needs 32 bytes")
		}
		var hash [32]byte
		copy(hash[:], b[pos:pos+32])
		desc.Hash = &hash
		pos += 32
	}

	if toggles&togglePrivate != 0 {
		var priv InputData
		if owned {
			priv = ownedData(b[pos:], base+int64(pos))
		} else {
			priv = BorrowedData(b[pos:], base+int64(pos))
		}
		desc.Private = &priv
	}

	return desc, nil
}

func (d *DescriptionBox) String() string {
	if d.Label != nil {
		return fmt.Sprintf("DescriptionBox(%x, label=%q)", d.UUID, d.Label.String())
	}
	return fmt.Sprintf("DescriptionBox(%x)", d.UUID)
}
