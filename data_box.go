package jumbf

import (
	"fmt"

	"github.com/reoring/jumbf/internal/boxio"
)

// DataBox is a single parsed box: its type, its payload, and the
// original bytes including the header. Any box type can be represented
// as a DataBox; superboxes and description boxes are refinements
// layered on top of it.
type DataBox struct {
	// Type is the 4-byte box type.
	Type BoxType

	// Data is the box payload, excluding the header.
	Data InputData

	// Original is the full box as it appeared on the wire, header
	// included.
	Original InputData
}

// DataBoxFromSlice parses one box from the front of b without copying.
// It returns the box and the remaining bytes after it. A size field of
// zero extends the payload to the end of b.
func DataBoxFromSlice(b []byte) (*DataBox, []byte, error) {
	box, rest, err := dataBoxFromSlice(b, 0, "/", boxio.CodeTruncated, false)
	if err != nil {
		return nil, nil, err
	}
	return box, rest, nil
}

// dataBoxFromSlice parses one box from b, where b[0] sits at absolute
// offset base and the box is reported at path. overrunCode is the
// issue code used when the declared size exceeds the bytes on hand:
// truncation at the outermost scope, a bounds violation inside a
// parent box. owned marks the produced InputData as independently
// held; the reader-based parsers set it because b is a buffer nothing
// else references.
func dataBoxFromSlice(b []byte, base int64, path, overrunCode string, owned bool) (*DataBox, []byte, error) {
	h, err := boxio.DecodeHeader(b, base)
	if err != nil {
		return nil, nil, toIssues(err, path)
	}
	total := h.TotalLen()
	if h.ToEnd {
		total = uint64(len(b))
	}
	if total > uint64(len(b)) {
		return nil, nil, singleIssue(overrunCode, path, base,
			fmt.Sprintf("box %q declares %d bytes but only %d remain", h.Type, total, len(b)))
	}
	wrap := BorrowedData
	if owned {
		wrap = ownedData
	}
	original := b[:total]
	return &DataBox{
		Type:     h.Type,
		Data:     wrap(original[h.HeaderLen:], base+int64(h.HeaderLen)),
		Original: wrap(original, base),
	}, b[total:], nil
}

// OffsetWithinSuperBox reports the byte offset of this box's first
// header byte relative to the start of sb, and whether the box in fact
// lies inside sb's original bytes. Both boxes must come from the same
// parse; the check verifies that d's bytes alias sb's buffer at the
// expected position, so boxes from unrelated inputs never match.
func (d *DataBox) OffsetWithinSuperBox(sb *SuperBox) (int64, bool) {
	start := sb.Original.Offset()
	end := start + int64(sb.Original.Len())
	at := d.Original.Offset()
	if at < start || at+int64(d.Original.Len()) > end {
		return 0, false
	}
	rel := at - start
	sbb := sb.Original.Bytes()
	db := d.Original.Bytes()
	if len(db) == 0 || &sbb[rel] != &db[0] {
		return 0, false
	}
	return rel, true
}

func (d *DataBox) String() string {
	return fmt.Sprintf("DataBox(%s, %d bytes)", d.Type, d.Data.Len())
}
