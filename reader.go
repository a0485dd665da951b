package jumbf

import (
	"fmt"
	"io"

	"github.com/reoring/jumbf/internal/boxio"
)

// SuperBoxFromReader parses one superbox from r, starting at r's
// current position. The declared box size is validated against the
// actual end of the source before any payload allocation, so a hostile
// size field can never force an allocation larger than the input. The
// returned tree owns all of its bytes; r may be discarded afterwards.
//
// Nesting depth is capped (DefaultMaxDepth unless overridden via
// ParseOpt); exceeding the cap fails the parse with CodeRecursionLimit.
func SuperBoxFromReader(r io.ReadSeeker, opts ...ParseOpt) (*SuperBox, error) {
	p := resolveOpts(opts)
	box, err := readBox(r)
	if err != nil {
		return nil, err
	}
	return superBoxFromDataBox(box, "/", 1, sliceConfig{owned: true, maxDepth: p.maxDepth})
}

// DataBoxFromReader parses one box from r, starting at r's current
// position, without interpreting the payload. The returned box owns
// its bytes.
func DataBoxFromReader(r io.ReadSeeker) (*DataBox, error) {
	return readBox(r)
}

// readBox reads a single complete box from r into one owned buffer.
// The raw header bytes are preserved as read, so a non-canonical
// extended header round-trips byte for byte through Original.
func readBox(r io.ReadSeeker) (*DataBox, error) {
	cur, err := boxio.NewCursor(r)
	if err != nil {
		return nil, toIssues(err, "/")
	}
	h, raw, err := cur.ReadHeader()
	if err != nil {
		return nil, toIssues(err, "/")
	}
	end, err := cur.End()
	if err != nil {
		return nil, toIssues(err, "/")
	}

	avail := uint64(end - h.Offset)
	total := h.TotalLen()
	if h.ToEnd {
		total = avail
	}
	if total > avail {
		return nil, singleIssue(CodeTruncated, "/", h.Offset,
			fmt.Sprintf("box %q declares %d bytes but only %d remain", h.Type, total, avail))
	}

	buf := make([]byte, total)
	copy(buf, raw)
	if err := cur.ReadExact(buf[len(raw):]); err != nil {
		return nil, toIssues(err, "/")
	}
	return &DataBox{
		Type:     h.Type,
		Data:     ownedData(buf[h.HeaderLen:], h.Offset+int64(h.HeaderLen)),
		Original: ownedData(buf, h.Offset),
	}, nil
}
