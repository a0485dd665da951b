package boxio

import (
	"errors"
	"io"
)

// Cursor wraps the single seekable byte source shared by the whole
// reader-based parse. Exactly one Cursor exists per parse; recursive
// calls receive it by pointer and read strictly sequentially, so no two
// frames ever reposition the stream concurrently.
//
// Read failures are classified here: a clean EOF mid-field becomes a
// truncation issue, anything else is a source failure carrying the
// underlying error as Cause.
type Cursor struct {
	r   io.ReadSeeker
	pos int64
}

// NewCursor positions a Cursor at the source's current offset.
func NewCursor(r io.ReadSeeker) (*Cursor, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, sourceFailure(0, err)
	}
	return &Cursor{r: r, pos: pos}, nil
}

// Pos returns the current byte offset within the source.
func (c *Cursor) Pos() int64 { return c.pos }

// ReadExact fills b from the source or fails with a truncation issue
// (clean EOF) or a source failure (any other read error).
func (c *Cursor) ReadExact(b []byte) error {
	n, err := io.ReadFull(c.r, b)
	c.pos += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return issuef(CodeTruncated, c.pos, "unexpected end of stream")
		}
		return sourceFailure(c.pos, err)
	}
	return nil
}

// ReadHeader reads a box header at the current position. The returned
// slice holds the raw header bytes as they appeared on the wire.
func (c *Cursor) ReadHeader() (Header, []byte, error) {
	offset := c.pos
	b := make([]byte, compactHeaderLen, extendedHeaderLen)

	if err := c.ReadExact(b); err != nil {
		return Header{}, nil, err
	}
	// Read the extended size only when the compact field demands it.
	if b[0] == 0 && b[1] == 0 && b[2] == 0 && b[3] == 1 {
		b = b[:extendedHeaderLen]
		if err := c.ReadExact(b[compactHeaderLen:]); err != nil {
			return Header{}, nil, err
		}
	}
	h, err := DecodeHeader(b, offset)
	if err != nil {
		return Header{}, nil, err
	}
	return h, b, nil
}

// End returns the offset of the end of the source, leaving the cursor
// position unchanged. Used to resolve size==0 ("to end of scope") boxes
// at the outermost level.
func (c *Cursor) End() (int64, error) {
	end, err := c.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, sourceFailure(c.pos, err)
	}
	if _, err := c.r.Seek(c.pos, io.SeekStart); err != nil {
		return 0, sourceFailure(c.pos, err)
	}
	return end, nil
}

// SeekTo repositions the cursor at an absolute offset.
func (c *Cursor) SeekTo(offset int64) error {
	if _, err := c.r.Seek(offset, io.SeekStart); err != nil {
		return sourceFailure(c.pos, err)
	}
	c.pos = offset
	return nil
}

func sourceFailure(offset int64, cause error) error {
	return IssueError{SimpleIssue{
		Code:    CodeSourceFailure,
		Message: "read from source failed: " + cause.Error(),
		Offset:  offset,
		Cause:   cause,
	}}
}
