// Package builder assembles JUMBF box trees and serializes them.
//
// Headers are always emitted in canonical form: the compact 32-bit
// size field unless the total box length would overflow it, in which
// case the 64-bit extended form is used. A builder never emits a
// size==0 ("to end of scope") header.
//
// A tree is assembled with the fluent SuperBox builder and written in
// one pass:
//
//	sb := builder.SuperBox(uuid).
//		Requestable().
//		Label("acme").
//		Child(builder.DataBox(jumbf.NewBoxType("json"), payload))
//	err := sb.WriteJumbf(f)
package builder

import (
	"io"

	"github.com/reoring/jumbf"
	"github.com/reoring/jumbf/internal/boxio"
)

// Box is anything that serializes as a single JUMBF box. PayloadSize
// must report exactly the number of bytes WritePayload will produce.
type Box interface {
	Type() jumbf.BoxType
	PayloadSize() uint64
	WritePayload(w *Writer) error
}

// Writer counts bytes as they are written so boxes that need their own
// absolute position, such as placeholders, can record it.
type Writer struct {
	w   io.Writer
	off int64
}

// NewWriter wraps w. When w is also an io.Seeker the counter starts at
// w's current position, making recorded offsets absolute in the file.
func NewWriter(w io.Writer) *Writer {
	nw := &Writer{w: w}
	if s, ok := w.(io.Seeker); ok {
		if pos, err := s.Seek(0, io.SeekCurrent); err == nil {
			nw.off = pos
		}
	}
	return nw
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.off += int64(n)
	return n, err
}

// Offset returns the current write position.
func (w *Writer) Offset() int64 { return w.off }

// BoxSize returns the total serialized length of b, header included.
func BoxSize(b Box) uint64 {
	p := b.PayloadSize()
	return uint64(boxio.HeaderLenFor(p)) + p
}

// WriteBox serializes b to w with a canonical header.
func WriteBox(w *Writer, b Box) error {
	if err := boxio.WriteHeader(w, b.Type(), b.PayloadSize()); err != nil {
		return err
	}
	return b.WritePayload(w)
}
