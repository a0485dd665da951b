package builder

import (
	"errors"
	"io"

	"github.com/reoring/jumbf"
)

var (
	// ErrPlaceholderNotWritten reports use of a placeholder offset
	// before the tree containing it has been serialized.
	ErrPlaceholderNotWritten = errors.New("builder: placeholder has not been written yet")

	// ErrPayloadTooLarge reports a replacement payload larger than the
	// reserved placeholder size.
	ErrPayloadTooLarge = errors.New("builder: replacement payload exceeds reserved size")
)

// PlaceholderBox reserves a fixed-size zero-filled payload whose real
// content is only known after the surrounding tree has been written,
// such as a hash computed over the finished file. Serializing the tree
// records where the payload landed; ReplacePayload then patches it in
// place.
type PlaceholderBox struct {
	typ     jumbf.BoxType
	size    uint64
	off     int64
	written bool
}

// Placeholder reserves size zero bytes in a box of type t.
func Placeholder(t jumbf.BoxType, size uint64) *PlaceholderBox {
	return &PlaceholderBox{typ: t, size: size}
}

func (p *PlaceholderBox) Type() jumbf.BoxType { return p.typ }

func (p *PlaceholderBox) PayloadSize() uint64 { return p.size }

func (p *PlaceholderBox) WritePayload(w *Writer) error {
	p.off = w.Offset()
	p.written = true

	var zeros [4096]byte
	remaining := p.size
	for remaining > 0 {
		n := uint64(len(zeros))
		if remaining < n {
			n = remaining
		}
		if _, err := w.Write(zeros[:n]); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// Offset returns the absolute position of the reserved payload within
// the output. It fails until the tree has been written.
func (p *PlaceholderBox) Offset() (int64, error) {
	if !p.written {
		return 0, ErrPlaceholderNotWritten
	}
	return p.off, nil
}

// ReplacePayload overwrites the reserved bytes in ws with data. data
// may be shorter than the reservation; the remainder keeps its zero
// fill. The write position of ws is left after the patched bytes.
func (p *PlaceholderBox) ReplacePayload(ws io.WriteSeeker, data []byte) error {
	if !p.written {
		return ErrPlaceholderNotWritten
	}
	if uint64(len(data)) > p.size {
		return ErrPayloadTooLarge
	}
	if _, err := ws.Seek(p.off, io.SeekStart); err != nil {
		return err
	}
	_, err := ws.Write(data)
	return err
}
