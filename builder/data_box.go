package builder

import (
	"fmt"
	"io"

	"github.com/reoring/jumbf"
)

// DataBoxBuilder serializes one box around an opaque payload.
type DataBoxBuilder struct {
	typ  jumbf.BoxType
	data []byte
	r    io.Reader
	size uint64
}

// DataBox builds a box of type t around an in-memory payload. The
// builder aliases data; do not mutate it before the box is written.
func DataBox(t jumbf.BoxType, data []byte) *DataBoxBuilder {
	return &DataBoxBuilder{typ: t, data: data}
}

// DataBoxFromReader builds a box whose payload is streamed from r at
// write time. size must equal the number of bytes r will produce;
// writing fails if r returns fewer.
func DataBoxFromReader(t jumbf.BoxType, r io.Reader, size uint64) *DataBoxBuilder {
	return &DataBoxBuilder{typ: t, r: r, size: size}
}

func (b *DataBoxBuilder) Type() jumbf.BoxType { return b.typ }

func (b *DataBoxBuilder) PayloadSize() uint64 {
	if b.r != nil {
		return b.size
	}
	return uint64(len(b.data))
}

func (b *DataBoxBuilder) WritePayload(w *Writer) error {
	if b.r != nil {
		n, err := io.CopyN(w, b.r, int64(b.size))
		if err != nil {
			return fmt.Errorf("payload reader for %q: produced %d of %d bytes: %w",
				b.typ, n, b.size, err)
		}
		return nil
	}
	_, err := w.Write(b.data)
	return err
}
