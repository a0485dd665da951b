package builder

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/jumbf"
	"github.com/reoring/jumbf/internal/boxio"
)

// SuperBoxBuilder assembles a "jumb" superbox: the description box is
// derived from the configured identity fields, followed by the child
// boxes in the order they were added.
type SuperBoxBuilder struct {
	uuid        [16]byte
	requestable bool
	label       *string
	id          *uint32
	hash        *[32]byte
	private     []byte
	hasPrivate  bool
	children    []Box
}

// SuperBox starts a superbox whose description carries the given
// content-type UUID.
func SuperBox(uuid [16]byte) *SuperBoxBuilder {
	return &SuperBoxBuilder{uuid: uuid}
}

// Requestable marks the superbox as addressable by label.
func (b *SuperBoxBuilder) Requestable() *SuperBoxBuilder {
	b.requestable = true
	return b
}

// Label sets the description label. The label must not contain a NUL
// byte; writing fails if it does.
func (b *SuperBoxBuilder) Label(s string) *SuperBoxBuilder {
	b.label = &s
	return b
}

// ID sets the optional numeric id field.
func (b *SuperBoxBuilder) ID(v uint32) *SuperBoxBuilder {
	b.id = &v
	return b
}

// Hash sets the optional SHA-256 hash field.
func (b *SuperBoxBuilder) Hash(h [32]byte) *SuperBoxBuilder {
	b.hash = &h
	return b
}

// Private sets the optional private field, appended verbatim after the
// other description fields.
func (b *SuperBoxBuilder) Private(p []byte) *SuperBoxBuilder {
	b.private = p
	b.hasPrivate = true
	return b
}

// Child appends a child box. Nested superboxes are added the same way.
func (b *SuperBoxBuilder) Child(c Box) *SuperBoxBuilder {
	b.children = append(b.children, c)
	return b
}

func (b *SuperBoxBuilder) Type() jumbf.BoxType { return jumbf.TypeSuperBox }

// descriptionPayload assembles the "jumd" payload: UUID, toggles, then
// the toggled fields in wire order.
func (b *SuperBoxBuilder) descriptionPayload() []byte {
	var toggles byte
	if b.requestable {
		toggles |= boxio.ToggleRequestable
	}
	if b.label != nil {
		toggles |= boxio.ToggleLabel
	}
	if b.id != nil {
		toggles |= boxio.ToggleID
	}
	if b.hash != nil {
		toggles |= boxio.ToggleHash
	}
	if b.hasPrivate {
		toggles |= boxio.TogglePrivate
	}

	p := make([]byte, 0, b.descriptionSize())
	p = append(p, b.uuid[:]...)
	p = append(p, toggles)
	if b.label != nil {
		p = append(p, *b.label...)
		p = append(p, 0)
	}
	if b.id != nil {
		p = binary.BigEndian.AppendUint32(p, *b.id)
	}
	if b.hash != nil {
		p = append(p, b.hash[:]...)
	}
	if b.hasPrivate {
		p = append(p, b.private...)
	}
	return p
}

func (b *SuperBoxBuilder) descriptionSize() uint64 {
	n := uint64(17)
	if b.label != nil {
		n += uint64(len(*b.label)) + 1
	}
	if b.id != nil {
		n += 4
	}
	if b.hash != nil {
		n += 32
	}
	if b.hasPrivate {
		n += uint64(len(b.private))
	}
	return n
}

func (b *SuperBoxBuilder) PayloadSize() uint64 {
	desc := b.descriptionSize()
	total := uint64(boxio.HeaderLenFor(desc)) + desc
	for _, c := range b.children {
		total += BoxSize(c)
	}
	return total
}

func (b *SuperBoxBuilder) WritePayload(w *Writer) error {
	if b.label != nil && strings.IndexByte(*b.label, 0) >= 0 {
		return fmt.Errorf("label %q contains a NUL byte", *b.label)
	}
	p := b.descriptionPayload()
	if err := boxio.WriteHeader(w, jumbf.TypeDescriptionBox, uint64(len(p))); err != nil {
		return err
	}
	if _, err := w.Write(p); err != nil {
		return err
	}
	for _, c := range b.children {
		if err := WriteBox(w, c); err != nil {
			return err
		}
	}
	return nil
}

// WriteJumbf serializes the whole tree to w in one pass.
func (b *SuperBoxBuilder) WriteJumbf(w io.Writer) error {
	return WriteBox(NewWriter(w), b)
}
