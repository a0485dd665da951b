// Package payload provides the standard JSON and CBOR content types
// carried inside JUMBF superboxes: the well-known content-type UUIDs,
// codec helpers, and builder shortcuts that pair a marshalled value
// with the right box type and UUID.
package payload

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"

	"github.com/reoring/jumbf"
	"github.com/reoring/jumbf/builder"
)

// Box types of the standard content payloads.
var (
	TypeJSON = jumbf.NewBoxType("json")
	TypeCBOR = jumbf.NewBoxType("cbor")
)

// Content-type UUIDs from ISO/IEC 19566-5. The first four bytes spell
// the box type; the suffix is the ISO base-media UUID suffix.
var (
	UUIDJSON = [16]byte{0x6a, 0x73, 0x6f, 0x6e, 0x00, 0x11, 0x00, 0x10, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
	UUIDCBOR = [16]byte{0x63, 0x62, 0x6f, 0x72, 0x00, 0x11, 0x00, 0x10, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
)

// CBOR is encoded deterministically so the same value always produces
// the same bytes, which matters when payloads are hashed.
var (
	cborEnc = mustEncMode(cbor.CoreDetEncOptions())
	cborDec = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		MaxNestedLevels:   64,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// EncodeJSON marshals v to JSON.
func EncodeJSON(v any) ([]byte, error) { return json.Marshal(v) }

// DecodeJSON unmarshals JSON data into v.
func DecodeJSON(data []byte, v any) error { return json.Unmarshal(data, v) }

// EncodeCBOR marshals v to deterministic CBOR.
func EncodeCBOR(v any) ([]byte, error) { return cborEnc.Marshal(v) }

// DecodeCBOR unmarshals CBOR data into v.
func DecodeCBOR(data []byte, v any) error { return cborDec.Unmarshal(data, v) }

// JSONSuperBox marshals v and wraps it in a requestable superbox
// carrying the JSON content-type UUID, a single "json" data box, and
// the given label.
func JSONSuperBox(label string, v any) (*builder.SuperBoxBuilder, error) {
	data, err := EncodeJSON(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json payload: %w", err)
	}
	return builder.SuperBox(UUIDJSON).
		Requestable().
		Label(label).
		Child(builder.DataBox(TypeJSON, data)), nil
}

// CBORSuperBox is JSONSuperBox for deterministic CBOR content.
func CBORSuperBox(label string, v any) (*builder.SuperBoxBuilder, error) {
	data, err := EncodeCBOR(v)
	if err != nil {
		return nil, fmt.Errorf("marshal cbor payload: %w", err)
	}
	return builder.SuperBox(UUIDCBOR).
		Requestable().
		Label(label).
		Child(builder.DataBox(TypeCBOR, data)), nil
}

// Unmarshal decodes the content of a parsed superbox into v, choosing
// the codec by the description UUID. The first child must be a data
// box of the matching type.
func Unmarshal(sb *jumbf.SuperBox, v any) error {
	var (
		want   jumbf.BoxType
		decode func([]byte, any) error
	)
	switch sb.Description.UUID {
	case UUIDJSON:
		want, decode = TypeJSON, DecodeJSON
	case UUIDCBOR:
		want, decode = TypeCBOR, DecodeCBOR
	default:
		return fmt.Errorf("superbox %q has unsupported content type %x", sb.Label(), sb.Description.UUID)
	}
	box := sb.DataBox()
	if box == nil {
		return fmt.Errorf("superbox %q has no content data box", sb.Label())
	}
	if box.Type != want {
		return fmt.Errorf("superbox %q: expected %q content box, found %q", sb.Label(), want, box.Type)
	}
	return decode(box.Data.Bytes(), v)
}
