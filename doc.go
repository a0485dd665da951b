// Package jumbf parses and builds JUMBF (ISO/IEC 19566-5) box trees.
//
// The package provides:
//
//   - A recursive box model (SuperBox / DescriptionBox / DataBox) with
//     explicit borrowed-vs-owned payload tracking via InputData and Label
//   - Zero-copy slice parsing (SuperBoxFromSlice and friends) returning
//     the parsed box plus the unconsumed remainder
//   - Depth-limited streaming parsing over a seekable source
//     (SuperBoxFromReader) producing fully self-contained owned trees
//   - A stable error model via Issues (box path, code, byte offset)
//
// Only the superbox ("jumb") and description box ("jumd") semantics are
// interpreted natively; every other box type is carried as an opaque
// DataBox whose meaning is left to the caller. The construction and
// serialization API lives under builder/, and helpers for the standard
// JSON and CBOR content types under payload/.
//
// Typical usage:
//
//	sb, rest, err := jumbf.SuperBoxFromSlice(data)
//	sb, err := jumbf.SuperBoxFromReader(f, jumbf.ParseOpt{MaxDepth: 16})
//
//	out := builder.SuperBox(uuid).
//		Requestable().
//		Label("example.manifest").
//		Child(builder.DataBox(payload.TypeJSON, doc))
//	err := out.WriteJumbf(w)
package jumbf
