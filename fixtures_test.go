package jumbf_test

import (
	"encoding/hex"
	"strings"
	"testing"
)

// mustHex decodes a whitespace-tolerant hex string.
func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return b
}

// simpleSuperBoxHex is a minimal requestable superbox labeled
// "test.superbox" with no children.
const simpleSuperBoxHex = `
	0000002f 6a756d62
		00000027 6a756d64
		00000000000000000000000000000000
		03
		746573742e7375706572626f7800`

// signatureSuperBoxHex wraps a single opaque "uuid" data box.
const signatureSuperBoxHex = `
	00000077 6a756d62
		00000028 6a756d64
		6332637300110010800000aa00389b71
		03
		633270612e7369676e617475726500
		00000047 75756964
		6332637300110010800000aa00389b71
		7468697320776f756c64206e6f726d616c6c79
		2062652062696e617279207369676e6174757265
		20646174612e2e2e`

// manifestHex is a four-level C2PA-shaped manifest: c2pa > cb.adobe_1 >
// {c2pa.assertions > c2pa.location.broad > json, c2pa.claim > json,
// c2pa.signature > uuid}.
const manifestHex = `
	00000267 6a756d62
		0000001e 6a756d64
		6332706100110010800000aa00389b71
		03
		6332706100
		00000241 6a756d62
			00000024 6a756d64
			63326d6100110010800000aa00389b71
			03
			63622e61646f62655f3100
			0000008f 6a756d62
				00000029 6a756d64
				6332617300110010800000aa00389b71
				03
				633270612e617373657274696f6e7300
				0000005e 6a756d62
					0000002d 6a756d64
					6a736f6e00110010800000aa00389b71
					03
					633270612e6c6f636174696f6e2e62726f616400
					00000029 6a736f6e
					7b20226c6f636174696f6e223a20224d61726761
					746520436974792c204e4a227d
			0000010f 6a756d62
				00000024 6a756d64
				6332636c00110010800000aa00389b71
				03
				633270612e636c61696d00
				000000e3 6a736f6e
				7b0a2020202020202020202020202272
				65636f7264657222203a202250686f74
				6f73686f70222c0a2020202020202020
				20202020227369676e61747572652220
				3a202273656c66236a756d62663d735f
				61646f62655f31222c0a202020202020
				20202020202022617373657274696f6e
				7322203a205b0a202020202020202020
				202020202020202273656c66236a756d
				62663d61735f61646f62655f312f6332
				70612e6c6f636174696f6e2e62726f61
				643f686c3d3736313432424436323336
				3346220a202020202020202020202020
				5d0a20202020202020207d
			00000077 6a756d62
				00000028 6a756d64
				6332637300110010800000aa00389b71
				03
				633270612e7369676e617475726500
				00000047 75756964
				6332637300110010800000aa00389b71
				7468697320776f756c64206e6f726d61
				6c6c792062652062696e617279207369
				676e617475726520646174612e2e2e`
