package jumbf_test

import (
	"bytes"
	"testing"

	"github.com/reoring/jumbf"
)

func TestSuperBoxFromSliceSimple(t *testing.T) {
	data := mustHex(t, simpleSuperBoxHex)

	sb, rest, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder, got %d bytes", len(rest))
	}
	if got := sb.Label(); got != "test.superbox" {
		t.Fatalf("label = %q, want %q", got, "test.superbox")
	}
	if !sb.Description.Requestable {
		t.Fatalf("expected requestable")
	}
	if sb.Description.UUID != ([16]byte{}) {
		t.Fatalf("uuid = %x, want all zero", sb.Description.UUID)
	}
	if sb.Description.ID != nil || sb.Description.Hash != nil || sb.Description.Private != nil {
		t.Fatalf("unexpected optional fields: %+v", sb.Description)
	}
	if len(sb.Children) != 0 {
		t.Fatalf("children = %d, want 0", len(sb.Children))
	}
	if !sb.Original.IsBorrowed() {
		t.Fatalf("slice parse must borrow")
	}
	if sb.Original.Offset() != 0 || sb.Original.Len() != len(data) {
		t.Fatalf("original at %d len %d, want 0 len %d", sb.Original.Offset(), sb.Original.Len(), len(data))
	}
	if d := sb.Description.Original; d.Offset() != 8 || d.Len() != 39 {
		t.Fatalf("description original at %d len %d, want 8 len 39", d.Offset(), d.Len())
	}
}

func TestSuperBoxFromSliceRemainder(t *testing.T) {
	data := mustHex(t, simpleSuperBoxHex)
	trailer := []byte{0xde, 0xad, 0xbe, 0xef}
	data = append(data, trailer...)

	_, rest, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(rest, trailer) {
		t.Fatalf("remainder = %x, want %x", rest, trailer)
	}
}

func TestSuperBoxFromSliceChildWithoutLabel(t *testing.T) {
	data := mustHex(t, `
		00000058 6a756d62
			0000002f 6a756d64
			00000000000000000000000000000000
			03
			746573742e7375706572626f785f64617461626f7800
			00000021 6a756d62
				00000019 6a756d64
				00000000000000000000000000000000
				00`)

	sb, rest, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder")
	}
	if got := sb.Label(); got != "test.superbox_databox" {
		t.Fatalf("label = %q", got)
	}
	if len(sb.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(sb.Children))
	}

	child := sb.Children[0].AsSuperBox()
	if child == nil {
		t.Fatalf("child is not a superbox")
	}
	if sb.Children[0].AsDataBox() != nil {
		t.Fatalf("superbox child must not present as data box")
	}
	if child.Description.Label != nil {
		t.Fatalf("child label = %v, want none", child.Description.Label)
	}
	if child.Description.Requestable {
		t.Fatalf("child must not be requestable")
	}
	if child.Original.Offset() != 55 || child.Original.Len() != 33 {
		t.Fatalf("child original at %d len %d, want 55 len 33", child.Original.Offset(), child.Original.Len())
	}
	if d := child.Description.Original; d.Offset() != 63 || d.Len() != 25 {
		t.Fatalf("child description original at %d len %d, want 63 len 25", d.Offset(), d.Len())
	}

	if sb.FindByLabel("not_there") != nil {
		t.Fatalf("found a box that does not exist")
	}
}

func TestSuperBoxFromSliceDataBoxChild(t *testing.T) {
	data := mustHex(t, signatureSuperBoxHex)

	sb, rest, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder")
	}
	if got := sb.Label(); got != "c2pa.signature" {
		t.Fatalf("label = %q", got)
	}

	box := sb.DataBox()
	if box == nil {
		t.Fatalf("no data box child")
	}
	if box.Type != jumbf.NewBoxType("uuid") {
		t.Fatalf("type = %q, want uuid", box.Type)
	}
	wantData := mustHex(t, "6332637300110010800000aa00389b71")
	wantData = append(wantData, []byte("this would normally be binary signature data...")...)
	if !bytes.Equal(box.Data.Bytes(), wantData) {
		t.Fatalf("data = %x, want %x", box.Data.Bytes(), wantData)
	}
	if box.Original.Offset() != 48 || box.Original.Len() != 71 {
		t.Fatalf("box original at %d len %d, want 48 len 71", box.Original.Offset(), box.Original.Len())
	}

	off, ok := box.OffsetWithinSuperBox(sb)
	if !ok || off != 56 {
		t.Fatalf("offset within superbox = %d,%v, want 56,true", off, ok)
	}
}

func TestSuperBoxFromSliceManifest(t *testing.T) {
	data := mustHex(t, manifestHex)

	sb, rest, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no remainder")
	}
	if got := sb.Label(); got != "c2pa" {
		t.Fatalf("label = %q, want c2pa", got)
	}
	if len(sb.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(sb.Children))
	}
	if sb.DataBox() != nil {
		t.Fatalf("first child is a superbox, DataBox must be nil")
	}

	manifest := sb.Children[0].AsSuperBox()
	if manifest == nil || manifest.Label() != "cb.adobe_1" {
		t.Fatalf("inner superbox = %v", manifest)
	}
	if len(manifest.Children) != 3 {
		t.Fatalf("manifest children = %d, want 3", len(manifest.Children))
	}

	wantLabels := []string{"c2pa.assertions", "c2pa.claim", "c2pa.signature"}
	for i, want := range wantLabels {
		child := manifest.Children[i].AsSuperBox()
		if child == nil || child.Label() != want {
			t.Fatalf("child %d = %v, want label %q", i, child, want)
		}
	}

	sig := sb.FindByLabel("cb.adobe_1/c2pa.signature")
	if sig == nil {
		t.Fatalf("signature not found")
	}
	if sig.Original.Offset() != 496 || sig.Original.Len() != 119 {
		t.Fatalf("signature original at %d len %d, want 496 len 119", sig.Original.Offset(), sig.Original.Len())
	}

	for _, miss := range []string{
		"cb.adobe_1x/c2pa.signature",
		"cb.adobe_1/c2pa.signaturex",
		"cb.adobe_1/c2pa.signature/blah",
	} {
		if sb.FindByLabel(miss) != nil {
			t.Fatalf("FindByLabel(%q) found a box", miss)
		}
	}
	if got := sb.FindByLabel(""); got != sb {
		t.Fatalf("empty path must resolve to the receiver")
	}

	sigBox := sig.DataBox()
	if sigBox == nil || sigBox.Type != jumbf.NewBoxType("uuid") {
		t.Fatalf("signature data box = %v", sigBox)
	}
	off, ok := sigBox.OffsetWithinSuperBox(sb)
	if !ok || off != 552 {
		t.Fatalf("offset within root = %d,%v, want 552,true", off, ok)
	}

	loc := sb.FindByLabel("cb.adobe_1/c2pa.assertions/c2pa.location.broad")
	if loc == nil {
		t.Fatalf("location assertion not found")
	}
	locBox := loc.DataBox()
	if locBox == nil {
		t.Fatalf("location payload box missing")
	}
	wantJSON := `{ "location": "Margate City, NJ"}`
	if got := string(locBox.Data.Bytes()); got != wantJSON {
		t.Fatalf("location payload = %q, want %q", got, wantJSON)
	}
}

func TestSuperBoxFromSliceIsZeroCopy(t *testing.T) {
	data := mustHex(t, signatureSuperBoxHex)

	a, _, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, _, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// Both parses borrow the same regions of the input buffer.
	if &a.Original.Bytes()[0] != &data[0] || &b.Original.Bytes()[0] != &data[0] {
		t.Fatalf("parse copied the input buffer")
	}
	ab, bb := a.DataBox(), b.DataBox()
	if ab == nil || bb == nil {
		t.Fatalf("data box missing")
	}
	if &ab.Data.Bytes()[0] != &data[56] || &bb.Data.Bytes()[0] != &data[56] {
		t.Fatalf("payload does not alias the input buffer")
	}
	if a.Label() != b.Label() || !ab.Data.Equal(bb.Data) {
		t.Fatalf("repeated parses disagree")
	}
}

func TestSuperBoxFromSliceWrongType(t *testing.T) {
	data := mustHex(t, `
		00000026 6a756d63
		00000000000000000000000000000000
		03
		746573742e64657363626f7800`)

	_, _, err := jumbf.SuperBoxFromSlice(data)
	iss, ok := jumbf.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != jumbf.CodeStructuralMismatch {
		t.Fatalf("code = %q, want %q", iss[0].Code, jumbf.CodeStructuralMismatch)
	}
	if iss[0].Path != "/" {
		t.Fatalf("path = %q, want /", iss[0].Path)
	}
}

func TestFindByLabelRejectsConflict(t *testing.T) {
	data := mustHex(t, `
		00000093 6a756d62
			0000002f 6a756d64
			00000000000000000000000000000000
			03
			746573742e7375706572626f785f64617461626f7800
			0000002e 6a756d62
				00000026 6a756d64
				00000000000000000000000000000000
				03
				746573742e64617461626f7800
			0000002e 6a756d62
				00000026 6a756d64
				00000000000000000000000000000000
				03
				746573742e64617461626f7800`)

	sb, _, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sb.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(sb.Children))
	}
	if sb.FindByLabel("test.databox") != nil {
		t.Fatalf("ambiguous label must not resolve")
	}
}

func TestFindByLabelSkipsNonRequestable(t *testing.T) {
	data := mustHex(t, `
		00000093 6a756d62
			0000002f 6a756d64
			00000000000000000000000000000000
			03
			746573742e7375706572626f785f64617461626f7800
			0000002e 6a756d62
				00000026 6a756d64
				00000000000000000000000000000000
				02
				746573742e64617461626f7800
			0000002e 6a756d62
				00000026 6a756d64
				00000000000000000000000000000000
				03
				746573742e64617461626f7a00`)

	sb, _, err := jumbf.SuperBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sb.FindByLabel("test.databox") != nil {
		t.Fatalf("non-requestable label must not resolve")
	}
	hit := sb.FindByLabel("test.databoz")
	if hit == nil || hit.Label() != "test.databoz" {
		t.Fatalf("requestable sibling not found: %v", hit)
	}
}

func TestSuperBoxFromDataBox(t *testing.T) {
	data := mustHex(t, simpleSuperBoxHex)

	box, _, err := jumbf.DataBoxFromSlice(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sb, err := jumbf.SuperBoxFromDataBox(box)
	if err != nil {
		t.Fatalf("reinterpret: %v", err)
	}
	if sb.Label() != "test.superbox" {
		t.Fatalf("label = %q", sb.Label())
	}

	other := &jumbf.DataBox{Type: jumbf.NewBoxType("free")}
	if _, err := jumbf.SuperBoxFromDataBox(other); err == nil {
		t.Fatalf("expected error for non-jumb box")
	}
}

func TestSuperBoxChildOverrunsParent(t *testing.T) {
	// The child box declares more bytes than the parent payload holds.
	data := mustHex(t, `
		00000029 6a756d62
			00000019 6a756d64
			00000000000000000000000000000000
			00
			000000ff 66726565`)

	_, _, err := jumbf.SuperBoxFromSlice(data)
	iss, ok := jumbf.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != jumbf.CodeBoundsViolation {
		t.Fatalf("code = %q, want %q", iss[0].Code, jumbf.CodeBoundsViolation)
	}
	if iss[0].Path != "/0" {
		t.Fatalf("path = %q, want /0", iss[0].Path)
	}
}
