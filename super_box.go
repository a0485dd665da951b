package jumbf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/jumbf/internal/boxio"
)

// ChildBox is one entry in a superbox payload after the description
// box: either a nested SuperBox or a plain DataBox.
type ChildBox interface {
	// AsSuperBox returns the child as a superbox, or nil when it is a
	// plain data box.
	AsSuperBox() *SuperBox

	// AsDataBox returns the child as a plain data box, or nil when it
	// is a superbox.
	AsDataBox() *DataBox

	isChild()
}

func (s *SuperBox) AsSuperBox() *SuperBox { return s }
func (s *SuperBox) AsDataBox() *DataBox { return nil }
func (s *SuperBox) isChild() {}

func (d *DataBox) AsSuperBox() *SuperBox { return nil }
func (d *DataBox) AsDataBox() *DataBox { return d }
func (d *DataBox) isChild() {}

// SuperBox is a parsed "jumb" box: a description box followed by zero
// or more children, each a nested superbox or a plain data box.
type SuperBox struct {
	// Description identifies the superbox content.
	Description *DescriptionBox

	// Children are the boxes following the description, in wire
	// order.
	Children []ChildBox

	// Original is the full superbox, header included.
	Original InputData
}

// SuperBoxFromSlice parses one superbox from the front of b without
// copying. It returns the superbox and the remaining bytes after it.
// Nesting is recursive with no depth limit; use SuperBoxFromReader
// when the input is untrusted and a limit is required.
func SuperBoxFromSlice(b []byte) (*SuperBox, []byte, error) {
	return superBoxFromSlice(b, 0, "/")
}

func superBoxFromSlice(b []byte, base int64, path string) (*SuperBox, []byte, error) {
	box, rest, err := dataBoxFromSlice(b, base, path, boxio.CodeTruncated, false)
	if err != nil {
		return nil, nil, err
	}
	sb, err := superBoxFromDataBox(box, path, 1, sliceConfig{})
	if err != nil {
		return nil, nil, err
	}
	return sb, rest, nil
}

// SuperBoxFromDataBox reinterprets an already-parsed box as a
// superbox. The box must have type "jumb".
func SuperBoxFromDataBox(box *DataBox) (*SuperBox, error) {
	return superBoxFromDataBox(box, "/", 1, sliceConfig{})
}

// sliceConfig parameterizes the recursive payload walk shared by the
// slice and reader entry points. maxDepth of 0 means unlimited.
type sliceConfig struct {
	owned    bool
	maxDepth int
}

func superBoxFromDataBox(box *DataBox, path string, depth int, cfg sliceConfig) (*SuperBox, error) {
	if cfg.maxDepth > 0 && depth > cfg.maxDepth {
		return nil, singleIssue(CodeRecursionLimit, path, box.Original.Offset(),
			fmt.Sprintf("superbox nesting exceeds limit of %d", cfg.maxDepth))
	}
	if box.Type != TypeSuperBox {
		return nil, singleIssue(CodeStructuralMismatch, path, box.Original.Offset(),
			fmt.Sprintf("expected box type %q, found %q", TypeSuperBox, box.Type))
	}
	payload := box.Data.Bytes()
	base := box.Data.Offset()

	descPath := joinPath(path, "desc")
	dbox, remaining, err := dataBoxFromSlice(payload, base, descPath, boxio.CodeBounds, cfg.owned)
	if err != nil {
		return nil, err
	}
	desc, err := descriptionFromDataBox(dbox, cfg.owned, descPath)
	if err != nil {
		return nil, err
	}

	sb := &SuperBox{Description: desc, Original: box.Original}
	for idx := 0; len(remaining) > 0; idx++ {
		childPath := joinPath(path, strconv.Itoa(idx))
		childBase := base + int64(len(payload)-len(remaining))
		cbox, rest, err := dataBoxFromSlice(remaining, childBase, childPath, boxio.CodeBounds, cfg.owned)
		if err != nil {
			return nil, err
		}
		if cbox.Type == TypeSuperBox {
			child, err := superBoxFromDataBox(cbox, childPath, depth+1, cfg)
			if err != nil {
				return nil, err
			}
			sb.Children = append(sb.Children, child)
		} else {
			sb.Children = append(sb.Children, cbox)
		}
		remaining = rest
	}
	return sb, nil
}

// FindByLabel resolves a slash-separated label path against the
// requestable child superboxes, one path segment per nesting level.
// The receiver itself is returned for the empty path. Resolution fails
// with nil when a segment matches no child, matches a child that is
// not requestable, or matches more than one child.
func (s *SuperBox) FindByLabel(label string) *SuperBox {
	if label == "" {
		return s
	}
	seg, rest, _ := strings.Cut(label, "/")
	var found *SuperBox
	for _, c := range s.Children {
		child := c.AsSuperBox()
		if child == nil || !child.Description.Requestable || child.Description.Label == nil {
			continue
		}
		if child.Description.Label.String() != seg {
			continue
		}
		if found != nil {
			return nil
		}
		found = child
	}
	if found == nil {
		return nil
	}
	return found.FindByLabel(rest)
}

// DataBox returns the first child when it is a plain data box, the
// common shape for leaf superboxes that wrap a single payload box.
func (s *SuperBox) DataBox() *DataBox {
	if len(s.Children) == 0 {
		return nil
	}
	return s.Children[0].AsDataBox()
}

// Label returns the description label text, or "" when absent.
func (s *SuperBox) Label() string {
	if s.Description == nil || s.Description.Label == nil {
		return ""
	}
	return s.Description.Label.String()
}

func (s *SuperBox) String() string {
	return fmt.Sprintf("SuperBox(%q, %d children)", s.Label(), len(s.Children))
}

func joinPath(parent, seg string) string {
	if parent == "/" {
		return "/" + seg
	}
	return parent + "/" + seg
}
