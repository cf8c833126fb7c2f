package parser

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/reporterr"
)

// Slot names one child offset of a layout.
type Slot struct {
	// Name is what the child holds (e.g. "date", "devices").
	Name string

	// Offset is the zero-based child element position.
	Offset int

	// Optional slots may be absent; Bound.Child returns nil for them.
	Optional bool
}

// Layout is the positional contract of one section kind: which child offset
// holds which content. Offsets are schema knowledge, so every parser states
// them here and Bind checks them in one place.
type Layout struct {
	name  string
	slots map[string]Slot
	need  int
}

// NewLayout builds a layout. Slot names must be unique.
func NewLayout(name string, slots ...Slot) Layout {
	l := Layout{name: name, slots: make(map[string]Slot, len(slots))}
	for _, s := range slots {
		if _, dup := l.slots[s.Name]; dup {
			panic(fmt.Sprintf("parser: layout %s declares slot %q twice", name, s.Name))
		}
		l.slots[s.Name] = s
		if !s.Optional && s.Offset+1 > l.need {
			l.need = s.Offset + 1
		}
	}
	return l
}

// Name returns the layout name.
func (l Layout) Name() string {
	return l.name
}

// MinChildren returns the number of children the required slots need.
func (l Layout) MinChildren() int {
	return l.need
}

// Bind checks that node has a child for every required slot.
func (l Layout) Bind(node *etree.Element) (Bound, error) {
	if node == nil {
		return Bound{}, reporterr.Newf("", l.name, reporterr.CodeStructureMismatch, "%s node is missing", l.name)
	}
	children := node.ChildElements()
	if len(children) < l.need {
		missing := l.firstMissing(len(children))
		return Bound{}, reporterr.Newf(describe(node), l.name, reporterr.CodeStructureMismatch,
			"expected %s at offset %d, node has %d children", missing.Name, missing.Offset, len(children)).
			WithDetails(map[string]any{
				"slot":     missing.Name,
				"offset":   missing.Offset,
				"children": len(children),
				"required": l.need,
			})
	}
	return Bound{layout: l, node: node, children: children}, nil
}

func (l Layout) firstMissing(have int) Slot {
	var first Slot
	found := false
	for _, s := range l.slots {
		if s.Optional || s.Offset < have {
			continue
		}
		if !found || s.Offset < first.Offset {
			first, found = s, true
		}
	}
	return first
}

// Bound is a node whose children passed Layout.Bind.
type Bound struct {
	layout   Layout
	node     *etree.Element
	children []*etree.Element
}

// Node returns the bound node.
func (b Bound) Node() *etree.Element {
	return b.node
}

// Len returns the number of child elements.
func (b Bound) Len() int {
	return len(b.children)
}

// Child returns the child at the named slot, or nil for an absent optional slot.
// Unknown slot names are a programming error and panic.
func (b Bound) Child(name string) *etree.Element {
	s, ok := b.layout.slots[name]
	if !ok {
		panic(fmt.Sprintf("parser: layout %s has no slot %q", b.layout.name, name))
	}
	if s.Offset >= len(b.children) {
		return nil
	}
	return b.children[s.Offset]
}

// Has reports whether the named slot is present.
func (b Bound) Has(name string) bool {
	return b.Child(name) != nil
}

// From returns the children from the named slot's offset to the end.
func (b Bound) From(name string) []*etree.Element {
	s, ok := b.layout.slots[name]
	if !ok {
		panic(fmt.Sprintf("parser: layout %s has no slot %q", b.layout.name, name))
	}
	if s.Offset >= len(b.children) {
		return nil
	}
	return b.children[s.Offset:]
}

// Mismatch builds a structure mismatch for the named slot of this node.
func (b Bound) Mismatch(slot, format string, args ...any) error {
	s := b.layout.slots[slot]
	return reporterr.Newf(describe(b.node), b.layout.name, reporterr.CodeStructureMismatch, format, args...).
		WithDetails(map[string]any{"slot": slot, "offset": s.Offset})
}
