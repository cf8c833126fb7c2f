package parser

import (
	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/reporterr"
)

// Slice describes a part whose children are a fixed prefix of sections, a
// repeated body (findings, CVEs, observations) and a fixed suffix of summary
// sections. Prefix and Suffix hold the ref keys expected at those positions.
type Slice struct {
	Prefix []string
	Suffix []string
}

// Parts is the result of Slice.Split.
type Parts struct {
	Prefix []*etree.Element
	Body   []*etree.Element
	Suffix []*etree.Element
}

// Split cuts the children of part. The children at prefix and suffix positions
// must carry the expected ref keys, so a summary section never lands in the
// body and the introduction is never counted twice.
func (s Slice) Split(part *etree.Element) (Parts, error) {
	if part == nil {
		return Parts{}, reporterr.New("", "slice", reporterr.CodeStructureMismatch, "part node is missing")
	}
	children := part.ChildElements()
	fixed := len(s.Prefix) + len(s.Suffix)
	if len(children) < fixed {
		return Parts{}, reporterr.Newf(describe(part), "slice", reporterr.CodeStructureMismatch,
			"expected at least %d children (%d prefix, %d suffix), found %d",
			fixed, len(s.Prefix), len(s.Suffix), len(children)).
			WithDetails(map[string]any{"children": len(children), "prefix": s.Prefix, "suffix": s.Suffix})
	}

	for i, key := range s.Prefix {
		if err := expectKey(part, children[i], i, key); err != nil {
			return Parts{}, err
		}
	}
	base := len(children) - len(s.Suffix)
	for i, key := range s.Suffix {
		if err := expectKey(part, children[base+i], base+i, key); err != nil {
			return Parts{}, err
		}
	}

	return Parts{
		Prefix: children[:len(s.Prefix)],
		Body:   children[len(s.Prefix):base],
		Suffix: children[base:],
	}, nil
}

func expectKey(part, child *etree.Element, offset int, key string) error {
	got := child.SelectAttrValue(AttrRef, "")
	if got == key {
		return nil
	}
	return reporterr.Newf(describe(part), "slice", reporterr.CodeStructureMismatch,
		"expected section %s at offset %d, found %q", key, offset, got).
		WithDetails(map[string]any{"offset": offset, "want": key, "got": got})
}
