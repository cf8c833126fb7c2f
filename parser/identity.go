package parser

import (
	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/reporterr"
	"github.com/zero-day-ai/nipper/section"
)

// Identity attribute names.
const (
	AttrIndex = "index"
	AttrTitle = "title"
	AttrRef   = "ref"
)

// ReadIdentity reads the index, title and ref attributes of node.
func ReadIdentity(node *etree.Element) (section.Ref, error) {
	if node == nil {
		return section.Ref{}, reporterr.New("", "identity", reporterr.CodeStructureMismatch, "nil node")
	}

	var values [3]string
	for i, name := range []string{AttrIndex, AttrTitle, AttrRef} {
		attr := node.SelectAttr(name)
		if attr == nil {
			return section.Ref{}, reporterr.Newf(describe(node), "identity", reporterr.CodeMissingAttribute,
				"<%s> has no %s attribute", node.Tag, name).
				WithDetails(map[string]any{"attribute": name, "tag": node.Tag})
		}
		values[i] = attr.Value
	}

	return section.Ref{Index: values[0], Title: values[1], Key: values[2]}, nil
}

// describe names a node for error messages: its ref when present, else its tag.
func describe(node *etree.Element) string {
	if node == nil {
		return ""
	}
	if ref := node.SelectAttrValue(AttrRef, ""); ref != "" {
		return ref
	}
	if idx := node.SelectAttrValue(AttrIndex, ""); idx != "" {
		return idx
	}
	return node.Tag
}
