package parser

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/reporterr"
	"github.com/zero-day-ai/nipper/section"
)

// Tags that carry a section role.
const (
	TagPart    = "part"
	TagSection = "section"
)

// Locate returns the first part or section below root, in document order,
// whose ref attribute equals key, together with its identity.
func Locate(root *etree.Element, key string) (*etree.Element, section.Ref, error) {
	if root == nil {
		return nil, section.Ref{}, reporterr.New(key, "locate", reporterr.CodeSectionNotFound, "nil root")
	}

	node := findSection(root, key)
	if node == nil {
		return nil, section.Ref{}, reporterr.Newf(key, "locate", reporterr.CodeSectionNotFound,
			"no part or section with ref %s", key)
	}

	ref, err := ReadIdentity(node)
	if err != nil {
		return nil, section.Ref{}, err
	}
	return node, ref, nil
}

func findSection(e *etree.Element, key string) *etree.Element {
	for _, c := range e.ChildElements() {
		if (c.Tag == TagPart || c.Tag == TagSection) && c.SelectAttrValue(AttrRef, "") == key {
			return c
		}
		if found := findSection(c, key); found != nil {
			return found
		}
	}
	return nil
}

// LocateElement returns the first descendant of root with the given tag.
func LocateElement(root *etree.Element, tag string) (*etree.Element, error) {
	if root == nil {
		return nil, reporterr.New(tag, "locate", reporterr.CodeSectionNotFound, "nil root")
	}
	if root.Tag == tag {
		return root, nil
	}
	node := root.FindElement(fmt.Sprintf(".//%s", tag))
	if node == nil {
		return nil, reporterr.Newf(tag, "locate", reporterr.CodeSectionNotFound, "no <%s> element", tag)
	}
	return node, nil
}
