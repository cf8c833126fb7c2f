package parser

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// referencePattern matches an embedded "<int>.<int>" section number.
var referencePattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// NormalizeField turns a header cell into a field name: lower-cased, with each
// run of whitespace replaced by a single underscore. Normalizing twice is a no-op.
func NormalizeField(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// Text returns the character data of e and all its descendants, in document
// order, with whitespace runs collapsed to single spaces.
func Text(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	collectText(e, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(e *etree.Element, b *strings.Builder) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
			b.WriteByte(' ')
		case *etree.Element:
			collectText(t, b)
		}
	}
}

// ChildTexts returns Text of every child element of e.
func ChildTexts(e *etree.Element) []string {
	children := e.ChildElements()
	texts := make([]string, len(children))
	for i, c := range children {
		texts[i] = Text(c)
	}
	return texts
}

// FindReference returns the first "<int>.<int>" substring of s.
func FindReference(s string) (string, bool) {
	m := referencePattern.FindString(s)
	return m, m != ""
}
