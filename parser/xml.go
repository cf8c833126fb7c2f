package parser

import (
	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/reporterr"
)

// Load parses XML document bytes into a tree.
func Load(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, reporterr.New("document", "load", reporterr.CodeParseError, "failed to parse XML").
			WithCause(err)
	}
	if doc.Root() == nil {
		return nil, reporterr.New("document", "load", reporterr.CodeParseError, "document has no root element")
	}
	return doc, nil
}
