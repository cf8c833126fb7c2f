package audit

import (
	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/parser"
	"github.com/zero-day-ai/nipper/reporterr"
)

const (
	tagInformation = "information"
	tagDevices     = "devices"
)

// Information parses the first information element under root.
func (p *Parser) Information(root *etree.Element) (*Information, error) {
	node, err := parser.LocateElement(root, tagInformation)
	if err != nil {
		return nil, err
	}

	b, err := informationLayout.Bind(node)
	if err != nil {
		return nil, err
	}
	gen, err := generatorLayout.Bind(b.Child("generator"))
	if err != nil {
		return nil, err
	}

	info := &Information{
		Title:   parser.Text(b.Child("title")),
		Author:  parser.Text(b.Child("author")),
		Date:    parser.Text(b.Child("date")),
		Version: parser.Text(gen.Child("version")),
	}

	list := node.SelectElement(tagDevices)
	if list == nil {
		return nil, reporterr.Newf(tagInformation, "information", reporterr.CodeStructureMismatch,
			"<%s> has no <%s> child", tagInformation, tagDevices)
	}
	for _, d := range list.ChildElements() {
		dev, err := readDevice(d)
		if err != nil {
			return nil, err
		}
		info.Devices = append(info.Devices, dev)
	}

	p.logger.Debug("parsed information",
		"title", info.Title,
		"version", info.Version,
		"devices", len(info.Devices))
	return info, nil
}

func readDevice(node *etree.Element) (Device, error) {
	var values [3]string
	for i, name := range []string{"name", "type", "os"} {
		v, err := requireAttr(node, name)
		if err != nil {
			return Device{}, err
		}
		values[i] = v
	}
	return Device{Name: values[0], Type: values[1], OperatingSystem: values[2]}, nil
}

func requireAttr(node *etree.Element, name string) (string, error) {
	attr := node.SelectAttr(name)
	if attr == nil {
		return "", reporterr.Newf(node.Tag, "attribute", reporterr.CodeMissingAttribute,
			"<%s> has no %s attribute", node.Tag, name).
			WithDetails(map[string]any{"attribute": name, "tag": node.Tag})
	}
	return attr.Value, nil
}
