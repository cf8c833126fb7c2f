package audit

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/finding"
	"github.com/zero-day-ai/nipper/parser"
	"github.com/zero-day-ai/nipper/reporterr"
	"github.com/zero-day-ai/nipper/section"
)

// Introduction parses an introduction section node.
func (p *Parser) Introduction(node *etree.Element) (*Introduction, error) {
	ref, err := parser.ReadIdentity(node)
	if err != nil {
		return nil, err
	}
	b, err := introductionLayout.Bind(node)
	if err != nil {
		return nil, err
	}

	devices, err := p.table(ref, "devices", b.Child("devices"))
	if err != nil {
		return nil, err
	}
	intro := &Introduction{
		Ref:     ref,
		Date:    parser.Text(b.Child("date")),
		Devices: devices,
	}

	if overview := b.Child("overview"); overview != nil {
		items := overview.ChildElements()
		if len(items) > 1 {
			intro.Overview = make(section.Row, 0, len(items)-1)
			for _, item := range items[1:] {
				intro.Overview = append(intro.Overview, section.Field{
					Name:  item.SelectAttrValue(parser.AttrTitle, item.Tag),
					Value: parser.Text(item),
				})
			}
		}
	}

	if summary := b.Child("rating_summary"); summary != nil {
		intro.RatingSummary, err = p.ratingSummary(ref, summary)
		if err != nil {
			return nil, err
		}
	}
	return intro, nil
}

func (p *Parser) ratingSummary(ref section.Ref, node *etree.Element) (section.Row, error) {
	b, err := ratingSummaryLayout.Bind(node)
	if err != nil {
		return nil, err
	}
	t, err := p.table(ref, "rating summary", b.Child("table"))
	if err != nil {
		return nil, err
	}
	row := make(section.Row, 0, t.Len())
	for i, r := range t.Rows {
		if len(r) < 2 {
			return nil, b.Mismatch("table", "rating summary row %d has %d cells, want 2", i, len(r))
		}
		row = append(row, section.Field{Name: r[0].Value, Value: r[1].Value})
	}
	return row, nil
}

// Finding parses a finding section node. The index must be a section number
// and the first rating entry a known rating.
func (p *Parser) Finding(node *etree.Element) (*finding.Finding, error) {
	ref, err := parser.ReadIdentity(node)
	if err != nil {
		return nil, err
	}
	number, err := finding.ParseNumber(ref.Index)
	if err != nil {
		return nil, reporterr.Newf(ref.Key, "finding", reporterr.CodeStructureMismatch,
			"index %q is not a section number", ref.Index).WithCause(err)
	}

	b, err := findingLayout.Bind(node)
	if err != nil {
		return nil, err
	}
	details, err := issueDetailsLayout.Bind(b.Child("details"))
	if err != nil {
		return nil, err
	}

	f := &finding.Finding{
		Ref:            ref,
		Number:         number,
		Impact:         blockText(b.Child("impact")),
		Ease:           blockText(b.Child("ease")),
		Recommendation: blockText(b.Child("recommendation")),
	}

	for _, d := range details.Child("devices").ChildElements() {
		f.AffectedDevices = append(f.AffectedDevices, attrRow(d))
	}

	ratings := details.Child("ratings").ChildElements()
	if len(ratings) != finding.RatingEntries {
		return nil, details.Mismatch("ratings", "finding %s has %d rating entries, want %d",
			ref.Index, len(ratings), finding.RatingEntries)
	}
	f.Ratings = tagRow(ratings)
	if _, err := finding.ParseRating(f.Ratings[0].Value); err != nil {
		return nil, details.Mismatch("ratings", "finding %s: %v", ref.Index, err)
	}

	paragraphs := b.Child("finding").ChildElements()
	if len(paragraphs) > 2 {
		paragraphs = paragraphs[:2]
	}
	for _, para := range paragraphs {
		f.Finding = append(f.Finding, parser.Text(para))
	}
	return f, nil
}

// CVE parses a CVE section node.
func (p *Parser) CVE(node *etree.Element) (*CVE, error) {
	ref, err := parser.ReadIdentity(node)
	if err != nil {
		return nil, err
	}
	b, err := cveLayout.Bind(node)
	if err != nil {
		return nil, err
	}

	c := &CVE{
		Ref:     ref,
		Rating:  tagRow(b.Child("rating").ChildElements()),
		Summary: blockText(b.Child("summary")),
	}
	lists := []struct {
		slot string
		dst  *[]string
	}{
		{"devices", &c.AffectedDevices},
		{"advisories", &c.VendorAdvisories},
		{"references", &c.References},
	}
	for _, l := range lists {
		inner, err := cveListLayout.Bind(b.Child(l.slot))
		if err != nil {
			return nil, err
		}
		*l.dst = parser.ChildTexts(inner.Child("list"))
	}
	return c, nil
}

// Observation parses a filtering complexity observation node.
func (p *Parser) Observation(node *etree.Element) (*Observation, error) {
	ref, err := parser.ReadIdentity(node)
	if err != nil {
		return nil, err
	}
	b, err := observationLayout.Bind(node)
	if err != nil {
		return nil, err
	}

	o := &Observation{
		Ref:      ref,
		Overview: parser.Text(b.Child("overview")),
	}
	for _, d := range b.From("devices") {
		dev, err := p.affectedDevice(ref, d)
		if err != nil {
			return nil, err
		}
		o.Devices = append(o.Devices, dev)
	}
	return o, nil
}

func (p *Parser) affectedDevice(ref section.Ref, node *etree.Element) (AffectedDevice, error) {
	b, err := affectedDeviceLayout.Bind(node)
	if err != nil {
		return AffectedDevice{}, err
	}
	dev := AffectedDevice{
		Name: node.SelectAttrValue(parser.AttrTitle, ""),
		Text: parser.Text(b.Child("text")),
	}
	for _, block := range b.From("details") {
		if parser.IsTable(block) {
			t, err := p.table(ref, "details", block)
			if err != nil {
				return AffectedDevice{}, err
			}
			dev.Details = append(dev.Details, DetailsTable{Layout: LayoutTable, Table: t})
			continue
		}

		items := parser.ChildTexts(block)
		if len(items) == 0 {
			if text := parser.Text(block); text != "" {
				items = []string{text}
			}
		}
		p.logger.Warn("details block is not a table, reading it as a list",
			"section", ref.Key,
			"index", ref.Index,
			"device", dev.Name,
			"tag", block.Tag,
			"items", len(items))
		dev.Details = append(dev.Details, DetailsTable{Layout: LayoutList, Items: items})
	}
	return dev, nil
}

// Conclusion parses a conclusions section node.
func (p *Parser) Conclusion(node *etree.Element) (*Conclusion, error) {
	ref, err := parser.ReadIdentity(node)
	if err != nil {
		return nil, err
	}
	b, err := conclusionLayout.Bind(node)
	if err != nil {
		return nil, err
	}

	perDevice, err := p.table(ref, "per device", b.Child("per_device"))
	if err != nil {
		return nil, err
	}
	c := &Conclusion{
		Ref:       ref,
		PerDevice: perDevice,
		PerRating: make(map[finding.Rating][]string, len(finding.AllRatings())),
	}
	for _, r := range finding.AllRatings() {
		c.PerRating[r] = parser.ChildTexts(b.Child(string(r)))
	}
	return c, nil
}

// Recommendations parses a recommendations section node.
func (p *Parser) Recommendations(node *etree.Element) (*Recommendations, error) {
	ref, err := parser.ReadIdentity(node)
	if err != nil {
		return nil, err
	}
	b, err := recommendationsLayout.Bind(node)
	if err != nil {
		return nil, err
	}
	list, err := p.table(ref, "list", b.Child("list"))
	if err != nil {
		return nil, err
	}
	return &Recommendations{Ref: ref, List: list}, nil
}

// MitigationLists reads the quick, planned and involved lists of a
// mitigation classification node. Entries are returned as written.
func (p *Parser) MitigationLists(node *etree.Element) (section.Ref, map[finding.FixingEffort][]string, error) {
	ref, err := parser.ReadIdentity(node)
	if err != nil {
		return section.Ref{}, nil, err
	}
	b, err := mitigationLayout.Bind(node)
	if err != nil {
		return section.Ref{}, nil, err
	}
	lists := make(map[finding.FixingEffort][]string, len(finding.AllFixingEfforts()))
	for _, e := range finding.AllFixingEfforts() {
		lists[e] = parser.ChildTexts(b.Child(string(e)))
	}
	return ref, lists, nil
}

// table extracts a table and reports truncated rows.
func (p *Parser) table(ref section.Ref, name string, block *etree.Element) (section.Table, error) {
	t, err := parser.ExtractTable(block, p.policy)
	if err != nil {
		return section.Table{}, err
	}
	for _, tr := range t.Truncated {
		p.logger.Warn("table row truncated",
			"section", ref.Key,
			"index", ref.Index,
			"table", name,
			"row", tr.Row,
			"cells", tr.Cells,
			"fields", tr.Fields)
	}
	if len(t.Truncated) > 0 && p.onTruncated != nil {
		p.onTruncated(ref, name, t.Truncated)
	}
	return t, nil
}

// blockText joins the texts of a block's children, or returns the block's own
// text when it has none.
func blockText(e *etree.Element) string {
	if e == nil {
		return ""
	}
	texts := parser.ChildTexts(e)
	if len(texts) == 0 {
		return parser.Text(e)
	}
	nonEmpty := texts[:0]
	for _, t := range texts {
		if t != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// attrRow maps every attribute of e to a field, in document order.
func attrRow(e *etree.Element) section.Row {
	row := make(section.Row, 0, len(e.Attr))
	for _, a := range e.Attr {
		row = append(row, section.Field{Name: a.Key, Value: a.Value})
	}
	return row
}

// tagRow maps each element's tag to its text.
func tagRow(elems []*etree.Element) section.Row {
	row := make(section.Row, 0, len(elems))
	for _, e := range elems {
		row = append(row, section.Field{Name: e.Tag, Value: parser.Text(e)})
	}
	return row
}
