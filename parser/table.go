package parser

import (
	"github.com/beevik/etree"

	"github.com/zero-day-ai/nipper/reporterr"
	"github.com/zero-day-ai/nipper/section"
)

// Table group tags.
const (
	TagHeadings  = "headings"
	TagTableBody = "tablebody"
)

// RowPolicy decides what happens to a body row whose cell count differs from
// the header field count.
type RowPolicy string

const (
	// RowTruncate cuts the row to the shorter length and records it in Table.Truncated.
	RowTruncate RowPolicy = "truncate"

	// RowStrict rejects the table with a structure mismatch.
	RowStrict RowPolicy = "strict"
)

// IsValid returns true if the policy is known.
func (p RowPolicy) IsValid() bool {
	switch p {
	case RowTruncate, RowStrict:
		return true
	default:
		return false
	}
}

// IsTable reports whether block has the two-group headings/tablebody shape.
func IsTable(block *etree.Element) bool {
	if block == nil {
		return false
	}
	groups := block.ChildElements()
	return len(groups) == 2 && groups[0].Tag == TagHeadings && groups[1].Tag == TagTableBody
}

// ExtractTable converts a headings/tablebody block into rows keyed by the
// normalized header texts.
//
// Given headings "Device" and "Issue Overview" and one row "R1", "3":
//
//	[{device: R1, issue_overview: 3}]
func ExtractTable(block *etree.Element, policy RowPolicy) (section.Table, error) {
	if !IsTable(block) {
		return section.Table{}, tableMismatch(block)
	}
	groups := block.ChildElements()

	headers := groups[0].ChildElements()
	fields := make([]string, len(headers))
	for i, h := range headers {
		fields[i] = NormalizeField(Text(h))
	}

	table := section.Table{Fields: fields}
	for n, rowNode := range groups[1].ChildElements() {
		cells := ChildTexts(rowNode)

		width := len(fields)
		if len(cells) != len(fields) {
			if policy == RowStrict {
				return section.Table{}, reporterr.Newf(describe(block), "table", reporterr.CodeStructureMismatch,
					"row %d has %d cells, header has %d fields", n, len(cells), len(fields)).
					WithDetails(map[string]any{"row": n, "cells": len(cells), "fields": len(fields)})
			}
			width = min(len(cells), len(fields))
			table.Truncated = append(table.Truncated, section.TruncatedRow{
				Row:    n,
				Cells:  len(cells),
				Fields: len(fields),
			})
		}

		row := make(section.Row, width)
		for i := 0; i < width; i++ {
			row[i] = section.Field{Name: fields[i], Value: cells[i]}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func tableMismatch(block *etree.Element) error {
	if block == nil {
		return reporterr.New("", "table", reporterr.CodeStructureMismatch, "table block is missing")
	}
	groups := block.ChildElements()
	tags := make([]string, len(groups))
	for i, g := range groups {
		tags[i] = g.Tag
	}
	return reporterr.Newf(describe(block), "table", reporterr.CodeStructureMismatch,
		"<%s> is not a %s/%s table", block.Tag, TagHeadings, TagTableBody).
		WithDetails(map[string]any{"children": tags})
}
