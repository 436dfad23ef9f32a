// Package xmldoc reads a catalog export into an attribute-queryable tree.
//
// An export is laid out as a root element holding one element per table,
// each of which holds one element per row:
//
//	<PFWeb:Database>
//	  <PFWeb:Products__Table>
//	    <PFWeb:Products__Row ProductID__ID="P1" Code__STR="A-1"/>
//	  </PFWeb:Products__Table>
//	</PFWeb:Database>
//
// Namespace prefixes are ignored; tables and rows are matched on local names.
// Row content (character data, nested elements) carries no information and is
// skipped.
package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// Row is a single table row: its attribute set and source position.
type Row struct {
	Line  int
	Attrs map[string]string
}

// Get returns the attribute value and whether it was present.
func (r Row) Get(name string) (string, bool) {
	v, ok := r.Attrs[name]
	return v, ok
}

// Value returns the attribute value or "" when absent.
func (r Row) Value(name string) string {
	return r.Attrs[name]
}

// Document is a parsed export.
type Document struct {
	Root   string
	tables map[string][]Row
	order  []string
}

// Rows returns the rows named row inside the table element named table,
// in document order. Unknown tables yield nil.
func (d *Document) Rows(table, row string) []Row {
	return d.tables[tableKey(table, row)]
}

// Tables lists "<table>/<row>" pairs in first-seen order.
func (d *Document) Tables() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// RowCount returns the total number of rows across all tables.
func (d *Document) RowCount() int {
	n := 0
	for _, rows := range d.tables {
		n += len(rows)
	}
	return n
}

func tableKey(table, row string) string {
	return table + "/" + row
}

// Parse reads a whole export document.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	// Non-UTF-8 exports (windows-1252, iso-8859-1, ...) are decoded from the
	// declared encoding. Unknown labels fail the parse.
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &Document{tables: make(map[string][]Row)}
	var stack []string

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)

			switch len(stack) {
			case 1:
				doc.Root = t.Name.Local
			case 3:
				line, _ := decoder.InputPos()
				doc.add(stack[1], t.Name.Local, rowFromStart(t, line))
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if doc.Root == "" {
		return nil, errors.New("parse xml: document has no root element")
	}
	return doc, nil
}

func (d *Document) add(table, row string, r Row) {
	key := tableKey(table, row)
	if _, seen := d.tables[key]; !seen {
		d.order = append(d.order, key)
	}
	d.tables[key] = append(d.tables[key], r)
}

func rowFromStart(t xml.StartElement, line int) Row {
	attrs := make(map[string]string, len(t.Attr))
	for _, attr := range t.Attr {
		// namespace declarations are not row data
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		attrs[attr.Name.Local] = attr.Value
	}
	return Row{Line: line, Attrs: attrs}
}
