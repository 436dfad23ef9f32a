package catalog

import (
	"fmt"
	"strings"

	"catreport/internal/core/apperror"
	"catreport/internal/core/id"
	"catreport/internal/infrastructure/xmldoc"
)

// Source is a parsed export. *xmldoc.Document satisfies it.
type Source interface {
	Rows(table, row string) []xmldoc.Row
}

// Observer receives a notification as each table is extracted.
type Observer func(stage string, rows int)

// Extract builds the five lookup tables from src. Names are extracted before
// metadata because metadata field names are resolved against them.
func Extract(src Source, obs Observer) (*Tables, error) {
	notify := func(stage string, rows int) {
		if obs != nil {
			obs(stage, rows)
		}
	}

	t := &Tables{}
	var err error

	if t.Names, err = extractNames(src.Rows(TableNames, RowNames)); err != nil {
		return nil, err
	}
	notify("field names", t.Names.Len())

	if t.Metadata, err = extractMetadata(src.Rows(TableMetadata, RowMetadata), t.Names); err != nil {
		return nil, err
	}
	notify("metadata", t.Metadata.Len())

	if t.Products, err = extractKeyed(src.Rows(TableProducts, RowProducts), TableProducts, AttrProductID, newProduct); err != nil {
		return nil, err
	}
	notify("products", t.Products.Len())

	if t.Categories, err = extractKeyed(src.Rows(TableCategories, RowCategories), TableCategories, AttrCategoryID, newCategory); err != nil {
		return nil, err
	}
	notify("categories", t.Categories.Len())

	if t.CatalogEntries, err = extractEntries(src.Rows(TableEntries, RowEntries)); err != nil {
		return nil, err
	}
	notify("catalog entries", t.CatalogEntries.Len())

	return t, nil
}

func extractNames(rows []xmldoc.Row) (*Table[string], error) {
	names := NewTable[string]()
	for i, row := range rows {
		key, err := requireRef(row, TableNames, i, AttrNameID)
		if err != nil {
			return nil, err
		}
		value, ok := row.Get(AttrStringValue)
		if !ok {
			return nil, missingAttr(TableNames, i, row, AttrStringValue)
		}
		names.Put(key, value)
	}
	return names, nil
}

func extractMetadata(rows []xmldoc.Row, names *Table[string]) (*Table[MetadataEntry], error) {
	metadata := NewTable[MetadataEntry]()
	for i, row := range rows {
		product, err := requireRef(row, TableMetadata, i, AttrProductRef)
		if err != nil {
			return nil, err
		}
		field, err := requireRef(row, TableMetadata, i, AttrFieldNameRef)
		if err != nil {
			return nil, err
		}

		name, ok := names.Get(field)
		if !ok {
			return nil, apperror.NewUnresolvedReference(TableNames, field.String(), product.String()).
				WithDetail("line", row.Line)
		}

		entry, ok := metadata.Get(product)
		if !ok {
			entry = make(MetadataEntry)
			metadata.Put(product, entry)
		}
		// absent value reads as ""
		entry[MetadataKey(name)] = row.Value(AttrFieldValue)
	}
	return metadata, nil
}

func extractKeyed[T any](rows []xmldoc.Row, table, canonical string, build func(id.Key, Attributes) T) (*Table[T], error) {
	out := NewTable[T]()
	for i, row := range rows {
		attrs := Attributes(row.Attrs).Clone()
		key, ok := identify(attrs, canonical)
		if !ok {
			return nil, apperror.NewMalformedInput(table, i, "row has no identifying attribute").
				WithDetail("line", row.Line).
				WithDetail("expected", "*"+IDSuffix)
		}
		out.Put(key, build(key, attrs))
	}
	return out, nil
}

func extractEntries(rows []xmldoc.Row) (*Table[[]id.Key], error) {
	entries := NewTable[[]id.Key]()
	for i, row := range rows {
		product, err := requireRef(row, TableEntries, i, AttrProductRef)
		if err != nil {
			return nil, err
		}
		category, err := requireRef(row, TableEntries, i, AttrParentCategoryRef)
		if err != nil {
			return nil, err
		}
		linked, _ := entries.Get(product)
		entries.Put(product, append(linked, category))
	}
	return entries, nil
}

// identify finds the row key: the canonical id attribute when present,
// otherwise the only attribute whose name ends in IDSuffix.
func identify(attrs Attributes, canonical string) (id.Key, bool) {
	if v, ok := attrs.Get(canonical); ok && !id.Key(v).IsZero() {
		return id.Key(v), true
	}

	var found string
	n := 0
	for name, v := range attrs {
		if strings.HasSuffix(name, IDSuffix) {
			found = v
			n++
		}
	}
	if n != 1 || id.Key(found).IsZero() {
		return "", false
	}
	return id.Key(found), true
}

func requireRef(row xmldoc.Row, table string, i int, attr string) (id.Key, error) {
	v, ok := row.Get(attr)
	if !ok || id.Key(v).IsZero() {
		return "", missingAttr(table, i, row, attr)
	}
	return id.Key(v), nil
}

func missingAttr(table string, i int, row xmldoc.Row, attr string) error {
	return apperror.NewMalformedInput(table, i, fmt.Sprintf("row is missing %s", attr)).
		WithDetail("line", row.Line)
}
