// Package catalog turns a catalog export into joined product records.
//
// The export models a small relational schema: field names, per-product
// metadata values, products, hierarchical categories and the catalog entries
// linking products to categories. Extract materializes those five tables,
// PathResolver computes "Root > Child" category paths and Assemble joins
// everything into one record per product reachable from the catalog.
package catalog

import (
	"strconv"
	"strings"

	"catreport/internal/core/id"
)

// MetadataEntry maps resolved, prefixed field names to values for one product.
type MetadataEntry map[string]string

// Product is a row of the products table.
type Product struct {
	ID              id.Key
	Code            string
	HTMLDisplayName string
	Keywords        string

	// Status flags are carried for reporting only; they never decide
	// whether a product is current.
	Retired  bool
	Archived bool
	Deleted  bool

	// Attrs holds every source attribute, known ones included.
	Attrs Attributes
}

func newProduct(key id.Key, attrs Attributes) Product {
	return Product{
		ID:              key,
		Code:            attrs.GetString(AttrCode),
		HTMLDisplayName: attrs.GetString(AttrHTMLDisplayName),
		Keywords:        attrs.GetString(AttrKeywords),
		Retired:         attrs.GetBool(AttrRetired),
		Archived:        attrs.GetBool(AttrArchived),
		Deleted:         attrs.GetBool(AttrDeleted),
		Attrs:           attrs,
	}
}

// Category is a node of the category hierarchy.
type Category struct {
	ID          id.Key
	DisplayName string

	// ParentID references another category; nil for roots.
	ParentID *id.Key

	Attrs Attributes
}

func newCategory(key id.Key, attrs Attributes) Category {
	c := Category{
		ID:          key,
		DisplayName: attrs.GetString(AttrDisplayName),
		Attrs:       attrs,
	}
	if parent := id.Key(attrs.GetString(AttrParentCategoryRef)); !parent.IsZero() {
		c.ParentID = &parent
	}
	return c
}

// IsRoot returns true if category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// Tables holds the five lookup tables of an export.
type Tables struct {
	Names          *Table[string]
	Metadata       *Table[MetadataEntry]
	Products       *Table[Product]
	Categories     *Table[Category]
	CatalogEntries *Table[[]id.Key]
}

// AssembledProduct is a current product joined with its metadata and
// resolved category paths.
type AssembledProduct struct {
	Product

	Metadata MetadataEntry

	// CategoryPaths are in catalog entry order; index i is column Category<i>.
	CategoryPaths []string
}

// Field looks up a report column key. Category columns take precedence over
// metadata, which takes precedence over product fields.
func (p AssembledProduct) Field(key string) (string, bool) {
	if i, ok := CategoryColumnIndex(key); ok && i < len(p.CategoryPaths) {
		return p.CategoryPaths[i], true
	}
	if v, ok := p.Metadata[key]; ok {
		return v, true
	}
	if v, ok := p.Product.field(key); ok {
		return v, true
	}
	return p.Attrs.Get(key)
}

// field serves the typed text columns. Status flags are left to Attrs so the
// report keeps the export's own spelling ("1", "true", ...).
func (p Product) field(key string) (string, bool) {
	var v string
	switch key {
	case AttrCode:
		v = p.Code
	case AttrHTMLDisplayName:
		v = p.HTMLDisplayName
	case AttrKeywords:
		v = p.Keywords
	default:
		return "", false
	}
	return v, v != "" || p.Attrs.Has(key)
}

// CategoryColumn names the i-th category path column.
func CategoryColumn(i int) string {
	return CategoryColumnPrefix + strconv.Itoa(i)
}

// CategoryColumnIndex parses "Category<i>" back into i.
func CategoryColumnIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, CategoryColumnPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return i, true
}

// MetadataKey prefixes a resolved field name.
func MetadataKey(name string) string {
	return MetadataPrefix + name
}
