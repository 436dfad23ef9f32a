package catalog

import (
	"catreport/internal/core/apperror"
	"catreport/internal/core/id"
)

// Assembly is the result of joining the tables.
type Assembly struct {
	// Products are the current products in product table order.
	Products []AssembledProduct

	// OrphanEntries are catalog entry product ids with no product row.
	OrphanEntries []id.Key
}

// Assemble selects products that have at least one catalog entry, merges in
// their metadata and attaches the resolved path of each linked category.
// Inclusion depends on catalog linkage only.
func Assemble(t *Tables, paths Paths) (*Assembly, error) {
	out := &Assembly{}

	for key, product := range t.Products.All() {
		linked, ok := t.CatalogEntries.Get(key)
		if !ok {
			continue
		}

		ap := AssembledProduct{Product: product}
		if md, ok := t.Metadata.Get(key); ok {
			ap.Metadata = md
		}

		ap.CategoryPaths = make([]string, 0, len(linked))
		for _, category := range linked {
			path, ok := paths[category]
			if !ok {
				return nil, apperror.NewUnresolvedReference(TableCategories, category.String(), key.String()).
					WithDetail("via", TableEntries)
			}
			ap.CategoryPaths = append(ap.CategoryPaths, path)
		}

		out.Products = append(out.Products, ap)
	}

	for key := range t.CatalogEntries.All() {
		if !t.Products.Has(key) {
			out.OrphanEntries = append(out.OrphanEntries, key)
		}
	}

	return out, nil
}

// StatusCounts counts current products carrying each status flag.
func (a *Assembly) StatusCounts() (retired, archived, deleted int) {
	for _, p := range a.Products {
		if p.Retired {
			retired++
		}
		if p.Archived {
			archived++
		}
		if p.Deleted {
			deleted++
		}
	}
	return retired, archived, deleted
}

// MaxCategories returns the largest number of category paths on any product.
func (a *Assembly) MaxCategories() int {
	n := 0
	for _, p := range a.Products {
		if len(p.CategoryPaths) > n {
			n = len(p.CategoryPaths)
		}
	}
	return n
}
