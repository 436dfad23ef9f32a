package catalog

import "catreport/internal/infrastructure/xmldoc"

// fakeSource serves rows keyed by "<table>/<row>".
type fakeSource map[string][]xmldoc.Row

func (f fakeSource) Rows(table, row string) []xmldoc.Row {
	return f[table+"/"+row]
}

func row(attrs ...string) xmldoc.Row {
	r := xmldoc.Row{Attrs: make(map[string]string, len(attrs)/2)}
	for i := 0; i+1 < len(attrs); i += 2 {
		r.Attrs[attrs[i]] = attrs[i+1]
	}
	return r
}

// shoeShop is a small well-formed export.
func shoeShop() fakeSource {
	return fakeSource{
		TableNames + "/" + RowNames: {
			row(AttrNameID, "N1", AttrStringValue, "Expiry Date"),
			row(AttrNameID, "N2", AttrStringValue, "Team"),
		},
		TableMetadata + "/" + RowMetadata: {
			row(AttrProductRef, "P1", AttrFieldNameRef, "N1", AttrFieldValue, "01/02/2020"),
			row(AttrProductRef, "P1", AttrFieldNameRef, "N2"),
			row(AttrProductRef, "P2", AttrFieldNameRef, "N1", AttrFieldValue, "15/01/2020"),
		},
		TableProducts + "/" + RowProducts: {
			row(AttrProductID, "P1", AttrCode, "BOOT-1", AttrRetired, "1"),
			row(AttrProductID, "P2", AttrCode, "SHOE-2"),
			row(AttrProductID, "P3", AttrCode, "UNLINKED"),
		},
		TableCategories + "/" + RowCategories: {
			row(AttrCategoryID, "A", AttrDisplayName, "Shoes"),
			row(AttrCategoryID, "B", AttrDisplayName, "Boots", AttrParentCategoryRef, "A"),
			row(AttrCategoryID, "C", AttrDisplayName, "Sale"),
		},
		TableEntries + "/" + RowEntries: {
			row(AttrProductRef, "P1", AttrParentCategoryRef, "B"),
			row(AttrProductRef, "P2", AttrParentCategoryRef, "A"),
			row(AttrProductRef, "P1", AttrParentCategoryRef, "C"),
		},
	}
}
