package catalog

// Element names of the export, matched on local name.
const (
	TableNames      = "Names__Table"
	RowNames        = "Names__Row"
	TableMetadata   = "ProductMetadataFieldValues__Table"
	RowMetadata     = "ProductMetadataFieldValues__Row"
	TableProducts   = "Products__Table"
	RowProducts     = "Products__Row"
	TableCategories = "ProductCatalogCategories__Table"
	RowCategories   = "ProductCatalogCategories__Row"
	TableEntries    = "ProductCatalogEntries__Table"
	RowEntries      = "ProductCatalogEntries__Row"
)

// Attribute names.
const (
	AttrNameID      = "NameID__ID"
	AttrStringValue = "StringValue__STR"

	AttrProductRef   = "ProductID__IDREF"
	AttrFieldNameRef = "FieldNameID__IDREF"
	AttrFieldValue   = "FieldValue__STR"

	AttrProductID       = "ProductID__ID"
	AttrCode            = "Code__STR"
	AttrHTMLDisplayName = "HTML_DisplayName__STR"
	AttrKeywords        = "Keywords__STR"
	AttrRetired         = "b_IsRetired"
	AttrArchived        = "b_IsArchived"
	AttrDeleted         = "b_IsDeleted"

	AttrCategoryID        = "ProductCategoryID__ID"
	AttrParentCategoryRef = "ParentCategoryID__IDREF"
	AttrDisplayName       = "DisplayName__STR"
)

const (
	// IDSuffix marks the identifying attribute of a keyed row.
	IDSuffix = "__ID"

	// MetadataPrefix namespaces resolved metadata field names so they never
	// collide with raw product attributes.
	MetadataPrefix = "metadata_"

	// CategoryColumnPrefix names the resolved category path columns
	// Category0, Category1, ...
	CategoryColumnPrefix = "Category"

	// PathSeparator joins category display names into a path.
	PathSeparator = " > "
)
