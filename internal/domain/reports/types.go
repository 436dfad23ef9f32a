// Package reports builds the flat product report from assembled catalog
// records and applies its presentation transforms.
package reports

import "time"

// Column maps an output column to the record field it is read from.
type Column struct {
	Display string `yaml:"display" json:"display"`
	Key     string `yaml:"key" json:"key"`
}

// Record is anything a report row can be read from.
type Record interface {
	Field(key string) (string, bool)
}

// Report is a header plus data rows. Every row has len(Header) cells.
type Report struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of rows including the header.
func (r Report) Len() int {
	return len(r.Rows) + 1
}

// Table returns header-first rows for serializers.
func (r Report) Table() [][]string {
	out := make([][]string, 0, r.Len())
	out = append(out, r.Header)
	out = append(out, r.Rows...)
	return out
}

// Clone deep-copies the report so transforms never alias their input.
func (r Report) Clone() Report {
	out := Report{
		Header: append([]string(nil), r.Header...),
		Rows:   make([][]string, len(r.Rows)),
	}
	for i, row := range r.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Summary describes a finished run.
type Summary struct {
	Products        int           `json:"products"`
	CurrentProducts int           `json:"currentProducts"`
	Categories      int           `json:"categories"`
	CatalogEntries  int           `json:"catalogEntries"`
	OrphanEntries   int           `json:"orphanEntries"`
	MaxCategories   int           `json:"maxCategories"`

	// Status flag counts among current products. Flags never filter.
	Retired  int `json:"retired"`
	Archived int `json:"archived"`
	Deleted  int `json:"deleted"`

	Duration        time.Duration `json:"duration"`
}

// Result is the output of Service.Generate.
type Result struct {
	Report  Report
	Summary Summary
}

// DefaultColumns is the standard catalog report layout.
func DefaultColumns() []Column {
	return []Column{
		{Display: "Code", Key: "Code__STR"},
		{Display: "DisplayName", Key: "HTML_DisplayName__STR"},
		{Display: "Expiry Date", Key: "metadata_Expiry Date"},
		{Display: "Document Type", Key: "metadata_Document Type"},
		{Display: "Team", Key: "metadata_Team"},
		{Display: "Contact", Key: "metadata_Contact"},
		{Display: "Key Words", Key: "Keywords__STR"},
		{Display: "Retired?", Key: "b_IsRetired"},
		{Display: "Archived?", Key: "b_IsArchived"},
		{Display: "Deleted?", Key: "b_IsDeleted"},
		{Display: "Category 0", Key: "Category0"},
		{Display: "Category 1", Key: "Category1"},
		{Display: "Category 2", Key: "Category2"},
		{Display: "Category 3", Key: "Category3"},
	}
}

// DefaultDateColumn is the index of "Expiry Date" in DefaultColumns.
const DefaultDateColumn = 2
