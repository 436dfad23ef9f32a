package reports

// Build projects records through cols. Absent fields become empty cells.
// The result has len(records) data rows, each with len(cols) cells.
func Build[R Record](records []R, cols []Column) Report {
	r := Report{
		Header: Header(cols),
		Rows:   make([][]string, 0, len(records)),
	}

	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := rec.Field(c.Key); ok {
				row[i] = v
			}
		}
		r.Rows = append(r.Rows, row)
	}

	return r
}

// Header returns the display names of cols in order.
func Header(cols []Column) []string {
	h := make([]string, len(cols))
	for i, c := range cols {
		h[i] = c.Display
	}
	return h
}
