package reports

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"catreport/internal/core/apperror"
	"catreport/pkg/logger"
)

// Step is a named report transform. Apply must not mutate its input.
type Step struct {
	Name  string
	Apply func(Report) (Report, error)
}

// Pipeline applies steps in order. The header is never touched by the
// built-in steps.
type Pipeline []Step

// Run applies every step, stopping at the first error.
func (p Pipeline) Run(ctx context.Context, r Report) (Report, error) {
	log := logger.FromContext(ctx).WithComponent("postprocess")

	for _, step := range p {
		log.Infow("applying report step", "step", step.Name, "rows", len(r.Rows))

		next, err := step.Apply(r)
		if err != nil {
			return Report{}, fmt.Errorf("report step %s: %w", step.Name, err)
		}
		r = next
	}
	return r, nil
}

// Names lists the step names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}
	return names
}

// DefaultPipeline strips inline markup then sorts by the date column.
func DefaultPipeline(dateColumn int) Pipeline {
	return Pipeline{StripMarkup(), SortByDate(dateColumn)}
}

// markupPattern matches optional leading spaces, an open tag, content and a
// close tag. Only the leftmost match in a cell is removed.
var markupPattern = regexp.MustCompile(` *<.*>.*</.*>`)

// StripMarkup removes one inline markup fragment from every data cell.
func StripMarkup() Step {
	return Step{
		Name: "strip-markup",
		Apply: func(r Report) (Report, error) {
			out := r.Clone()
			for _, row := range out.Rows {
				for i, cell := range row {
					row[i] = StripCell(cell)
				}
			}
			return out, nil
		},
	}
}

// StripCell removes the first markup fragment in s, if any.
func StripCell(s string) string {
	loc := markupPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// SortByDate orders data rows by the DD/MM/YYYY date in column, most recent
// first. Rows with equal dates keep their relative order. Empty cells sort
// after every dated row. Displayed values are left unchanged.
func SortByDate(column int) Step {
	return Step{
		Name: "sort-by-date",
		Apply: func(r Report) (Report, error) {
			if column < 0 || column >= len(r.Header) {
				return Report{}, apperror.NewInvalidConfig(
					fmt.Sprintf("date column %d is outside the %d report columns", column, len(r.Header)))
			}

			type keyed struct {
				key string
				row []string
			}
			rows := make([]keyed, len(r.Rows))
			for i, row := range r.Rows {
				key, err := DateKey(row[column])
				if err != nil {
					// line numbers count the header as line 1
					return Report{}, apperror.NewMalformedDate(i+2, column, row[column]).WithCause(err)
				}
				rows[i] = keyed{key: key, row: row}
			}

			slices.SortStableFunc(rows, func(a, b keyed) int {
				return strings.Compare(b.key, a.key)
			})

			out := Report{Header: r.Header, Rows: make([][]string, len(rows))}
			for i, k := range rows {
				out.Rows[i] = k.row
			}
			return out.Clone(), nil
		},
	}
}

// DateKey converts DD/MM/YYYY into a sortable, zero-padded YYYY/MM/DD key.
// An empty or blank value yields "".
func DateKey(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("want 3 slash-separated parts, got %d", len(parts))
	}

	nums := make([]int, 3)
	for i, p := range parts {
		if !isDigits(p) {
			return "", fmt.Errorf("part %q is not a number", p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("part %q: %w", p, err)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", fmt.Errorf("day %d or month %d out of range", day, month)
	}

	return fmt.Sprintf("%04d/%02d/%02d", year, month, day), nil
}

// isDigits reports whether s is non-empty and only ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
