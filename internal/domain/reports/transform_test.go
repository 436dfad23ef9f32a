package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catreport/internal/core/apperror"
	"catreport/pkg/logger"
)

func quietCtx() context.Context {
	return logger.WithLogger(context.Background(), logger.Nop())
}

func TestStripCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no markup", "Plain value", "Plain value"},
		{"trailing fragment", "Boots <b>new</b>", "Boots"},
		{"leading spaces consumed", "Boots   <i>x</i> sale", "Boots sale"},
		{"unclosed tag left alone", "a <b> c", "a <b> c"},
		{"empty", "", ""},
		{"greedy match", "x <b>1</b> y <i>2</i> z", "x z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCell(tt.in))
		})
	}
}

func TestStripMarkup_LeavesHeaderAndInput(t *testing.T) {
	in := Report{
		Header: []string{"Name <b>x</b>"},
		Rows:   [][]string{{"Boots <b>new</b>"}},
	}

	out, err := StripMarkup().Apply(in)
	require.NoError(t, err)

	assert.Equal(t, "Name <b>x</b>", out.Header[0])
	assert.Equal(t, "Boots", out.Rows[0][0])
	assert.Equal(t, "Boots <b>new</b>", in.Rows[0][0])
}

func TestDateKey(t *testing.T) {
	key, err := DateKey("1/2/2020")
	require.NoError(t, err)
	assert.Equal(t, "2020/02/01", key)

	key, err = DateKey("  ")
	require.NoError(t, err)
	assert.Equal(t, "", key)

	malformed := []string{
		"2020-01-01", "01/13/2020", "32/01/2020", "aa/01/2020", "01/02",
		"+1/02/2020", "01/-2/2020", "01/02/+2020", "01/ 2/2020", "//", "01/02/2020/",
	}
	for _, bad := range malformed {
		_, err := DateKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestSortByDate_MostRecentFirst(t *testing.T) {
	in := Report{
		Header: []string{"Code", "Expiry"},
		Rows: [][]string{
			{"A", "15/01/2020"},
			{"B", "01/02/2020"},
			{"C", "31/12/2019"},
		},
	}

	out, err := SortByDate(1).Apply(in)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"B", "01/02/2020"},
		{"A", "15/01/2020"},
		{"C", "31/12/2019"},
	}, out.Rows)
	assert.Equal(t, "A", in.Rows[0][0])
}

func TestSortByDate_StableAndEmptyLast(t *testing.T) {
	in := Report{
		Header: []string{"Code", "Expiry"},
		Rows: [][]string{
			{"E1", ""},
			{"A", "01/01/2021"},
			{"B", "1/1/2021"},
			{"E2", ""},
			{"C", "02/01/2021"},
		},
	}

	out, err := SortByDate(1).Apply(in)
	require.NoError(t, err)

	codes := make([]string, len(out.Rows))
	for i, r := range out.Rows {
		codes[i] = r[0]
	}
	assert.Equal(t, []string{"C", "A", "B", "E1", "E2"}, codes)
	assert.Equal(t, "1/1/2021", out.Rows[2][1])
}

func TestSortByDate_MalformedDate(t *testing.T) {
	in := Report{
		Header: []string{"Code", "Expiry"},
		Rows:   [][]string{{"A", "01/01/2021"}, {"B", "soon"}},
	}

	_, err := SortByDate(1).Apply(in)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeMalformedDate, appErr.Code)
	assert.Equal(t, 3, appErr.Details["row"])
	assert.Equal(t, 1, appErr.Details["column"])
	assert.Contains(t, err.Error(), `"soon"`)
}

func TestSortByDate_SignedPartIsMalformed(t *testing.T) {
	in := Report{
		Header: []string{"Code", "Expiry"},
		Rows:   [][]string{{"A", "+1/02/2020"}},
	}

	_, err := SortByDate(1).Apply(in)
	assert.True(t, apperror.IsCode(err, apperror.CodeMalformedDate))
}

func TestSortByDate_ColumnOutOfRange(t *testing.T) {
	_, err := SortByDate(5).Apply(Report{Header: []string{"A"}})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidConfig))
}

func TestPipeline_RunsStepsInOrder(t *testing.T) {
	var seen []string
	step := func(name string) Step {
		return Step{Name: name, Apply: func(r Report) (Report, error) {
			seen = append(seen, name)
			return r, nil
		}}
	}

	p := Pipeline{step("one"), step("two")}
	_, err := p.Run(quietCtx(), Report{})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, seen)
	assert.Equal(t, []string{"one", "two"}, p.Names())
}

func TestPipeline_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	p := Pipeline{
		{Name: "fail", Apply: func(r Report) (Report, error) { return Report{}, boom }},
		{Name: "never", Apply: func(r Report) (Report, error) { called = true; return r, nil }},
	}

	_, err := p.Run(quietCtx(), Report{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "report step fail")
	assert.False(t, called)
}

func TestDefaultPipeline(t *testing.T) {
	assert.Equal(t, []string{"strip-markup", "sort-by-date"}, DefaultPipeline(DefaultDateColumn).Names())
}
