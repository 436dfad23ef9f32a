package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorIncludesSortedDetails(t *testing.T) {
	err := NewUnresolvedReference("Categories", "C9", "C2")

	assert.Equal(t,
		`UNRESOLVED_REFERENCE: Categories reference "C9" does not resolve [from=C2 ref=C9 table=Categories]`,
		err.Error())
}

func TestAppError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("write report: %w", NewIO("write", "out.csv", cause))

	assert.True(t, IsCode(err, CodeIO))
	assert.False(t, IsCode(err, CodeMalformedDate))
	assert.ErrorIs(t, err, cause)

	appErr, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Contains(t, appErr.Error(), "caused by: disk full")
}

func TestAppError_WithDetail(t *testing.T) {
	err := NewInvalidConfig("bad column").WithDetail("index", 3)
	assert.Equal(t, 3, err.Details["index"])
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"missing input", NewMissingInput(), 2},
		{"config", NewInvalidConfig("x"), 2},
		{"data", NewMalformedDate(1, 2, "x"), 1},
		{"plain", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestNewCategoryCycle(t *testing.T) {
	err := NewCategoryCycle([]string{"A", "B", "A"})
	assert.Equal(t, CodeCategoryCycle, err.Code)
	assert.Equal(t, "A -> B -> A", err.Details["cycle"])
}
