package csvout

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	day := time.Date(2021, time.March, 7, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "mmstore_report_2021_03_07.csv", FileName("", day))
	assert.Equal(t, "weekly_2021_03_07.csv", FileName("weekly", day))
}

func TestEncode_Quoting(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, [][]string{
		{"Code", "DisplayName"},
		{"A-1", `Boots, "hiking"`},
		{"A-2", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "Code,DisplayName\nA-1,\"Boots, \"\"hiking\"\"\"\nA-2,\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	require.NoError(t, WriteFile(path, [][]string{{"H"}, {"v"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "H\nv\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteFile_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	require.NoError(t, WriteFile(path, [][]string{{"new"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")

	err := WriteFile(path, [][]string{{"H"}})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
