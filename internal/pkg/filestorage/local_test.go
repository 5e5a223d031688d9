package filestorage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "exports")
	ls, err := NewLocalStorage(dir, zerolog.Nop())
	require.NoError(t, err)
	require.DirExists(t, dir)
	return ls, dir
}

func TestSave(t *testing.T) {
	ls, dir := newStorage(t)

	info, err := ls.Save("reports/students.csv", func(w io.Writer) error {
		_, err := io.WriteString(w, "Name\nAlice\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "students.csv"), info.Path)
	assert.Equal(t, int64(len("Name\nAlice\n")), info.FileSize)

	content, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, "Name\nAlice\n", string(content))
}

func TestSave_FailedWriteKeepsPreviousFile(t *testing.T) {
	ls, dir := newStorage(t)

	_, err := ls.Save("students.csv", func(w io.Writer) error {
		_, err := io.WriteString(w, "old")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = ls.Save("students.csv", func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	content, err := os.ReadFile(filepath.Join(dir, "students.csv"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be removed")
}

func TestSave_RejectsEscapingNames(t *testing.T) {
	ls, _ := newStorage(t)

	for _, name := range []string{"", "../outside.csv", "/etc/passwd"} {
		_, err := ls.Save(name, func(io.Writer) error { return nil })
		assert.Error(t, err, name)
	}
}

func TestDelete(t *testing.T) {
	ls, dir := newStorage(t)

	_, err := ls.Save("a.csv", func(w io.Writer) error { return nil })
	require.NoError(t, err)

	require.NoError(t, ls.Delete("a.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "a.csv"))
	assert.NoError(t, ls.Delete("a.csv"))
	assert.Error(t, ls.Delete("../a.csv"))
}
