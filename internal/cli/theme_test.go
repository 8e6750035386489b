package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	assert.NoError(t, validateDate("2026-02-27"))
	assert.NoError(t, validateDate(" 2026-02-27 "))
	assert.Error(t, validateDate("27/02/2026"))
	assert.Error(t, validateDate("2026-02-30"))
	assert.Error(t, validateDate(""))
}

func TestValidateContractPath(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "Contract.PDF")
	saved := filepath.Join(dir, "analysis.json")
	notes := filepath.Join(dir, "notes.txt")
	for _, p := range []string{pdf, saved, notes} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	folder := filepath.Join(dir, "archive.pdf")
	require.NoError(t, os.Mkdir(folder, 0o755))

	assert.NoError(t, validateContractPath(pdf))
	assert.NoError(t, validateContractPath(saved))
	assert.Error(t, validateContractPath(""))
	assert.Error(t, validateContractPath(notes))
	assert.Error(t, validateContractPath(filepath.Join(dir, "missing.pdf")))
	assert.Error(t, validateContractPath(folder))
}

func TestNoticeHuhTheme(t *testing.T) {
	assert.NotNil(t, noticeHuhTheme())
}
