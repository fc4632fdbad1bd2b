package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLabels_MostSpecificFirst(t *testing.T) {
	labels := DefaultLabels()

	assert.Equal(t, "Date of Birth", labels.DateOfBirth[0])
	assert.Equal(t, "Full Name", labels.Name[0])
	assert.Equal(t, "Risk Level", labels.RiskLevel[0])
}

func TestLoadLabels_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name:\n  - Nom complet\n"), 0o644))

	labels, err := LoadLabels(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Nom complet"}, labels.Name)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultLabels().DateOfBirth, labels.DateOfBirth)
}

func TestLoadLabels_MissingFile(t *testing.T) {
	_, err := LoadLabels(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadLabels_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed"), 0o644))

	_, err := LoadLabels(path)
	assert.Error(t, err)
}
