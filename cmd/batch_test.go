package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCustomerCSV(t *testing.T) {
	path := writeCSV(t, "Jane Cooper\nJohn Smith\n")

	names, err := readCustomerCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Cooper", "John Smith"}, names)
}

func TestReadCustomerCSV_SkipsHeader(t *testing.T) {
	path := writeCSV(t, "Name\nJane Cooper\n")

	names, err := readCustomerCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Cooper"}, names)
}

func TestReadCustomerCSV_ExtraColumnsIgnored(t *testing.T) {
	path := writeCSV(t, "Jane Cooper,extra,columns\nJohn Smith,more\n")

	names, err := readCustomerCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Cooper", "John Smith"}, names)
}

func TestReadCustomerCSV_BlankLinesSkipped(t *testing.T) {
	path := writeCSV(t, "Jane Cooper\n   \n\nJohn Smith\n")

	names, err := readCustomerCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Cooper", "John Smith"}, names)
}

func TestReadCustomerCSV_Empty(t *testing.T) {
	path := writeCSV(t, "")

	_, err := readCustomerCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no customer names")
}

func TestReadCustomerCSV_MissingFile(t *testing.T) {
	_, err := readCustomerCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
