package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gen")
	files := []outputFile{
		{name: SchemaFile, data: []byte("syntax = \"proto3\";\n")},
		{name: DescriptorFile, data: []byte("{}\n")},
	}

	require.NoError(t, writeOutputs(dir, files))
	assert.ElementsMatch(t, []string{SchemaFile, DescriptorFile}, dirNames(t, dir))

	for _, f := range files {
		info, err := os.Stat(outputPath(dir, f.name))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

		got, err := os.ReadFile(outputPath(dir, f.name))
		require.NoError(t, err)
		assert.Equal(t, f.data, got)
	}
}

func TestWriteOutputs_ReplaceFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(outputPath(dir, SchemaFile), []byte("previous"), 0644))

	// A non-empty directory in place of the descriptor cannot be replaced.
	blocked := outputPath(dir, DescriptorFile)
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "keep"), 0755))

	err := writeOutputs(dir, []outputFile{
		{name: SchemaFile, data: []byte("next")},
		{name: DescriptorFile, data: []byte("{}")},
	})
	require.Error(t, err)
	assert.True(t, IsIOError(err))

	// Files before the failure are replaced; no temporary files remain.
	got, err := os.ReadFile(outputPath(dir, SchemaFile))
	require.NoError(t, err)
	assert.Equal(t, "next", string(got))
	assert.ElementsMatch(t, []string{SchemaFile, DescriptorFile}, dirNames(t, dir))
}
