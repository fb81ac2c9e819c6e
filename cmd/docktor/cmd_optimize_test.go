package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dockerignore")

	require.NoError(t, writeIfAbsent(path, "first\n"))
	require.NoError(t, writeIfAbsent(path, "second\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data), "existing files must never be overwritten")
}

func TestOptimizeOne_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte(
		"FROM ubuntu:latest\nRUN apt-get update && apt-get install -y nginx\nCMD [\"nginx\"]\n"), 0644))

	require.NoError(t, optimizeOne(path))

	optimized, err := os.ReadFile(path + ".optimized")
	require.NoError(t, err)
	assert.Contains(t, string(optimized), "ARG BUILDKIT_INLINE_CACHE=1")
	assert.Contains(t, string(optimized), "nginx \\")

	ignore, err := os.ReadFile(filepath.Join(dir, ".dockerignore"))
	require.NoError(t, err)
	assert.Contains(t, string(ignore), "node_modules")

	reqs, err := os.ReadFile(filepath.Join(dir, "requirements.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nginx\n", string(reqs))
}

func TestOptimizeOne_NoFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("RUN echo hi\n"), 0644))

	require.Error(t, optimizeOne(path))
	_, err := os.Stat(path + ".optimized")
	assert.True(t, os.IsNotExist(err), "failed rewrite must not leave partial output")
}
