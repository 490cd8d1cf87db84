package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.h"), "b")
	writeFile(t, filepath.Join(root, "a", "a.h"), "a")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")

	var walkErr error
	files := slices.Collect(fs.NewWalker().WalkFiles(root, &walkErr))

	require.NoError(t, walkErr)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "a.h"),
		filepath.Join(root, "b.h"),
	}, files)
}

func TestWalker_WalkFilesMissingRoot(t *testing.T) {
	var walkErr error
	files := slices.Collect(fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), &walkErr))

	assert.Empty(t, files)
	assert.Error(t, walkErr)
}

func TestWalker_CopyTree(t *testing.T) {
	src := filepath.Join(t.TempDir(), "shared")
	writeFile(t, filepath.Join(src, "include", "hook.hpp"), "#pragma once")
	writeFile(t, filepath.Join(src, "utils.hpp"), "// utils")

	dst := filepath.Join(t.TempDir(), "src", "shared")
	require.NoError(t, fs.NewWalker().Copy(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "include", "hook.hpp"))
	require.NoError(t, err)
	assert.Equal(t, "#pragma once", string(got))
	assert.FileExists(t, filepath.Join(dst, "utils.hpp"))
}

func TestWalker_CopyFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "libhook.so")
	writeFile(t, src, "ELF")

	dst := filepath.Join(t.TempDir(), "lib", "libhook_1_0_0.so")
	require.NoError(t, fs.NewWalker().Copy(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "ELF", string(got))
}

func TestWalker_CopyMissing(t *testing.T) {
	err := fs.NewWalker().Copy(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "dst"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStagingFailed)
}

func TestDigester_Digest(t *testing.T) {
	d := fs.NewDigester(fs.NewWalker())

	first := filepath.Join(t.TempDir(), "entry")
	writeFile(t, filepath.Join(first, "src", "depot.json"), `{"info":{}}`)
	writeFile(t, filepath.Join(first, "lib", "libhook.so"), "ELF")

	second := filepath.Join(t.TempDir(), "moved")
	require.NoError(t, fs.NewWalker().Copy(first, second))

	a, err := d.Digest(filepath.Join(first, "src"), filepath.Join(first, "lib"))
	require.NoError(t, err)
	assert.Len(t, a, 16)

	b, err := d.Digest(filepath.Join(second, "src"), filepath.Join(second, "lib"))
	require.NoError(t, err)
	assert.Equal(t, a, b, "digest must not depend on the tree location")

	writeFile(t, filepath.Join(second, "lib", "libhook.so"), "ELF2")
	c, err := d.Digest(filepath.Join(second, "src"), filepath.Join(second, "lib"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestDigester_DigestMissingPath(t *testing.T) {
	d := fs.NewDigester(fs.NewWalker())
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "depot.json"), "{}")

	withoutLib, err := d.Digest(filepath.Join(root, "src"), filepath.Join(root, "lib"))
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "lib", "libhook.so"), "ELF")
	afterLib, err := d.Digest(filepath.Join(root, "src"), filepath.Join(root, "lib"))
	require.NoError(t, err)

	assert.NotEqual(t, withoutLib, afterLib)
}

func TestDigester_FileHash(t *testing.T) {
	d := fs.NewDigester(fs.NewWalker())
	path := filepath.Join(t.TempDir(), "a")
	writeFile(t, path, "content")

	a, err := d.FileHash(path)
	require.NoError(t, err)
	b, err := d.FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = d.FileHash(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "depot.repository.json")

	require.NoError(t, fs.WriteFileAtomic(path, []byte("first"), domain.FilePerm))
	require.NoError(t, fs.WriteFileAtomic(path, []byte("second"), domain.FilePerm))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}
