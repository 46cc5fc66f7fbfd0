package usecase_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/m-mizutani/gt"
)

// writeTree creates files relative to root with their path as content
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		gt.NoError(t, os.WriteFile(path, []byte("content of "+f), 0644))
	}
}

// newRepo creates a repository tree with a marker directory and the default extras
func newRepo(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	gt.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	writeTree(t, root,
		"project/pack.png",
		"project/pack.mcmeta",
		"README.md",
		"LICENSE",
		"database/asset_map.json",
	)
	writeTree(t, root, files...)
	return root
}

// readZip returns entry name to content
func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	gt.NoError(t, err)
	defer r.Close()

	entries := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		gt.NoError(t, err)
		data, err := io.ReadAll(rc)
		gt.NoError(t, err)
		gt.NoError(t, rc.Close())
		entries[f.Name] = string(data)
	}
	return entries
}

func zipNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	gt.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
