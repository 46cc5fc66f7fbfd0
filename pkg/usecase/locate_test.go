package usecase_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cfpa-team/langpack/pkg/usecase"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	gt.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	nested := filepath.Join(root, "project", "assets", "mod")
	gt.NoError(t, os.MkdirAll(nested, 0755))

	t.Run("from the root itself", func(t *testing.T) {
		got, err := usecase.FindRoot(root, ".git")
		gt.NoError(t, err)
		gt.Value(t, got).Equal(root)
	})

	t.Run("from a nested directory", func(t *testing.T) {
		got, err := usecase.FindRoot(nested, ".git")
		gt.NoError(t, err)
		gt.Value(t, got).Equal(root)
	})

	t.Run("nearest ancestor wins", func(t *testing.T) {
		inner := filepath.Join(root, "project")
		gt.NoError(t, os.Mkdir(filepath.Join(inner, ".git"), 0755))
		t.Cleanup(func() { _ = os.Remove(filepath.Join(inner, ".git")) })

		got, err := usecase.FindRoot(nested, ".git")
		gt.NoError(t, err)
		gt.Value(t, got).Equal(inner)
	})

	t.Run("marker file is not a directory", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, ".marker"), []byte("x"), 0644))

		_, err := usecase.FindRoot(dir, ".marker")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, usecase.ErrMarkerNotFound))
	})

	t.Run("no marker up to the filesystem root", func(t *testing.T) {
		_, err := usecase.FindRoot(nested, ".no-such-marker-langpack")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, usecase.ErrMarkerNotFound))
	})

	t.Run("relative start is resolved", func(t *testing.T) {
		t.Chdir(nested)
		got, err := usecase.FindRoot(".", ".git")
		gt.NoError(t, err)

		want, err := filepath.EvalSymlinks(root)
		gt.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(got)
		gt.NoError(t, err)
		gt.Value(t, resolved).Equal(want)
	})
}
