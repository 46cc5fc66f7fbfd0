package usecase_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/cfpa-team/langpack/pkg/usecase"
)

func TestWriteArchive(t *testing.T) {
	root := newRepo(t, "project/a/zh_cn.lang", "project/b/zh_cn.lang")
	ctx := context.Background()

	entries, err := usecase.Collect(ctx, root, model.DefaultLayout())
	gt.NoError(t, err)

	dest := filepath.Join(root, "out.zip")
	result, err := usecase.WriteArchive(ctx, dest, entries)
	gt.NoError(t, err)

	gt.Value(t, result.Path).Equal(dest)
	gt.Value(t, result.Name).Equal("out.zip")
	gt.A(t, result.Entries).Length(7)
	gt.Number(t, result.Size).Greater(int64(0))
	gt.Number(t, result.RawSize).Greater(int64(0))

	contents := readZip(t, dest)
	gt.Value(t, len(contents)).Equal(7)
	gt.Value(t, contents["a/zh_cn.lang"]).Equal("content of project/a/zh_cn.lang")
	gt.Value(t, contents["b/zh_cn.lang"]).Equal("content of project/b/zh_cn.lang")
	gt.Value(t, contents["pack.png"]).Equal("content of project/pack.png")
	gt.Value(t, contents["pack.mcmeta"]).Equal("content of project/pack.mcmeta")
	gt.Value(t, contents["README.md"]).Equal("content of README.md")
	gt.Value(t, contents["LICENSE"]).Equal("content of LICENSE")
	gt.Value(t, contents["assets/i18nmod/asset_map/asset_map.json"]).Equal("content of database/asset_map.json")
}

func TestWriteArchive_UsesDeflate(t *testing.T) {
	root := newRepo(t)
	dest := filepath.Join(root, "out.zip")

	_, err := usecase.WriteArchive(context.Background(), dest, []model.SourcePathEntry{
		{Source: filepath.Join(root, "LICENSE"), Dest: "LICENSE"},
	})
	gt.NoError(t, err)

	r, err := zip.OpenReader(dest)
	gt.NoError(t, err)
	defer r.Close()

	gt.A(t, r.File).Length(1)
	gt.Value(t, r.File[0].Method).Equal(zip.Deflate)
}

func TestWriteArchive_ReplacesExistingArchive(t *testing.T) {
	root := newRepo(t, "project/a/zh_cn.lang", "project/b/zh_cn.lang", "project/c/zh_cn.lang")
	ctx := context.Background()
	dest := filepath.Join(root, "out.zip")

	entries, err := usecase.Collect(ctx, root, model.DefaultLayout())
	gt.NoError(t, err)
	_, err = usecase.WriteArchive(ctx, dest, entries)
	gt.NoError(t, err)
	gt.A(t, zipNames(t, dest)).Length(8)

	gt.NoError(t, os.RemoveAll(filepath.Join(root, "project", "c")))
	gt.NoError(t, os.WriteFile(filepath.Join(root, "project", "a", "zh_cn.lang"), []byte("updated"), 0644))

	entries, err = usecase.Collect(ctx, root, model.DefaultLayout())
	gt.NoError(t, err)
	_, err = usecase.WriteArchive(ctx, dest, entries)
	gt.NoError(t, err)

	contents := readZip(t, dest)
	gt.Value(t, len(contents)).Equal(7)
	gt.Value(t, contents["a/zh_cn.lang"]).Equal("updated")
	_, hasRemoved := contents["c/zh_cn.lang"]
	gt.False(t, hasRemoved)
}

func TestWriteArchive_MissingSourceAborts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "present.txt")
	dest := filepath.Join(root, "out.zip")

	_, err := usecase.WriteArchive(context.Background(), dest, []model.SourcePathEntry{
		{Source: filepath.Join(root, "present.txt"), Dest: "present.txt"},
		{Source: filepath.Join(root, "missing.txt"), Dest: "missing.txt"},
	})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to add archive entry")

	// the partial archive is left behind
	_, err = os.Stat(dest)
	gt.NoError(t, err)
}

func TestWriteArchive_UnwritableDestination(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "present.txt")

	_, err := usecase.WriteArchive(context.Background(), filepath.Join(root, "no", "such", "dir", "out.zip"), []model.SourcePathEntry{
		{Source: filepath.Join(root, "present.txt"), Dest: "present.txt"},
	})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to create archive")
}
