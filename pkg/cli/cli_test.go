package cli_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cfpa-team/langpack/pkg/cli"
)

// clearCredentials keeps credentials from the surrounding environment out of the run
func clearCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LANGPACK_GITHUB_TOKEN", "repo_token",
		"LANGPACK_GITHUB_APP_ID", "LANGPACK_GITHUB_INSTALLATION_ID",
		"LANGPACK_GITHUB_PRIVATE_KEY", "LANGPACK_GITHUB_PRIVATE_KEY_FILE",
		"LANGPACK_QINIU_ACCESS_KEY", "ak",
		"LANGPACK_QINIU_SECRET_KEY", "sk",
		"LANGPACK_GCS_BUCKET", "LANGPACK_STORAGE_BACKEND",
		"LANGPACK_SENTRY_DSN", "LANGPACK_LAYOUT", "LANGPACK_DIR",
	} {
		t.Setenv(key, "")
		gt.NoError(t, os.Unsetenv(key))
	}
}

func newRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := []string{
		"project/assets/a/lang/zh_cn.lang",
		"project/assets/b/lang/zh_cn.lang",
		"project/pack.png",
		"project/pack.mcmeta",
		"README.md",
		"LICENSE",
		"database/asset_map.json",
	}
	gt.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		gt.NoError(t, os.WriteFile(path, []byte(f), 0644))
	}
	return root
}

func TestRun_LocalArchiveWithoutCredentials(t *testing.T) {
	clearCredentials(t)
	root := newRepo(t)

	err := cli.Run(context.Background(), []string{"langpack", "--dir", filepath.Join(root, "project", "assets")})
	gt.NoError(t, err)

	r, err := zip.OpenReader(filepath.Join(root, "Minecraft-Mod-Language-Modpack.zip"))
	gt.NoError(t, err)
	defer r.Close()
	gt.A(t, r.File).Length(7)
}

func TestRun_FromWorkingDirectory(t *testing.T) {
	clearCredentials(t)
	root := newRepo(t)
	t.Chdir(filepath.Join(root, "project"))

	gt.NoError(t, cli.Run(context.Background(), []string{"langpack"}))

	_, err := os.Stat(filepath.Join(root, "Minecraft-Mod-Language-Modpack.zip"))
	gt.NoError(t, err)
}

func TestRun_List(t *testing.T) {
	clearCredentials(t)
	root := newRepo(t)

	gt.NoError(t, cli.Run(context.Background(), []string{"langpack", "--dir", root, "list"}))

	_, err := os.Stat(filepath.Join(root, "Minecraft-Mod-Language-Modpack.zip"))
	gt.True(t, os.IsNotExist(err))
}

func TestRun_Errors(t *testing.T) {
	clearCredentials(t)

	t.Run("invalid log level", func(t *testing.T) {
		root := newRepo(t)
		err := cli.Run(context.Background(), []string{"langpack", "--log-level", "verbose", "--dir", root})
		gt.Error(t, err)
	})

	t.Run("release enabled without sha", func(t *testing.T) {
		root := newRepo(t)
		t.Setenv("LANGPACK_GITHUB_TOKEN", "token")
		t.Setenv("LANGPACK_GITHUB_SHA", "")
		t.Setenv("sha", "")
		t.Setenv("GITHUB_SHA", "")

		err := cli.Run(context.Background(), []string{"langpack", "--dir", root})
		gt.Error(t, err)

		// validation happens before any work
		_, statErr := os.Stat(filepath.Join(root, "Minecraft-Mod-Language-Modpack.zip"))
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("unknown storage backend", func(t *testing.T) {
		root := newRepo(t)
		err := cli.Run(context.Background(), []string{"langpack", "--dir", root, "--storage-backend", "GCS"})
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("unknown storage backend")

		_, statErr := os.Stat(filepath.Join(root, "Minecraft-Mod-Language-Modpack.zip"))
		gt.True(t, os.IsNotExist(statErr))
	})
}
