package usecase

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Collect lists the localization files under the content directory followed by the layout's fixed extras.
// Extras are appended as-is, so a missing extra is only detected when the archive is written.
func Collect(ctx context.Context, root string, layout *model.Layout) ([]model.SourcePathEntry, error) {
	logger := ctxlog.From(ctx)
	contentDir := filepath.Join(root, layout.ContentDir)

	var entries []model.SourcePathEntry
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), layout.Suffix) {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		entries = append(entries, model.SourcePathEntry{
			Source: path,
			Dest:   filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to enumerate content directory", goerr.V("dir", contentDir))
	}

	logger.Debug("Discovered localization files",
		"content_dir", contentDir,
		"suffix", layout.Suffix,
		"count", len(entries),
	)

	for _, extra := range layout.Extras {
		entries = append(entries, model.SourcePathEntry{
			Source: filepath.Join(root, filepath.FromSlash(extra.Source)),
			Dest:   extra.Dest,
		})
	}

	// Colliding destinations are kept; the zip ends up with two entries of the same name.
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if prev, ok := seen[e.Dest]; ok {
			logger.Warn("Duplicate archive destination",
				"dest", e.Dest,
				"first", prev,
				"second", e.Source,
			)
			continue
		}
		seen[e.Dest] = e.Source
	}

	return entries, nil
}
