package usecase

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Pack runs the packaging pipeline: resolve root, collect, archive, then the enabled publishers
type Pack struct {
	layout  *model.Layout
	release interfaces.ReleaseUseCase
	cdn     interfaces.CDNUseCase
}

// PackOption configures the pipeline
type PackOption func(*Pack)

// WithRelease enables release publishing
func WithRelease(uc interfaces.ReleaseUseCase) PackOption {
	return func(p *Pack) {
		p.release = uc
	}
}

// WithCDN enables object storage publishing
func WithCDN(uc interfaces.CDNUseCase) PackOption {
	return func(p *Pack) {
		p.cdn = uc
	}
}

// NewPack creates a pipeline for layout. A nil layout means DefaultLayout.
func NewPack(layout *model.Layout, opts ...PackOption) *Pack {
	if layout == nil {
		layout = model.DefaultLayout()
	}
	p := &Pack{layout: layout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// List resolves the repository root from startDir and returns the entries that would be archived
func (p *Pack) List(ctx context.Context, startDir string) (string, []model.SourcePathEntry, error) {
	root, err := FindRoot(startDir, p.layout.Marker)
	if err != nil {
		return "", nil, err
	}

	entries, err := Collect(ctx, root, p.layout)
	if err != nil {
		return "", nil, err
	}

	return root, entries, nil
}

// Run builds the archive at the repository root and hands it to the enabled publishers
func (p *Pack) Run(ctx context.Context, startDir string) (*model.PackResult, error) {
	logger := ctxlog.From(ctx)
	started := time.Now()

	root, entries, err := p.List(ctx, startDir)
	if err != nil {
		return nil, err
	}

	logger.Info("Start packing!", "root", root)
	logger.Info("Total found files", "count", len(entries))

	archive, err := WriteArchive(ctx, filepath.Join(root, p.layout.ArchiveName), entries)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write archive")
	}
	logger.Info("Completed!",
		"path", archive.Path,
		"entries", len(archive.Entries),
		"size_bytes", archive.Size,
	)

	result := &model.PackResult{
		Root:    root,
		Archive: archive,
	}

	if p.release != nil {
		result.Release, err = p.release.Publish(ctx, archive)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to publish release")
		}
	} else {
		logger.Info("Release publishing disabled")
	}

	if p.cdn != nil {
		result.CDN, err = p.cdn.Publish(ctx, archive)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to publish to CDN")
		}
	} else {
		logger.Info("CDN publishing disabled")
	}

	result.Elapsed = time.Since(started)
	logger.Info("All works finished", "elapsed_ms", result.Elapsed.Milliseconds())

	return result, nil
}
