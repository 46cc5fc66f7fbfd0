package usecase

import (
	"context"

	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type cdnUseCase struct {
	store      interfaces.ObjectStore
	key        string
	refreshURL string
}

// NewCDN creates a CDNUseCase that uploads to store under key and refreshes refreshURL.
// An empty key falls back to the archive file name.
func NewCDN(store interfaces.ObjectStore, key, refreshURL string) interfaces.CDNUseCase {
	return &cdnUseCase{
		store:      store,
		key:        key,
		refreshURL: refreshURL,
	}
}

// Publish uploads the archive and then refreshes its public URL.
// The refresh response is logged as returned; its outcome is not checked.
func (uc *cdnUseCase) Publish(ctx context.Context, archive *model.ArchiveResult) (*model.CDNResult, error) {
	logger := ctxlog.From(ctx)

	key := uc.key
	if key == "" {
		key = archive.Name
	}

	uploaded, err := uc.store.Upload(ctx, key, archive.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload archive", goerr.V("key", key), goerr.V("path", archive.Path))
	}
	logger.Info("Uploaded archive to object storage", "key", key, "response", uploaded)

	result := &model.CDNResult{
		Key:      key,
		Upload:   uploaded,
		Endpoint: uc.refreshURL,
	}
	if uc.refreshURL == "" {
		logger.Warn("No refresh URL configured, skipping CDN refresh")
		return result, nil
	}

	refreshed, err := uc.store.Refresh(ctx, []string{uc.refreshURL})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to refresh CDN", goerr.V("url", uc.refreshURL))
	}
	logger.Info("Requested CDN refresh", "url", uc.refreshURL, "response", refreshed)
	result.Refresh = refreshed

	return result, nil
}
