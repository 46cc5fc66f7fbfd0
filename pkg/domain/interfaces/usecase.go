package interfaces

import (
	"context"

	"github.com/cfpa-team/langpack/pkg/domain/model"
)

// ReleaseUseCase publishes a built archive as a GitHub release
type ReleaseUseCase interface {
	// Publish tags the commit, creates a release and uploads the archive as its asset
	Publish(ctx context.Context, archive *model.ArchiveResult) (*model.ReleaseResult, error)
}

// CDNUseCase publishes a built archive to object storage
type CDNUseCase interface {
	// Publish uploads the archive and refreshes its public URL
	Publish(ctx context.Context, archive *model.ArchiveResult) (*model.CDNResult, error)
}
