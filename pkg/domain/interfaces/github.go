package interfaces

import (
	"context"
	"os"

	"github.com/cfpa-team/langpack/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// CurrentUser returns the user the client is authenticated as
	CurrentUser(ctx context.Context) (*model.Actor, error)

	// GetUser looks up a user by login
	GetUser(ctx context.Context, login string) (*model.Actor, error)

	// GetRepository resolves a repository by owner and name
	GetRepository(ctx context.Context, owner, name string) (*model.Repository, error)

	// GetCommitMessage returns the message of the commit ref points to
	GetCommitMessage(ctx context.Context, repo *model.Repository, ref string) (string, error)

	// ListCommitComments returns the bodies of all comments on a commit, oldest first
	ListCommitComments(ctx context.Context, repo *model.Repository, sha string) ([]string, error)

	// CreateTag creates an annotated tag object and a refs/tags ref pointing at it
	CreateTag(ctx context.Context, repo *model.Repository, req *model.TagRequest) (*model.Tag, error)

	// CreateRelease creates a release for an existing or new tag
	CreateRelease(ctx context.Context, repo *model.Repository, req *model.ReleaseRequest) (*model.Release, error)

	// UploadReleaseAsset attaches file to a release
	UploadReleaseAsset(ctx context.Context, repo *model.Repository, releaseID int64, name, mediaType string, file *os.File) (*model.Asset, error)
}
