package usecase

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// TagPrefix is prepended to the UTC timestamp to build snapshot tag names
	TagPrefix = "汉化资源包-Snapshot-"

	// TagTimeFormat keeps tag names unique across runs on the same day
	TagTimeFormat = "20060102150405"

	// DefaultRepositoryName is used when the target repository is not configured
	DefaultRepositoryName = "Minecraft-Mod-Language-Package"

	archiveMediaType = "application/zip"
)

// ReleaseTarget identifies what to release
type ReleaseTarget struct {
	Owner string // Defaults to the authenticated user's login
	Repo  string // Defaults to DefaultRepositoryName
	Actor string // Login of the user who triggered the run, recorded as tagger
	Ref   string // Ref whose commit message names the release
	SHA   string // Commit the tag points at and whose comments form the message
}

type releaseUseCase struct {
	githubClient interfaces.GitHubClient
	target       ReleaseTarget
	now          func() time.Time
}

// ReleaseOption configures the release use case
type ReleaseOption func(*releaseUseCase)

// WithClock overrides the clock used for tag names and tagger dates
func WithClock(now func() time.Time) ReleaseOption {
	return func(uc *releaseUseCase) {
		uc.now = now
	}
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(githubClient interfaces.GitHubClient, target ReleaseTarget, opts ...ReleaseOption) interfaces.ReleaseUseCase {
	uc := &releaseUseCase{
		githubClient: githubClient,
		target:       target,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// TagName returns the snapshot tag name for t
func TagName(t time.Time) string {
	return TagPrefix + t.UTC().Format(TagTimeFormat)
}

// Publish tags the commit, creates a release and uploads the archive as its asset.
// Steps run in order and nothing is rolled back when a later step fails.
func (uc *releaseUseCase) Publish(ctx context.Context, archive *model.ArchiveResult) (*model.ReleaseResult, error) {
	logger := ctxlog.From(ctx)

	user, err := uc.githubClient.CurrentUser(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get authenticated user")
	}
	logger.Info("Authenticated to GitHub", "login", user.Login)

	actor, err := uc.githubClient.GetUser(ctx, uc.target.Actor)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get actor", goerr.V("actor", uc.target.Actor))
	}

	owner := uc.target.Owner
	if owner == "" {
		owner = user.Login
	}
	name := uc.target.Repo
	if name == "" {
		name = DefaultRepositoryName
	}

	repo, err := uc.githubClient.GetRepository(ctx, owner, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("owner", owner), goerr.V("repo", name))
	}

	commitMessage, err := uc.githubClient.GetCommitMessage(ctx, repo, uc.target.Ref)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get commit", goerr.V("ref", uc.target.Ref))
	}

	comments, err := uc.githubClient.ListCommitComments(ctx, repo, uc.target.SHA)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commit comments", goerr.V("sha", uc.target.SHA))
	}

	now := uc.now().UTC()
	meta := &model.ReleaseMetadata{
		TagName:       TagName(now),
		CommitMessage: commitMessage,
		Comments:      strings.Join(comments, "\n"),
		Actor:         actor,
	}

	logger.Info("Assembled release metadata",
		"repository", repo.FullName(),
		"tag_name", meta.TagName,
		"actor", actor.Login,
		"comment_count", len(comments),
	)

	tag, err := uc.githubClient.CreateTag(ctx, repo, &model.TagRequest{
		Name:      meta.TagName,
		Message:   meta.Comments,
		ObjectSHA: uc.target.SHA,
		Tagger:    actor,
		TaggedAt:  now,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create tag", goerr.V("tag_name", meta.TagName))
	}
	logger.Info("Created a tag", "tag", tag.Name, "sha", tag.SHA)

	release, err := uc.githubClient.CreateRelease(ctx, repo, &model.ReleaseRequest{
		TagName:         meta.TagName,
		TargetCommitish: uc.target.SHA,
		Name:            ReleaseName(meta),
		Body:            meta.Comments,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release", goerr.V("tag_name", meta.TagName))
	}
	logger.Info("Created release", "id", release.ID, "url", release.HTMLURL)

	asset, err := uc.uploadArchive(ctx, repo, release, archive)
	if err != nil {
		return nil, err
	}
	logger.Info("Uploaded release asset",
		"name", asset.Name,
		"size_bytes", asset.Size,
		"url", asset.BrowserDownloadURL,
	)

	return &model.ReleaseResult{
		Metadata: meta,
		Tag:      tag,
		Release:  release,
		Asset:    asset,
	}, nil
}

// ReleaseName combines the tag name with the commit message
func ReleaseName(meta *model.ReleaseMetadata) string {
	return meta.TagName + ":" + meta.CommitMessage
}

func (uc *releaseUseCase) uploadArchive(ctx context.Context, repo *model.Repository, release *model.Release, archive *model.ArchiveResult) (*model.Asset, error) {
	f, err := os.Open(archive.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open archive", goerr.V("path", archive.Path))
	}
	defer f.Close()

	asset, err := uc.githubClient.UploadReleaseAsset(ctx, repo, release.ID, archive.Name, archiveMediaType, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("release_id", release.ID),
			goerr.V("name", archive.Name),
		)
	}

	return asset, nil
}
