package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	"github.com/cfpa-team/langpack/pkg/domain/model"
	"github.com/google/go-github/v75/github"
)

const userAgent = "CFPA"

type client struct {
	githubClient *github.Client
}

// Option configures the underlying go-github client
type Option func(*github.Client) error

// WithBaseURL points both the REST and upload endpoints at baseURL
func WithBaseURL(baseURL string) Option {
	return func(c *github.Client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("failed to parse base URL %s: %w", baseURL, err)
		}
		c.BaseURL = u
		c.UploadURL = u
		return nil
	}
}

// NewClient creates a new GitHub client authenticated with a personal or workflow token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	c, err := newClient(github.NewClient(nil).WithAuthToken(token), opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewAppClient creates a new GitHub client with App installation authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	c, err := newClient(github.NewClient(&http.Client{Transport: itr}), opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(githubClient *github.Client, opts ...Option) (*client, error) {
	githubClient.UserAgent = userAgent
	for _, opt := range opts {
		if err := opt(githubClient); err != nil {
			return nil, err
		}
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// CurrentUser returns the authenticated user
func (c *client) CurrentUser(ctx context.Context) (*model.Actor, error) {
	user, _, err := c.githubClient.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return toActor(user), nil
}

// GetUser looks up a user by login
func (c *client) GetUser(ctx context.Context, login string) (*model.Actor, error) {
	if login == "" {
		return nil, fmt.Errorf("user login is empty")
	}

	user, _, err := c.githubClient.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", login, err)
	}
	return toActor(user), nil
}

// GetRepository resolves a repository by owner and name
func (c *client) GetRepository(ctx context.Context, owner, name string) (*model.Repository, error) {
	repo, _, err := c.githubClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, err)
	}

	return &model.Repository{
		ID:    repo.GetID(),
		Owner: repo.GetOwner().GetLogin(),
		Name:  repo.GetName(),
	}, nil
}

// GetCommitMessage returns the message of the commit ref points to
func (c *client) GetCommitMessage(ctx context.Context, repo *model.Repository, ref string) (string, error) {
	commit, _, err := c.githubClient.Repositories.GetCommit(ctx, repo.Owner, repo.Name, ref, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s of %s: %w", ref, repo.FullName(), err)
	}
	return commit.GetCommit().GetMessage(), nil
}

// ListCommitComments returns the bodies of all comments on a commit across all pages
func (c *client) ListCommitComments(ctx context.Context, repo *model.Repository, sha string) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var bodies []string
	for {
		comments, resp, err := c.githubClient.Repositories.ListCommitComments(ctx, repo.Owner, repo.Name, sha, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments of %s in %s: %w", sha, repo.FullName(), err)
		}

		for _, comment := range comments {
			bodies = append(bodies, comment.GetBody())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return bodies, nil
}

// CreateTag creates an annotated tag object on a commit and the refs/tags ref that points at it
func (c *client) CreateTag(ctx context.Context, repo *model.Repository, req *model.TagRequest) (*model.Tag, error) {
	body := github.CreateTag{
		Tag:     req.Name,
		Message: req.Message,
		Object:  req.ObjectSHA,
		Type:    "commit",
	}
	if req.Tagger != nil {
		body.Tagger = toCommitAuthor(req.Tagger, req.TaggedAt)
	}

	tag, _, err := c.githubClient.Git.CreateTag(ctx, repo.Owner, repo.Name, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag object %s in %s: %w", req.Name, repo.FullName(), err)
	}

	ref := github.CreateRef{
		Ref: "refs/tags/" + tag.GetTag(),
		SHA: tag.GetSHA(),
	}
	if _, _, err := c.githubClient.Git.CreateRef(ctx, repo.Owner, repo.Name, ref); err != nil {
		return nil, fmt.Errorf("failed to create ref %s in %s: %w", ref.Ref, repo.FullName(), err)
	}

	return &model.Tag{
		Name: tag.GetTag(),
		SHA:  tag.GetSHA(),
	}, nil
}

// CreateRelease creates a release for a tag
func (c *client) CreateRelease(ctx context.Context, repo *model.Repository, req *model.ReleaseRequest) (*model.Release, error) {
	release, _, err := c.githubClient.Repositories.CreateRelease(ctx, repo.Owner, repo.Name, &github.RepositoryRelease{
		TagName:         github.Ptr(req.TagName),
		TargetCommitish: github.Ptr(req.TargetCommitish),
		Name:            github.Ptr(req.Name),
		Body:            github.Ptr(req.Body),
		Draft:           github.Ptr(req.Draft),
		Prerelease:      github.Ptr(req.Prerelease),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s in %s: %w", req.TagName, repo.FullName(), err)
	}

	return &model.Release{
		ID:      release.GetID(),
		TagName: release.GetTagName(),
		HTMLURL: release.GetHTMLURL(),
	}, nil
}

// UploadReleaseAsset attaches file to a release
func (c *client) UploadReleaseAsset(ctx context.Context, repo *model.Repository, releaseID int64, name, mediaType string, file *os.File) (*model.Asset, error) {
	asset, _, err := c.githubClient.Repositories.UploadReleaseAsset(ctx, repo.Owner, repo.Name, releaseID, &github.UploadOptions{
		Name:      name,
		MediaType: mediaType,
	}, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset %s to release %d: %w", name, releaseID, err)
	}

	return &model.Asset{
		ID:                 asset.GetID(),
		Name:               asset.GetName(),
		Size:               int64(asset.GetSize()),
		BrowserDownloadURL: asset.GetBrowserDownloadURL(),
	}, nil
}

// toCommitAuthor fills the name and email GitHub requires for a tagger from the login when the profile hides them
func toCommitAuthor(actor *model.Actor, at time.Time) *github.CommitAuthor {
	name := actor.Name
	if name == "" {
		name = actor.Login
	}
	email := actor.Email
	if email == "" {
		email = actor.Login + "@users.noreply.github.com"
	}

	return &github.CommitAuthor{
		Name:  github.Ptr(name),
		Email: github.Ptr(email),
		Date:  &github.Timestamp{Time: at},
	}
}

func toActor(user *github.User) *model.Actor {
	return &model.Actor{
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Email: user.GetEmail(),
	}
}
