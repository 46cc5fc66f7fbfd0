package config

import (
	"os"
	"strings"

	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	githubinfra "github.com/cfpa-team/langpack/pkg/infra/github"
	"github.com/cfpa-team/langpack/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub release configuration
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	PrivateKeyFile string
	Repository     string // owner/name, owner may be omitted
	Actor          string
	Ref            string
	SHA            string
	BaseURL        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token; release publishing is enabled when set",
			Destination: &c.Token,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_TOKEN", "repo_token"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used instead of a token",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-repository",
			Usage:       "Target repository as owner/name; owner defaults to the authenticated user",
			Value:       usecase.DefaultRepositoryName,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-actor",
			Usage:       "Login of the user recorded as tagger",
			Destination: &c.Actor,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_ACTOR", "actor", "GITHUB_ACTOR"),
		},
		&cli.StringFlag{
			Name:        "github-ref",
			Usage:       "Ref whose commit message names the release",
			Destination: &c.Ref,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_REF", "ref", "GITHUB_REF"),
		},
		&cli.StringFlag{
			Name:        "github-sha",
			Usage:       "Commit SHA to tag",
			Destination: &c.SHA,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_SHA", "sha", "GITHUB_SHA"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL for GitHub Enterprise",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("LANGPACK_GITHUB_BASE_URL"),
		},
	}
}

// Enabled reports whether credentials for release publishing are present
func (c *GitHub) Enabled() bool {
	return c.Token != "" || c.appEnabled()
}

func (c *GitHub) appEnabled() bool {
	return c.AppID != 0 && c.InstallationID != 0 && (c.PrivateKey != "" || c.PrivateKeyFile != "")
}

// Target splits the configured repository into a release target
func (c *GitHub) Target() usecase.ReleaseTarget {
	target := usecase.ReleaseTarget{
		Repo:  c.Repository,
		Actor: c.Actor,
		Ref:   c.Ref,
		SHA:   c.SHA,
	}
	if owner, name, ok := strings.Cut(c.Repository, "/"); ok {
		target.Owner = owner
		target.Repo = name
	}
	return target
}

// Validate checks that a release can be created with the configuration
func (c *GitHub) Validate() error {
	if c.Actor == "" || c.Ref == "" || c.SHA == "" {
		return goerr.New("actor, ref and sha are required for release publishing",
			goerr.V("actor", c.Actor),
			goerr.V("ref", c.Ref),
			goerr.V("sha", c.SHA),
		)
	}
	if c.Token == "" && !strings.Contains(c.Repository, "/") {
		return goerr.New("repository owner is required with GitHub App authentication",
			goerr.V("repository", c.Repository),
		)
	}
	return nil
}

// NewClient builds a GitHub client, preferring the token over App credentials
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	var opts []githubinfra.Option
	if c.BaseURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.BaseURL))
	}

	if c.Token != "" {
		return githubinfra.NewClient(c.Token, opts...)
	}

	key := []byte(c.PrivateKey)
	if len(key) == 0 {
		var err error
		key, err = os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
		}
	}

	return githubinfra.NewAppClient(c.AppID, c.InstallationID, key, opts...)
}
