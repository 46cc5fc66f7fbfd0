package config

import (
	"context"

	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	gcsinfra "github.com/cfpa-team/langpack/pkg/infra/gcs"
	qiniuinfra "github.com/cfpa-team/langpack/pkg/infra/qiniu"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	BackendQiniu = "qiniu"
	BackendGCS   = "gcs"
)

// DefaultQiniuRefreshURL is the public download URL of the archive behind the Qiniu CDN
const DefaultQiniuRefreshURL = "http://downloader.meitangdehulu.com/Minecraft-Mod-Language-Modpack.zip"

// Storage holds object storage and CDN configuration
type Storage struct {
	Backend    string
	Key        string
	RefreshURL string

	QiniuAccessKey string `masq:"secret"`
	QiniuSecretKey string `masq:"secret"`
	QiniuBucket    string

	GCSBucket          string
	GCSProject         string
	GCSURLMap          string
	GCSCredentialsFile string
}

// Flags returns CLI flags for object storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Object storage backend (qiniu, gcs)",
			Value:       BackendQiniu,
			Destination: &c.Backend,
			Sources:     cli.EnvVars("LANGPACK_STORAGE_BACKEND"),
		},
		&cli.StringFlag{
			Name:        "storage-key",
			Usage:       "Object name of the uploaded archive; defaults to the archive file name",
			Destination: &c.Key,
			Sources:     cli.EnvVars("LANGPACK_STORAGE_KEY"),
		},
		&cli.StringFlag{
			Name:        "cdn-refresh-url",
			Usage:       "Public URL refreshed after upload; the qiniu backend defaults to " + DefaultQiniuRefreshURL,
			Destination: &c.RefreshURL,
			Sources:     cli.EnvVars("LANGPACK_CDN_REFRESH_URL"),
		},
		&cli.StringFlag{
			Name:        "qiniu-access-key",
			Usage:       "Qiniu access key",
			Destination: &c.QiniuAccessKey,
			Sources:     cli.EnvVars("LANGPACK_QINIU_ACCESS_KEY", "ak"),
		},
		&cli.StringFlag{
			Name:        "qiniu-secret-key",
			Usage:       "Qiniu secret key",
			Destination: &c.QiniuSecretKey,
			Sources:     cli.EnvVars("LANGPACK_QINIU_SECRET_KEY", "sk"),
		},
		&cli.StringFlag{
			Name:        "qiniu-bucket",
			Usage:       "Qiniu bucket the upload token is scoped to",
			Value:       "langpack",
			Destination: &c.QiniuBucket,
			Sources:     cli.EnvVars("LANGPACK_QINIU_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Google Cloud Storage bucket",
			Destination: &c.GCSBucket,
			Sources:     cli.EnvVars("LANGPACK_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-project",
			Usage:       "Google Cloud project owning the Cloud CDN URL map",
			Destination: &c.GCSProject,
			Sources:     cli.EnvVars("LANGPACK_GCS_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "gcs-url-map",
			Usage:       "Cloud CDN URL map to invalidate",
			Destination: &c.GCSURLMap,
			Sources:     cli.EnvVars("LANGPACK_GCS_URL_MAP"),
		},
		&cli.StringFlag{
			Name:        "gcs-credentials-file",
			Usage:       "Service account key file; application default credentials when empty",
			Destination: &c.GCSCredentialsFile,
			Sources:     cli.EnvVars("LANGPACK_GCS_CREDENTIALS_FILE"),
		},
	}
}

// Validate rejects backends other than qiniu and gcs
func (c *Storage) Validate() error {
	switch c.Backend {
	case BackendQiniu, BackendGCS:
		return nil
	default:
		return goerr.New("unknown storage backend", goerr.V("backend", c.Backend))
	}
}

// RefreshTarget returns the URL to refresh after upload. Only the qiniu backend has a default.
func (c *Storage) RefreshTarget() string {
	if c.RefreshURL != "" {
		return c.RefreshURL
	}
	if c.Backend == BackendQiniu {
		return DefaultQiniuRefreshURL
	}
	return ""
}

// Enabled reports whether the selected backend has the credentials it needs
func (c *Storage) Enabled() bool {
	switch c.Backend {
	case BackendQiniu:
		return c.QiniuAccessKey != "" && c.QiniuSecretKey != ""
	case BackendGCS:
		return c.GCSBucket != ""
	default:
		return false
	}
}

// NewObjectStore builds the configured backend
func (c *Storage) NewObjectStore(ctx context.Context) (interfaces.ObjectStore, error) {
	switch c.Backend {
	case BackendQiniu:
		return qiniuinfra.NewClient(c.QiniuAccessKey, c.QiniuSecretKey, c.QiniuBucket)
	case BackendGCS:
		return gcsinfra.NewClient(ctx, gcsinfra.Config{
			Bucket:          c.GCSBucket,
			Project:         c.GCSProject,
			URLMap:          c.GCSURLMap,
			CredentialsFile: c.GCSCredentialsFile,
		})
	default:
		return nil, goerr.New("unknown storage backend", goerr.V("backend", c.Backend))
	}
}
