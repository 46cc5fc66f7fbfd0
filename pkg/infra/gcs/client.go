package gcs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// DefaultURLTTL is how long a signed upload URL stays valid
const DefaultURLTTL = 120 * time.Second

// Config holds the Cloud Storage bucket and the Cloud CDN URL map in front of it
type Config struct {
	Bucket          string
	Project         string // Project owning the URL map; refresh is skipped without it
	URLMap          string // Load balancer URL map whose cache is invalidated
	CredentialsFile string // Service account key; application default credentials when empty
	ContentType     string
}

type client struct {
	cfg        Config
	storage    *storage.Client
	compute    *compute.Service
	httpClient *http.Client
	urlTTL     time.Duration
}

// NewClient creates an ObjectStore backed by Google Cloud Storage and Cloud CDN
func NewClient(ctx context.Context, cfg Config) (interfaces.ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "application/zip"
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	c := &client{
		cfg:        cfg,
		storage:    storageClient,
		httpClient: http.DefaultClient,
		urlTTL:     DefaultURLTTL,
	}

	if cfg.Project != "" && cfg.URLMap != "" {
		c.compute, err = compute.NewService(ctx, opts...)
		if err != nil {
			_ = storageClient.Close()
			return nil, fmt.Errorf("failed to create compute client: %w", err)
		}
	}

	return c, nil
}

// Upload puts localPath to the bucket through a V4 signed URL valid for the URL TTL
func (c *client) Upload(ctx context.Context, key, localPath string) (string, error) {
	signed, err := c.storage.Bucket(c.cfg.Bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: c.cfg.ContentType,
		Expires:     time.Now().Add(c.urlTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign upload URL for gs://%s/%s: %w", c.cfg.Bucket, key, err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signed, f)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", c.cfg.ContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload to gs://%s/%s: %w", c.cfg.Bucket, key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d uploading gs://%s/%s", resp.StatusCode, c.cfg.Bucket, key)
	}

	raw, err := json.Marshal(map[string]any{
		"bucket": c.cfg.Bucket,
		"key":    key,
		"size":   info.Size(),
		"etag":   resp.Header.Get("ETag"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return string(raw), nil
}

// Refresh invalidates the Cloud CDN cache for the path of each URL
func (c *client) Refresh(ctx context.Context, urls []string) (string, error) {
	if c.compute == nil {
		raw, err := json.Marshal(map[string]any{
			"skipped": true,
			"reason":  "no project and URL map configured",
			"urls":    urls,
		})
		if err != nil {
			return "", fmt.Errorf("failed to encode response: %w", err)
		}
		return string(raw), nil
	}

	var ops []string
	for _, u := range urls {
		op, err := c.compute.UrlMaps.InvalidateCache(c.cfg.Project, c.cfg.URLMap, &compute.CacheInvalidationRule{
			Path: invalidationPath(u),
		}).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("failed to invalidate %s on %s: %w", u, c.cfg.URLMap, err)
		}
		ops = append(ops, op.Name+":"+op.Status)
	}

	return strings.Join(ops, ","), nil
}

// Close releases the storage client
func (c *client) Close() error {
	if c.storage == nil {
		return nil
	}
	if err := c.storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage client: %w", err)
	}
	return nil
}

// invalidationPath reduces a public URL to the path Cloud CDN matches on
func invalidationPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") {
		return "/" + u.Path
	}
	return u.Path
}
