package qiniu

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cfpa-team/langpack/pkg/domain/interfaces"
	"github.com/qiniu/go-sdk/v7/auth/qbox"
	"github.com/qiniu/go-sdk/v7/cdn"
	"github.com/qiniu/go-sdk/v7/storage"
)

// DefaultTokenTTL is the lifetime in seconds of an upload token
const DefaultTokenTTL = 120

type client struct {
	mac      *qbox.Mac
	bucket   string
	tokenTTL uint64
	uploader *storage.FormUploader
	cdn      *cdn.CdnManager
}

// NewClient creates an ObjectStore backed by a Qiniu Kodo bucket and its CDN
func NewClient(accessKey, secretKey, bucket string) (interfaces.ObjectStore, error) {
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("qiniu access key and secret key are required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("qiniu bucket is required")
	}

	mac := qbox.NewMac(accessKey, secretKey)

	return &client{
		mac:      mac,
		bucket:   bucket,
		tokenTTL: DefaultTokenTTL,
		uploader: storage.NewFormUploader(&storage.Config{UseHTTPS: true}),
		cdn:      cdn.NewCdnManager(mac),
	}, nil
}

// UploadToken returns a token scoped to the bucket that expires after the token TTL
func (c *client) UploadToken() string {
	policy := storage.PutPolicy{
		Scope:   c.bucket,
		Expires: c.tokenTTL,
	}
	return policy.UploadToken(c.mac)
}

// Upload stores localPath under key with a freshly signed token
func (c *client) Upload(ctx context.Context, key, localPath string) (string, error) {
	var ret storage.PutRet
	if err := c.uploader.PutFile(ctx, &ret, c.UploadToken(), key, localPath, &storage.PutExtra{}); err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", localPath, c.bucket, err)
	}

	return marshalResponse(ret)
}

// Refresh requests a CDN cache refresh of urls
func (c *client) Refresh(ctx context.Context, urls []string) (string, error) {
	ret, err := c.cdn.RefreshUrls(urls)
	if err != nil {
		return "", fmt.Errorf("failed to refresh %v: %w", urls, err)
	}

	return marshalResponse(ret)
}

func marshalResponse(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return string(raw), nil
}
