package qiniu_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	qiniuinfra "github.com/cfpa-team/langpack/pkg/infra/qiniu"
)

func TestNewClient_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name      string
		accessKey string
		secretKey string
		bucket    string
		wantErr   bool
	}{
		{name: "all set", accessKey: "ak", secretKey: "sk", bucket: "langpack", wantErr: false},
		{name: "missing access key", accessKey: "", secretKey: "sk", bucket: "langpack", wantErr: true},
		{name: "missing secret key", accessKey: "ak", secretKey: "", bucket: "langpack", wantErr: true},
		{name: "missing bucket", accessKey: "ak", secretKey: "sk", bucket: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := qiniuinfra.NewClient(tt.accessKey, tt.secretKey, tt.bucket)
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, client).Nil()
				return
			}
			gt.NoError(t, err)
			gt.Value(t, client).NotNil()
		})
	}
}

func TestClient_WithRealBucket(t *testing.T) {
	accessKey := os.Getenv("TEST_QINIU_ACCESS_KEY")
	secretKey := os.Getenv("TEST_QINIU_SECRET_KEY")
	bucket := os.Getenv("TEST_QINIU_BUCKET")

	if accessKey == "" || secretKey == "" || bucket == "" {
		t.Skip("Test Qiniu credentials not provided via environment variables")
	}

	client, err := qiniuinfra.NewClient(accessKey, secretKey, bucket)
	gt.NoError(t, err)

	path := filepath.Join(t.TempDir(), "langpack-test.zip")
	gt.NoError(t, os.WriteFile(path, []byte("langpack integration test"), 0644))

	resp, err := client.Upload(context.Background(), "langpack-test.zip", path)
	gt.NoError(t, err)
	gt.String(t, resp).Contains("langpack-test.zip")
	t.Logf("upload response: %s", resp)
}
