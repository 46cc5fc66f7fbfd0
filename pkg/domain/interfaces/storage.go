package interfaces

import "context"

// ObjectStore is an object storage bucket fronted by a CDN
type ObjectStore interface {
	// Upload stores the local file under key and returns the raw service response
	Upload(ctx context.Context, key, localPath string) (string, error)

	// Refresh purges the CDN cache for the given public URLs or paths
	Refresh(ctx context.Context, urls []string) (string, error)
}
