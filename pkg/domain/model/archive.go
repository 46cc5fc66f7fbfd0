package model

import "time"

// ArchiveResult represents the result of writing the zip archive
type ArchiveResult struct {
	Path    string   // Absolute path of the archive
	Name    string   // File name of the archive
	Entries []string // Entry names in write order
	RawSize int64    // Total uncompressed bytes
	Size    int64    // Archive size on disk
}

// PackResult summarizes one pipeline run
type PackResult struct {
	Root    string
	Archive *ArchiveResult
	Release *ReleaseResult // nil when release publishing is disabled
	CDN     *CDNResult     // nil when CDN publishing is disabled
	Elapsed time.Duration
}

// CDNResult holds the raw responses of the object store
type CDNResult struct {
	Key      string
	Upload   string
	Refresh  string
	Endpoint string
}
