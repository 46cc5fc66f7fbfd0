package model

import "time"

// Actor identifies a GitHub user
type Actor struct {
	Login string
	Name  string
	Email string
}

// Repository identifies a GitHub repository
type Repository struct {
	ID    int64
	Owner string
	Name  string
}

// FullName returns "owner/name"
func (r *Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// ReleaseMetadata is assembled from API responses before the tag is created
type ReleaseMetadata struct {
	TagName       string
	CommitMessage string
	Comments      string // Commit comments joined by newlines, used as tag message and release body
	Actor         *Actor
}

// TagRequest is an annotated tag object to create
type TagRequest struct {
	Name      string
	Message   string
	ObjectSHA string
	Tagger    *Actor
	TaggedAt  time.Time
}

// Tag is a created annotated tag object
type Tag struct {
	Name string
	SHA  string
}

// ReleaseRequest is a release to create
type ReleaseRequest struct {
	TagName         string
	TargetCommitish string
	Name            string
	Body            string
	Draft           bool
	Prerelease      bool
}

// Release is a created release
type Release struct {
	ID      int64
	TagName string
	HTMLURL string
}

// Asset is an uploaded release asset
type Asset struct {
	ID                 int64
	Name               string
	Size               int64
	BrowserDownloadURL string
}

// ReleaseResult represents the outcome of the release publisher
type ReleaseResult struct {
	Metadata *ReleaseMetadata
	Tag      *Tag
	Release  *Release
	Asset    *Asset
}
