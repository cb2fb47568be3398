package services

import (
	"context"
	"io"
	"time"
)

// DefaultPageSize is the default number of keys requested per listing call
const DefaultPageSize = 100

// Delimiter separates the virtual folder from the object name in a key
const Delimiter = "/"

// ListOptions describes one bounded listing call
type ListOptions struct {
	Prefix            string
	Delimiter         string
	MaxKeys           int
	ContinuationToken string
}

// ObjectInfo is the subset of object metadata the gallery needs
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListPage contains one page of results from ListPage.
// Objects holds plain entries and CommonPrefixes holds delimiter groups;
// either may be empty. NextContinuationToken is empty on the final page.
type ListPage struct {
	Objects               []ObjectInfo
	CommonPrefixes        []string
	NextContinuationToken string
}

// Empty reports whether the page carries neither objects nor prefixes
func (p ListPage) Empty() bool {
	return len(p.Objects) == 0 && len(p.CommonPrefixes) == 0
}

// HasMore reports whether the backend handed out a token for another page
func (p ListPage) HasMore() bool {
	return p.NextContinuationToken != ""
}

// ObjectStore is the storage surface used by the gallery. Implementations
// issue exactly one backend call per method and never retry.
type ObjectStore interface {
	Bucket() string
	ListPage(ctx context.Context, opts ListOptions) (ListPage, error)
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	CopyObject(ctx context.Context, srcKey, dstKey string) error
	RemoveObject(ctx context.Context, key string) error
}

// Readiness reports whether the storage backend can serve requests
type Readiness interface {
	Ready(ctx context.Context) error
}

func pageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	return n
}
