// Package storage is the evidence download collaborator: scanned appeal
// binaries are archived in an S3-compatible store by the scanning
// provider, and caseworkers fetch them through time-limited links.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound reports that no evidence binary exists under the requested
// key.
var ErrNotFound = errors.New("evidence not found")

// IsNotFound reports whether err means a missing evidence key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// EvidenceInfo describes one archived scan binary.
type EvidenceInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// EvidenceStore exposes read-only access to the scan archive. The intake
// pipeline never writes evidence; uploads belong to the scanning
// provider.
type EvidenceStore interface {
	// Fetch streams the evidence binary under key.
	Fetch(ctx context.Context, key string) (io.ReadCloser, EvidenceInfo, error)
	// PresignDownload returns a time-limited URL for the binary, usable
	// without credentials.
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
}
