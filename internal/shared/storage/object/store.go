// Package object archives exported files on local disk or S3.
package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"cloud-savings/internal/shared/util"
)

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// Store saves and retrieves binary objects by key.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ExportKey places a file under the owner's hashed namespace with a sortable timestamp,
// e.g. "<sha256(owner)>/20260118T093000Z_prioritized_leads.csv".
func ExportKey(owner, fileName string, at time.Time) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if owner == "" {
		return "", fmt.Errorf("%w: owner is required", ErrInvalidKey)
	}
	stamp := at.UTC().Format("20060102T150405Z")
	return path.Join(util.HashKey(owner), stamp+"_"+name), nil
}
