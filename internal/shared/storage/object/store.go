package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"querium-backend/internal/shared/util"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for archiving and retrieving binary objects.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// DocumentKey returns the archive key for an uploaded document's original bytes.
func DocumentKey(documentID, fileName string) (string, error) {
	if documentID == "" {
		return "", errors.New("document id required")
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(documentID, name), nil
}
