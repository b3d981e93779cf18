package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"querium-backend/internal/extract"
	"querium-backend/internal/shared/metrics"
	"querium-backend/internal/shared/storage/object"
	"querium-backend/internal/shared/telemetry"
)

// Extractor turns uploaded bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (string, error)
}

// Service contains business logic for documents.
type Service struct {
	Extractor Extractor
	Index     *Index
	// Archive, when set, receives a copy of every accepted upload.
	Archive object.ObjectStore
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Upload extracts text from data and indexes it under a fresh id.
// It fails with ErrInvalidInput, *extract.UnsupportedTypeError or
// *extract.ExtractionError before anything is stored.
func (s *Service) Upload(ctx context.Context, fileName, contentType string, data []byte) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	contentType = extract.NormalizeContentType(contentType, fileName, data)
	if !extract.Supported(contentType) {
		return Document{}, &extract.UnsupportedTypeError{ContentType: contentType}
	}

	text, err := s.Extractor.Extract(ctx, data, contentType)
	if err != nil {
		var extractionErr *extract.ExtractionError
		if errors.As(err, &extractionErr) {
			s.Metrics.ObserveExtractionFailure(contentType)
			telemetry.Warn("document.extract.failed", map[string]any{
				"file_name":    fileName,
				"content_type": contentType,
				"error":        err.Error(),
			})
		}
		return Document{}, err
	}

	doc := Document{
		ID:      uuid.NewString(),
		Content: text,
		Metadata: Metadata{
			FileName:    fileName,
			ContentType: contentType,
			Size:        int64(len(data)),
		},
		Processed:  true,
		UploadedAt: s.now().UTC(),
	}

	if s.Archive != nil {
		key, err := object.DocumentKey(doc.ID, fileName)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, err := s.Archive.Put(ctx, key, contentType, bytes.NewReader(data)); err != nil {
			return Document{}, fmt.Errorf("archive upload: %w", err)
		}
		doc.ArchiveKey = key
	}

	s.Index.Insert(doc)
	s.Metrics.ObserveUpload(contentType)
	s.Metrics.SetIndexSize(s.Index.Len())
	telemetry.Info("document.indexed", map[string]any{
		"document_id":  doc.ID,
		"file_name":    fileName,
		"content_type": contentType,
		"size":         doc.Metadata.Size,
		"chars":        len(text),
	})

	return doc, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	doc, ok := s.Index.Get(id)
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Original opens the archived upload of a document.
func (s *Service) Original(ctx context.Context, id string) (Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	if s.Archive == nil || doc.ArchiveKey == "" {
		return Document{}, nil, ErrNotArchived
	}
	rc, err := s.Archive.Open(ctx, doc.ArchiveKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Document{}, nil, ErrNotArchived
		}
		return Document{}, nil, fmt.Errorf("open archived file: %w", err)
	}
	return doc, rc, nil
}

// List returns every indexed document in upload order.
func (s *Service) List(ctx context.Context) []Summary {
	return s.Index.List()
}

// Count returns the number of indexed documents.
func (s *Service) Count() int {
	return s.Index.Len()
}

// Delete removes a document. Unknown ids are ignored. Failing to drop the
// archived copy is logged and does not fail the delete.
func (s *Service) Delete(ctx context.Context, id string) {
	doc, ok := s.Index.Get(id)
	if !s.Index.Delete(id) {
		return
	}
	s.Metrics.ObserveDelete()
	s.Metrics.SetIndexSize(s.Index.Len())
	telemetry.Info("document.deleted", map[string]any{"document_id": id})

	if ok && doc.ArchiveKey != "" && s.Archive != nil {
		if err := s.Archive.Delete(ctx, doc.ArchiveKey); err != nil {
			telemetry.Warn("document.archive.delete_failed", map[string]any{
				"document_id": id,
				"key":         doc.ArchiveKey,
				"error":       err.Error(),
			})
		}
	}
}

// Search runs an index search and records its outcome.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) SearchResult {
	start := time.Now()
	result := s.Index.Search(ctx, query, opts)

	outcome := "hit"
	switch {
	case result.Err != nil:
		outcome = "degraded"
	case len(result.Matches) == 0:
		outcome = "miss"
	}
	s.Metrics.ObserveSearch(outcome, time.Since(start))
	return result
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
