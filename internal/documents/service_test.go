package documents

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"querium-backend/internal/extract"
	"querium-backend/internal/shared/metrics"
	localstore "querium-backend/internal/shared/storage/object/local"
)


func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Extractor: extract.New(extract.ModeNative),
		Index:     NewIndex(),
		Metrics:   metrics.New(),
		Now: func() time.Time {
			return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestUploadIndexesPlainText(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Upload(context.Background(), "notes.txt", "text/plain; charset=utf-8", []byte("Invoice total due"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ID == "" || !doc.Processed {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Metadata.ContentType != extract.MimePlainText || doc.Metadata.Size != 17 {
		t.Fatalf("unexpected metadata: %+v", doc.Metadata)
	}
	if !doc.UploadedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected upload time: %v", doc.UploadedAt)
	}

	stored, err := svc.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Content != "Invoice total due" {
		t.Fatalf("unexpected content: %q", stored.Content)
	}
	if got := testutil.ToFloat64(svc.Metrics.DocumentsUploaded.WithLabelValues(extract.MimePlainText)); got != 1 {
		t.Fatalf("expected upload counter 1, got %v", got)
	}
	if got := testutil.ToFloat64(svc.Metrics.IndexDocuments); got != 1 {
		t.Fatalf("expected index gauge 1, got %v", got)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	if !errors.Is(err, extract.ErrUnsupportedType) {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
	if svc.Index.Len() != 0 {
		t.Fatal("expected nothing to be indexed")
	}
}

func TestUploadExtractionFailure(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "broken.pdf", "application/pdf", []byte("not a pdf"))
	var extractionErr *extract.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if got := testutil.ToFloat64(svc.Metrics.ExtractionFailures.WithLabelValues(extract.MimePDF)); got != 1 {
		t.Fatalf("expected extraction failure counter 1, got %v", got)
	}
	if svc.Index.Len() != 0 {
		t.Fatal("expected nothing to be indexed")
	}
}

func TestUploadRequiresFileName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "  ", "text/plain", []byte("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUploadArchivesAndDeleteRemovesCopy(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t)
	svc.Archive = localstore.New(dir)

	doc, err := svc.Upload(context.Background(), "report.txt", "text/plain", []byte("quarterly report"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ArchiveKey == "" {
		t.Fatal("expected archive key to be set")
	}
	archived := filepath.Join(dir, filepath.FromSlash(doc.ArchiveKey))
	data, err := os.ReadFile(archived)
	if err != nil {
		t.Fatalf("read archived copy: %v", err)
	}
	if string(data) != "quarterly report" {
		t.Fatalf("unexpected archived bytes: %q", data)
	}

	_, rc, err := svc.Original(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("open original: %v", err)
	}
	rc.Close()

	svc.Delete(context.Background(), doc.ID)
	if _, err := os.Stat(archived); !os.IsNotExist(err) {
		t.Fatalf("expected archived copy to be removed, stat err: %v", err)
	}
	if _, err := svc.Get(context.Background(), doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	svc.Delete(context.Background(), doc.ID)
	if got := testutil.ToFloat64(svc.Metrics.DocumentsDeleted); got != 1 {
		t.Fatalf("expected delete counter 1, got %v", got)
	}
}

func TestOriginalWithoutArchive(t *testing.T) {
	svc := newTestService(t)
	doc, err := svc.Upload(context.Background(), "a.txt", "text/plain", []byte("abc"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, _, err := svc.Original(context.Background(), doc.ID); !errors.Is(err, ErrNotArchived) {
		t.Fatalf("expected ErrNotArchived, got %v", err)
	}
	if _, _, err := svc.Original(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchRecordsOutcome(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Upload(context.Background(), "a.txt", "text/plain", []byte("invoice")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	svc.Search(context.Background(), "invoice", SearchOptions{})
	svc.Search(context.Background(), "receipt", SearchOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Search(ctx, "invoice", SearchOptions{})

	for outcome, want := range map[string]float64{"hit": 1, "miss": 1, "degraded": 1} {
		if got := testutil.ToFloat64(svc.Metrics.SearchRequests.WithLabelValues(outcome)); got != want {
			t.Fatalf("expected %s=%v, got %v", outcome, want, got)
		}
	}
}
