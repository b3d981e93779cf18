package documents

import "time"

// Metadata describes the uploaded file a document was extracted from.
type Metadata struct {
	FileName    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Document is an indexed upload. It is never modified after insertion.
type Document struct {
	ID         string
	Content    string
	Metadata   Metadata
	Processed  bool
	UploadedAt time.Time
	// ArchiveKey is set when the raw bytes were copied to the archive store.
	ArchiveKey string
}

// Summary is the listing view of a document, without its text.
type Summary struct {
	ID          string
	FileName    string
	ContentType string
	Size        int64
	Processed   bool
	UploadedAt  time.Time
}

func (d Document) Summary() Summary {
	return Summary{
		ID:          d.ID,
		FileName:    d.Metadata.FileName,
		ContentType: d.Metadata.ContentType,
		Size:        d.Metadata.Size,
		Processed:   d.Processed,
		UploadedAt:  d.UploadedAt,
	}
}

// Match is one scored search hit.
type Match struct {
	ID       string
	Excerpt  string
	Metadata Metadata
	Score    int
}

// SearchOptions narrows a search. An empty ScopeID, or one that is not
// indexed, searches every document. Limit <= 0 means DefaultSearchLimit.
type SearchOptions struct {
	ScopeID string
	Limit   int
}

// SearchResult carries the matches of a search. Err is set when the search
// degraded to an empty result instead of failing.
type SearchResult struct {
	Matches []Match
	Err     error
}
