package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	Processed  bool      `json:"processed"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DocumentDetailResponse adds the extracted text.
type DocumentDetailResponse struct {
	DocumentResponse
	Content string `json:"content"`
}

// SearchMatchResponse is one hit of GET /search.
type SearchMatchResponse struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
	Score    int      `json:"score"`
}

type SearchResponse struct {
	Results []SearchMatchResponse `json:"results"`
}

func toResponse(s Summary) DocumentResponse {
	return DocumentResponse{
		ID:         s.ID,
		Name:       s.FileName,
		Type:       s.ContentType,
		Size:       s.Size,
		Processed:  s.Processed,
		UploadedAt: s.UploadedAt,
	}
}

func toSearchResponse(matches []Match) SearchResponse {
	out := make([]SearchMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, SearchMatchResponse{
			ID:       m.ID,
			Content:  m.Excerpt,
			Metadata: m.Metadata,
			Score:    m.Score,
		})
	}
	return SearchResponse{Results: out}
}
