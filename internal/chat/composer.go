package chat

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"querium-backend/internal/documents"
	"querium-backend/internal/shared/metrics"
	"querium-backend/internal/shared/telemetry"
)

// SourceLimit caps the matches an answer is composed from.
const SourceLimit = 3

var (
	//go:embed templates/found.txt
	foundTemplate string
	//go:embed templates/not_found.txt
	notFoundText string
	//go:embed templates/apology.txt
	apologyText string
)

// Answer outcomes, also used as metric labels.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Searcher is the slice of the document service the composer needs.
type Searcher interface {
	Search(ctx context.Context, query string, opts documents.SearchOptions) documents.SearchResult
}

// Answer is a composed reply. Err is set when the reply is the apology text.
type Answer struct {
	Text    string
	Sources []string
	Err     error
}

// Outcome classifies the answer.
func (a Answer) Outcome() string {
	switch {
	case a.Err != nil:
		return OutcomeError
	case len(a.Sources) == 0:
		return OutcomeNotFound
	default:
		return OutcomeFound
	}
}

// Composer turns a question into a templated answer over search matches.
type Composer struct {
	Searcher Searcher
	Metrics  *metrics.Metrics
}

// NewComposer constructs a Composer.
func NewComposer(searcher Searcher, m *metrics.Metrics) *Composer {
	return &Composer{Searcher: searcher, Metrics: m}
}

// Compose answers query from the documents matching it, optionally scoped
// to one document. It never fails: search errors and panics produce the
// apology text with no sources.
func (c *Composer) Compose(ctx context.Context, query, scopeID string) (answer Answer) {
	defer func() {
		if rec := recover(); rec != nil {
			answer = apology(fmt.Errorf("compose panic: %v", rec))
		}
		if answer.Err != nil {
			telemetry.Error("chat.compose.failed", map[string]any{
				"document_id": scopeID,
				"error":       answer.Err.Error(),
			})
		}
		c.Metrics.ObserveChat(answer.Outcome())
	}()

	result := c.Searcher.Search(ctx, query, documents.SearchOptions{ScopeID: scopeID, Limit: SourceLimit})
	if result.Err != nil {
		return apology(result.Err)
	}
	if len(result.Matches) == 0 {
		return Answer{Text: strings.TrimSpace(notFoundText), Sources: []string{}}
	}

	sources := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		sources = append(sources, m.Metadata.FileName)
	}
	return Answer{
		Text:    strings.TrimSpace(fmt.Sprintf(foundTemplate, query)),
		Sources: sources,
	}
}

func apology(err error) Answer {
	return Answer{Text: strings.TrimSpace(apologyText), Sources: []string{}, Err: err}
}
