package documents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"querium-backend/internal/shared/telemetry"
)

const (
	// DefaultSearchLimit applies when SearchOptions.Limit is not positive.
	DefaultSearchLimit = 5
	// ExcerptRunes is the longest excerpt returned before truncation.
	ExcerptRunes = 500
)

// Search scores documents by counting occurrences of each whitespace
// separated query token in their lower-cased text. Repeated tokens count
// repeatedly and matches inside longer words count. Documents scoring zero
// are dropped; the rest are ordered by descending score, ties keeping
// insertion order.
//
// Search never fails: a canceled context or a panic yields an empty result
// with Err set.
func (i *Index) Search(ctx context.Context, query string, opts SearchOptions) (result SearchResult) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("search panic: %v", rec)
			telemetry.Error("index.search.failed", map[string]any{"error": err.Error()})
			result = SearchResult{Matches: []Match{}, Err: err}
		}
	}()

	if err := ctx.Err(); err != nil {
		telemetry.Warn("index.search.canceled", map[string]any{"error": err.Error()})
		return SearchResult{Matches: []Match{}, Err: err}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	tokens := strings.Fields(strings.ToLower(query))
	candidates := i.snapshot(opts.ScopeID)

	matches := make([]Match, 0, len(candidates))
	for _, doc := range candidates {
		score := relevance(strings.ToLower(doc.Content), tokens)
		if score == 0 {
			continue
		}
		matches = append(matches, Match{
			ID:       doc.ID,
			Excerpt:  excerpt(doc.Content),
			Metadata: doc.Metadata,
			Score:    score,
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return SearchResult{Matches: matches}
}

func relevance(text string, tokens []string) int {
	score := 0
	for _, token := range tokens {
		score += strings.Count(text, token)
	}
	return score
}

func excerpt(text string) string {
	count := 0
	for pos := range text {
		if count == ExcerptRunes {
			return text[:pos] + "..."
		}
		count++
	}
	return text
}
