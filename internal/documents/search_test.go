package documents

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSearchExcludesZeroScores(t *testing.T) {
	idx := NewIndex()
	idx.Insert(newDoc("a", "The invoice total is due"))
	idx.Insert(newDoc("b", "Meeting notes"))

	result := idx.Search(context.Background(), "invoice", SearchOptions{})
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Matches) != 1 || result.Matches[0].ID != "a" {
		t.Fatalf("expected only document a, got %+v", result.Matches)
	}
	for _, m := range result.Matches {
		if m.Score <= 0 {
			t.Fatalf("expected positive score, got %d", m.Score)
		}
	}
}

func TestSearchOrdersByScoreDescending(t *testing.T) {
	idx := NewIndex()
	counts := map[string]int{"five": 5, "two": 2, "zero": 0, "eight": 8}
	for _, id := range []string{"five", "two", "zero", "eight"} {
		idx.Insert(newDoc(id, strings.Repeat("apple ", counts[id])+"filler"))
	}

	result := idx.Search(context.Background(), "apple", SearchOptions{})
	got := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		got = append(got, m.ID)
	}
	want := []string{"eight", "five", "two"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected order %v, got %v", want, got)
	}
	if result.Matches[0].Score != 8 {
		t.Fatalf("expected top score 8, got %d", result.Matches[0].Score)
	}
}

func TestSearchScoring(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		query string
		want  int
	}{
		{name: "case insensitive", text: "Invoice INVOICE invoice", query: "InVoIcE", want: 3},
		{name: "duplicate tokens count twice", text: "invoice", query: "invoice invoice", want: 2},
		{name: "substring inside words", text: "category", query: "cat", want: 1},
		{name: "non overlapping", text: "aaaa", query: "aa", want: 2},
		{name: "multiple tokens", text: "total due total", query: "total due", want: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx := NewIndex()
			idx.Insert(newDoc("doc", tc.text))
			result := idx.Search(context.Background(), tc.query, SearchOptions{})
			if len(result.Matches) != 1 {
				t.Fatalf("expected one match, got %d", len(result.Matches))
			}
			if result.Matches[0].Score != tc.want {
				t.Fatalf("expected score %d, got %d", tc.want, result.Matches[0].Score)
			}
		})
	}
}

func TestSearchEmptyQueryMatchesNothing(t *testing.T) {
	idx := NewIndex()
	idx.Insert(newDoc("a", "anything"))

	result := idx.Search(context.Background(), "   ", SearchOptions{})
	if len(result.Matches) != 0 || result.Err != nil {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestSearchExcerptTruncation(t *testing.T) {
	idx := NewIndex()
	long := "match " + strings.Repeat("x", 1194)
	short := "match " + strings.Repeat("y", 394)
	idx.Insert(newDoc("long", long))
	idx.Insert(newDoc("short", short))

	result := idx.Search(context.Background(), "match", SearchOptions{})
	excerpts := map[string]string{}
	for _, m := range result.Matches {
		excerpts[m.ID] = m.Excerpt
	}

	if got := excerpts["long"]; got != long[:500]+"..." {
		t.Fatalf("expected 500 chars plus ellipsis, got %d chars", len(got))
	}
	if got := excerpts["short"]; got != short {
		t.Fatalf("expected full 400 char text, got %q", got)
	}
}

func TestSearchExcerptCountsRunes(t *testing.T) {
	idx := NewIndex()
	text := "é" + strings.Repeat("ü", 600)
	idx.Insert(newDoc("utf", text))

	result := idx.Search(context.Background(), "é", SearchOptions{})
	if len(result.Matches) != 1 {
		t.Fatalf("expected one match, got %d", len(result.Matches))
	}
	got := result.Matches[0].Excerpt
	if !utf8.ValidString(got) {
		t.Fatal("excerpt is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n != ExcerptRunes {
		t.Fatalf("expected %d runes, got %d", ExcerptRunes, n)
	}
}

func TestSearchScope(t *testing.T) {
	idx := NewIndex()
	idx.Insert(newDoc("a", "invoice invoice"))
	idx.Insert(newDoc("b", "invoice"))
	idx.Insert(newDoc("c", "receipt"))

	result := idx.Search(context.Background(), "invoice", SearchOptions{ScopeID: "b"})
	if len(result.Matches) != 1 || result.Matches[0].ID != "b" {
		t.Fatalf("expected only scoped document b, got %+v", result.Matches)
	}

	result = idx.Search(context.Background(), "invoice", SearchOptions{ScopeID: "c"})
	if len(result.Matches) != 0 {
		t.Fatalf("expected no matches in scoped document c, got %+v", result.Matches)
	}

	// Unknown scope searches everything.
	result = idx.Search(context.Background(), "invoice", SearchOptions{ScopeID: "missing"})
	if len(result.Matches) != 2 {
		t.Fatalf("expected fallback to all documents, got %d matches", len(result.Matches))
	}
}

func TestSearchLimit(t *testing.T) {
	idx := NewIndex()
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		idx.Insert(newDoc(id, "keyword"))
	}

	if got := len(idx.Search(context.Background(), "keyword", SearchOptions{}).Matches); got != DefaultSearchLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultSearchLimit, got)
	}
	result := idx.Search(context.Background(), "keyword", SearchOptions{Limit: 3})
	if len(result.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(result.Matches))
	}
	// Equal scores keep insertion order.
	if result.Matches[0].ID != "1" || result.Matches[2].ID != "3" {
		t.Fatalf("expected insertion order for ties, got %+v", result.Matches)
	}
}

func TestSearchCanceledContextDegrades(t *testing.T) {
	idx := NewIndex()
	idx.Insert(newDoc("a", "invoice"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := idx.Search(ctx, "invoice", SearchOptions{})
	if result.Err == nil {
		t.Fatal("expected degraded result to carry an error")
	}
	if result.Matches == nil || len(result.Matches) != 0 {
		t.Fatalf("expected empty non-nil matches, got %+v", result.Matches)
	}
}
