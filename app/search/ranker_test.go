package search

import (
	"testing"
)

func newTestRanker() *Ranker {
	return NewRanker(DefaultConfig())
}

func TestRankerTitleOutweighsBody(t *testing.T) {
	ranker := newTestRanker()

	docs := []Document{
		{ID: 1, Title: "nothing relevant", Body: "golang concurrency patterns"},
		{ID: 2, Title: "golang concurrency patterns", Body: "nothing relevant"},
	}

	ranked := ranker.Run("golang concurrency", docs)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(ranked))
	}
	if ranked[0].ID != 2 {
		t.Errorf("Expected title match ranked first, got doc %d", ranked[0].ID)
	}
	if ranked[0].Score != 6 {
		t.Errorf("Expected title score 6 (2 tokens x weight 3), got %d", ranked[0].Score)
	}
	if ranked[1].Score != 2 {
		t.Errorf("Expected body score 2 (2 tokens x weight 1), got %d", ranked[1].Score)
	}
}

func TestRankerDropsZeroScores(t *testing.T) {
	ranker := newTestRanker()

	docs := []Document{
		{ID: 1, Title: "golang tips", Body: ""},
		{ID: 2, Title: "cooking recipes", Body: "pasta"},
	}

	ranked := ranker.Run("golang", docs)
	if len(ranked) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(ranked))
	}
	if ranked[0].ID != 1 {
		t.Errorf("Expected doc 1, got doc %d", ranked[0].ID)
	}
}

func TestRankerStopwordFiltering(t *testing.T) {
	ranker := newTestRanker()

	docs := []Document{
		{ID: 1, Title: "deadlock debugging", Body: "the article"},
	}

	// "the" and "about" are stopwords; only "deadlock" should score
	ranked := ranker.Run("about the deadlock", docs)
	if len(ranked) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(ranked))
	}
	if ranked[0].Score != 3 {
		t.Errorf("Expected score 3 from single title token, got %d", ranked[0].Score)
	}
}

func TestRankerAllStopwordsFallsBackToRawTokens(t *testing.T) {
	ranker := newTestRanker()

	docs := []Document{
		{ID: 1, Title: "the valley", Body: ""},
		{ID: 2, Title: "unrelated", Body: ""},
	}

	// every token is a stopword, so the unfiltered tokens are used
	ranked := ranker.Run("the", docs)
	if len(ranked) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(ranked))
	}
	if ranked[0].ID != 1 {
		t.Errorf("Expected doc 1, got doc %d", ranked[0].ID)
	}
}

func TestRankerFallbackSampleWhenNothingScores(t *testing.T) {
	ranker := newTestRanker()

	docs := make([]Document, 12)
	for i := range docs {
		docs[i] = Document{ID: int64(i + 1), Title: "unrelated", Body: "unrelated"}
	}

	ranked := ranker.Run("xylophone", docs)
	if len(ranked) != 10 {
		t.Fatalf("Expected fallback sample of 10, got %d", len(ranked))
	}
	for _, doc := range ranked {
		if doc.Score != 0 {
			t.Errorf("Expected fallback docs to have zero score, got %d", doc.Score)
		}
	}
}

func TestRankerCapsCandidates(t *testing.T) {
	ranker := newTestRanker()

	docs := make([]Document, 30)
	for i := range docs {
		docs[i] = Document{ID: int64(i + 1), Title: "golang", Body: ""}
	}

	ranked := ranker.Run("golang", docs)
	if len(ranked) != 15 {
		t.Errorf("Expected candidate cap of 15, got %d", len(ranked))
	}
}

func TestRankerEmptyCorpus(t *testing.T) {
	ranker := newTestRanker()

	if ranked := ranker.Run("anything", nil); ranked != nil {
		t.Errorf("Expected nil for empty corpus, got %v", ranked)
	}
}

func TestRankerStableOrderOnTies(t *testing.T) {
	ranker := newTestRanker()

	docs := []Document{
		{ID: 1, Title: "golang", Body: ""},
		{ID: 2, Title: "golang", Body: ""},
		{ID: 3, Title: "golang", Body: ""},
	}

	ranked := ranker.Run("golang", docs)
	for i, doc := range ranked {
		if doc.ID != int64(i+1) {
			t.Errorf("Expected original order preserved on ties, got doc %d at position %d", doc.ID, i)
		}
	}
}
