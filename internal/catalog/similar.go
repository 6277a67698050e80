package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/google/uuid"
)

// SimilarLimit caps the number of similar books returned.
const SimilarLimit = 10

type SimilarityRanker struct {
	store  Store
	scorer Scorer
	limit  int
}

type RankerOption func(*SimilarityRanker)

// WithScorer replaces DefaultScorer.
func WithScorer(s Scorer) RankerOption {
	return func(r *SimilarityRanker) {
		if s != nil {
			r.scorer = s
		}
	}
}

func NewSimilarityRanker(store Store, opts ...RankerOption) *SimilarityRanker {
	r := &SimilarityRanker{
		store:  store,
		scorer: DefaultScorer,
		limit:  SimilarLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Similar returns up to SimilarLimit books sharing a category with the reference, best first.
// A missing reference is an error. A reference without categories or author yields nothing.
func (r *SimilarityRanker) Similar(ctx context.Context, id uuid.UUID) ([]domain.ScoredBook, error) {
	ref, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("similar reference: %w", err)
	}

	if len(ref.Categories) == 0 || strings.TrimSpace(ref.Author) == "" {
		slog.Debug("Reference lacks categories or author, skipping similarity", "id", id)
		return make([]domain.ScoredBook, 0), nil
	}

	top := newTopK(r.limit)
	candidates := 0
	err = r.store.Scan(ctx, Filter{AnyCategory: ref.Categories, ExcludeID: ref.ID}, func(c domain.Book) error {
		candidates++
		top.offer(domain.ScoredBook{Book: c, Score: r.scorer.Score(*ref, c)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("similar candidates: %w", err)
	}

	slog.Info("Ranked similar books", "id", id, "candidates", candidates, "returned", len(top.items))

	return top.items, nil
}

// Rank scores candidates against reference and returns the best, score descending then ID
// ascending. The reference itself is never returned.
func (r *SimilarityRanker) Rank(reference domain.Book, candidates []domain.Book) []domain.ScoredBook {
	top := newTopK(r.limit)
	for _, c := range candidates {
		if c.ID == reference.ID {
			continue
		}
		top.offer(domain.ScoredBook{Book: c, Score: r.scorer.Score(reference, c)})
	}
	return top.items
}

// topK keeps the best limit scored books seen so far, best first.
type topK struct {
	limit int
	items []domain.ScoredBook
}

func newTopK(limit int) *topK {
	return &topK{limit: limit, items: make([]domain.ScoredBook, 0, max(limit, 0))}
}

func (t *topK) offer(s domain.ScoredBook) {
	if t.limit <= 0 {
		return
	}
	n := len(t.items)
	if n == t.limit && !ranksBefore(s, t.items[n-1]) {
		return
	}

	i := sort.Search(n, func(i int) bool { return ranksBefore(s, t.items[i]) })
	if n < t.limit {
		t.items = append(t.items, s)
	}
	copy(t.items[i+1:], t.items[i:len(t.items)-1])
	t.items[i] = s
}

// ranksBefore orders by score descending, then ID ascending.
func ranksBefore(a, b domain.ScoredBook) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return domain.IDLess(a.ID, b.ID)
}
