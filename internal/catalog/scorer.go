package catalog

import "github.com/DjordjeVuckovic/book-hunter/internal/domain"

// Scorer computes how similar candidate is to reference. Higher is more similar.
// Implementations must be pure: the same pair always yields the same score.
type Scorer interface {
	Score(reference, candidate domain.Book) float64
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(reference, candidate domain.Book) float64

func (f ScorerFunc) Score(reference, candidate domain.Book) float64 {
	return f(reference, candidate)
}

// WeightedScorer is a linear combination of shared categories, same author and rating:
//
//	Category*|shared categories| + Author*[same author] + Rating*average rating
type WeightedScorer struct {
	Category float64
	Author   float64
	Rating   float64
}

// DefaultScorer weights one shared category at 5, a shared author at 25 and the rating at 1.
var DefaultScorer = WeightedScorer{Category: 5, Author: 25, Rating: 1}

func (w WeightedScorer) Score(reference, candidate domain.Book) float64 {
	score := w.Category * float64(SharedCount(reference.Categories, candidate.Categories))
	if candidate.Author == reference.Author {
		score += w.Author
	}
	score += w.Rating * candidate.Rating()
	return score
}

// SharedCount returns the size of the intersection of two label sets. Duplicates count once.
func SharedCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}

	n := 0
	for _, v := range b {
		if _, ok := set[v]; ok {
			n++
			delete(set, v)
		}
	}
	return n
}
