package ai

import (
	"fmt"
	"math"
	"sort"
)

// Match is one search hit: the index of a stored vector and its cosine score.
type Match struct {
	Index int
	Score float64
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a zero vector.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// TopK scores query against every vector and returns the k best, highest first.
func TopK(query []float32, vectors [][]float32, k int) ([]Match, error) {
	matches := make([]Match, 0, len(vectors))
	for i, v := range vectors {
		if len(v) != len(query) {
			return nil, fmt.Errorf("vector %d has dimension %d, query has %d", i, len(v), len(query))
		}
		matches = append(matches, Match{Index: i, Score: Cosine(query, v)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}
