package analyzer

import (
	"github.com/courseguard/crosscheck/domain"
)

// Comparator scores fingerprint pairs with a fixed weight configuration.
// All scoring is pure and symmetric.
type Comparator struct {
	weights domain.Weights
}

// NewComparator creates a comparator with the given combiner weights.
func NewComparator(weights domain.Weights) *Comparator {
	return &Comparator{weights: weights}
}

// Compare computes the full per-algorithm breakdown plus the combined score.
// Empty inputs score 0 against everything; this is reported, never raised.
func (c *Comparator) Compare(a, b *Fingerprint) domain.SimilarityScoreSet {
	scores := make(map[string]float64, 6)

	if a.Empty || b.Empty {
		for _, name := range domain.AlgorithmNames() {
			scores[name] = 0.0
		}
		return domain.SimilarityScoreSet{Scores: scores}
	}

	scores[domain.AlgorithmStructural] = StructuralSimilarity(a, b)
	scores[domain.AlgorithmTokenSequence] = TokenSequenceSimilarity(a, b)
	scores[domain.AlgorithmLexical] = LexicalSimilarity(a, b)
	scores[domain.AlgorithmEditDistance] = EditDistanceSimilarity(a, b)
	scores[domain.AlgorithmSemantic] = SemanticSimilarity(a, b)
	scores[domain.AlgorithmOrderInvariant] = OrderInvariantSimilarity(a, b)

	return domain.SimilarityScoreSet{
		Scores:   scores,
		Combined: Combine(scores, c.weights),
	}
}

// Combine is the weighted combiner: a convex combination of the component
// scores with weights renormalized to sum to 1. Zero total weight falls back
// to a plain average.
func Combine(scores map[string]float64, weights domain.Weights) float64 {
	total := weights.Sum()
	if total <= 0 {
		if len(scores) == 0 {
			return 0.0
		}
		sum := 0.0
		for _, score := range scores {
			sum += score
		}
		return sum / float64(len(scores))
	}

	combined := 0.0
	for _, name := range domain.AlgorithmNames() {
		combined += scores[name] * (weights.ByAlgorithm(name) / total)
	}

	// Guard against float drift past the unit interval.
	if combined > 1.0 {
		combined = 1.0
	}
	if combined < 0.0 {
		combined = 0.0
	}
	return combined
}
