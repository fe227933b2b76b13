package fs

import (
	"math"

	"github.com/carewatch/regrag"
)

// CosineSimilarity returns the cosine of the angle between a and b,
// accumulating in float64 for stability. Vectors of different lengths are a
// data-integrity violation and return EDIMENSION; a zero-magnitude vector
// returns EINVALID.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, regrag.Errorf(regrag.EDIMENSION, "vector length %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, regrag.Errorf(regrag.EINVALID, "empty vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, regrag.Errorf(regrag.EINVALID, "zero-magnitude vector")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
