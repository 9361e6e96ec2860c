package embedding

import "math"

// L2Normalize scales vec to unit length. A zero-magnitude or empty vector
// cannot be normalized and yields nil, which callers treat as "no embedding".
func L2Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return nil
	}

	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
