package intent

import "math"

// applyConfidencePolicy turns raw class probabilities into reported
// confidences and returns them with the argmax index.
//
// A top probability above highThreshold saturates to a one-hot result.
// Otherwise classes above noiseFloor are renormalized among themselves and
// the rest are zeroed. If nothing clears the floor the argmax is one-hot.
func applyConfidencePolicy(probs []float64, highThreshold, noiseFloor float64) ([]float64, int) {
	out := make([]float64, len(probs))
	if len(probs) == 0 {
		return out, -1
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	if probs[best] > highThreshold {
		out[best] = 1
		return out, best
	}

	var total float64
	for _, p := range probs {
		if p > noiseFloor {
			total += p
		}
	}
	if total == 0 {
		out[best] = 1
		return out, best
	}

	for i, p := range probs {
		if p > noiseFloor {
			out[i] = round2(p / total)
		}
	}
	return out, best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
