package intent

import (
	"context"
	"math"
)

// Model is a multinomial logistic regression. Weights is classes x features.
type Model struct {
	Weights [][]float64
	Bias    []float64
}

// trainModel fits a softmax regression with L2 penalty 1/(2C)·||W||² by
// full-batch gradient descent from zero weights, so the result is
// deterministic for a given training set.
func trainModel(ctx context.Context, xs []sparseVector, ys []int, classes, features int, opts ModelOptions) (*Model, error) {
	m := &Model{
		Weights: make([][]float64, classes),
		Bias:    make([]float64, classes),
	}
	gradW := make([][]float64, classes)
	for k := range m.Weights {
		m.Weights[k] = make([]float64, features)
		gradW[k] = make([]float64, features)
	}
	gradB := make([]float64, classes)
	probs := make([]float64, classes)

	n := float64(len(xs))
	lambda := 1 / (opts.C * n)

	for iter := 0; iter < opts.MaxIter; iter++ {
		if iter%50 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		for k := range gradW {
			clear(gradW[k])
		}
		clear(gradB)

		for i, x := range xs {
			m.probabilities(x, probs)
			for k := 0; k < classes; k++ {
				diff := probs[k]
				if k == ys[i] {
					diff--
				}
				gradB[k] += diff
				for j, idx := range x.indices {
					gradW[k][idx] += diff * x.values[j]
				}
			}
		}

		var maxGrad float64
		for k := 0; k < classes; k++ {
			for f := 0; f < features; f++ {
				g := gradW[k][f]/n + lambda*m.Weights[k][f]
				m.Weights[k][f] -= opts.LearningRate * g
				maxGrad = math.Max(maxGrad, math.Abs(g))
			}
			g := gradB[k] / n
			m.Bias[k] -= opts.LearningRate * g
			maxGrad = math.Max(maxGrad, math.Abs(g))
		}

		if maxGrad < opts.Tolerance {
			break
		}
	}
	return m, nil
}

// probabilities writes softmax(Wx+b) into out.
func (m *Model) probabilities(x sparseVector, out []float64) {
	maxScore := math.Inf(-1)
	for k := range m.Weights {
		s := m.Bias[k]
		for j, idx := range x.indices {
			s += m.Weights[k][idx] * x.values[j]
		}
		out[k] = s
		if s > maxScore {
			maxScore = s
		}
	}

	var sum float64
	for k := range out {
		out[k] = math.Exp(out[k] - maxScore)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
}

// Classes returns the number of output classes.
func (m *Model) Classes() int {
	return len(m.Bias)
}
