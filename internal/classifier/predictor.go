package classifier

import (
	"context"
	"fmt"
	"image"
	"math"
)

// Predictor maps an image to a class. Implementations are read-only after
// construction and safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, img image.Image) (Prediction, error)
	Labels() []string
}

// Prediction is the raw predictor output.
type Prediction struct {
	Label  string
	Index  int
	Scores []float32
}

// NewPrediction picks the top-scoring label.
func NewPrediction(labels []string, scores []float32) (Prediction, error) {
	if len(scores) == 0 {
		return Prediction{}, fmt.Errorf("empty score vector")
	}
	if len(scores) != len(labels) {
		return Prediction{}, fmt.Errorf("score vector has %d entries, want %d labels", len(scores), len(labels))
	}
	idx := argmax(scores)
	return Prediction{Label: labels[idx], Index: idx, Scores: scores}, nil
}

func argmax(v []float32) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

// softmax converts logits to probabilities in place.
func softmax(v []float32) {
	if len(v) == 0 {
		return
	}
	top := v[argmax(v)]
	var sum float64
	for i, x := range v {
		e := math.Exp(float64(x - top))
		v[i] = float32(e)
		sum += e
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / sum)
	}
}
