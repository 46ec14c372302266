package manager

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync/atomic"
	"testing"
	"time"

	"classifyd/internal/classifier"
)

var testLabels = []string{"chair", "sofa", "lamp", "rug"}

// fakePredictor scores the class encoded in the image's top-left red channel.
// Images are built with colorImage so each request is distinguishable.
type fakePredictor struct {
	top    float32
	err    error
	delay  time.Duration
	block  chan struct{}
	calls  atomic.Int32
	closed atomic.Bool
}

func (f *fakePredictor) Labels() []string { return testLabels }

func (f *fakePredictor) Predict(ctx context.Context, img image.Image) (classifier.Prediction, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return classifier.Prediction{}, ctx.Err()
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return classifier.Prediction{}, f.err
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	idx := int(r>>8) % len(testLabels)
	scores := make([]float32, len(testLabels))
	rest := (1 - f.top) / float32(len(testLabels)-1)
	for i := range scores {
		scores[i] = rest
	}
	scores[idx] = f.top
	return classifier.NewPrediction(testLabels, scores)
}

func (f *fakePredictor) Close() error {
	f.closed.Store(true)
	return nil
}

// colorImage returns a 1x1 image whose red channel encodes class idx.
func colorImage(idx int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: uint8(idx), A: 255})
	return img
}

var errBoom = errors.New("boom")

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}
