package httpapi

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"classifyd/internal/classifier"
	"classifyd/internal/manager"
	"classifyd/pkg/types"
)

var testLabels = []string{"chair", "sofa", "lamp", "KALLAX Shelving unit"}

// stubPredictor returns a fixed score for testLabels[index].
type stubPredictor struct {
	index int
	top   float32
	err   error
	block chan struct{}
}

func (p *stubPredictor) Labels() []string { return testLabels }

func (p *stubPredictor) Predict(ctx context.Context, _ image.Image) (classifier.Prediction, error) {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return classifier.Prediction{}, ctx.Err()
		}
	}
	if p.err != nil {
		return classifier.Prediction{}, p.err
	}
	scores := make([]float32, len(testLabels))
	rest := (1 - p.top) / float32(len(testLabels)-1)
	for i := range scores {
		scores[i] = rest
	}
	scores[p.index] = p.top
	return classifier.NewPrediction(testLabels, scores)
}

// mockService records calls and returns canned answers.
type mockService struct {
	decision classifier.Decision
	err      error
	status   types.StatusResponse
	ready    bool
	calls    int
}

func (m *mockService) Analyze(ctx context.Context, img image.Image) (classifier.Decision, error) {
	m.calls++
	return m.decision, m.err
}
func (m *mockService) Status(context.Context) types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                                 { return m.ready }

// writeView creates an index.html and a static dir under a temp dir.
func writeView(t *testing.T, body string) (viewPath, staticDir string) {
	t.Helper()
	dir := t.TempDir()
	viewPath = filepath.Join(dir, "index.html")
	if err := os.WriteFile(viewPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	staticDir = filepath.Join(dir, "static")
	if err := os.MkdirAll(filepath.Join(staticDir, "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "js", "app.js"), []byte("console.log('hi')"), 0o644); err != nil {
		t.Fatal(err)
	}
	return viewPath, staticDir
}

// newTestMux builds the router with a temp view and static dir.
func newTestMux(t *testing.T, svc Service, opts Options) http.Handler {
	t.Helper()
	if opts.ViewPath == "" {
		opts.ViewPath, opts.StaticDir = writeView(t, "<html>home</html>")
	}
	h, err := NewMux(svc, opts)
	if err != nil {
		t.Fatalf("NewMux: %v", err)
	}
	return h
}

// pngBytes encodes a small solid image.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	return solidPNG(t, 200)
}

// solidPNG encodes an 8x8 image filled with red channel value red.
func solidPNG(t *testing.T, red uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: red, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// multipartBody builds a multipart form with data under field.
func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "upload.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

var _ Service = (*manager.Manager)(nil)
