package e2e

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"classifyd/internal/classifier"
	"classifyd/internal/httpapi"
	"classifyd/internal/manager"
)

// fakePredictor always predicts label index with score top.
type fakePredictor struct {
	index int
	top   float32
	delay time.Duration
}

func (p *fakePredictor) Labels() []string { return classifier.DefaultLabels }

func (p *fakePredictor) Predict(ctx context.Context, _ image.Image) (classifier.Prediction, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return classifier.Prediction{}, ctx.Err()
		}
	}
	n := len(classifier.DefaultLabels)
	scores := make([]float32, n)
	for i := range scores {
		scores[i] = (1 - p.top) / float32(n-1)
	}
	scores[p.index] = p.top
	return classifier.NewPrediction(classifier.DefaultLabels, scores)
}

// artifactServer serves body and counts requests.
func artifactServer(t *testing.T, body []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// newServer wires a manager around pred behind the real router.
func newServer(t *testing.T, pred classifier.Predictor, cfg manager.Config, home string) (*httptest.Server, *manager.Manager) {
	t.Helper()
	dir := t.TempDir()
	view := filepath.Join(dir, "index.html")
	if err := os.WriteFile(view, []byte(home), 0o644); err != nil {
		t.Fatalf("write view: %v", err)
	}
	mgr := manager.New(pred, cfg)
	mux, err := httpapi.NewMux(mgr, httpapi.Options{ViewPath: view, CORSOrigins: []string{"*"}})
	if err != nil {
		t.Fatalf("NewMux: %v", err)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mgr
}

func jpegLikePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 20), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

// postImage uploads data as form field "file" and returns status and body.
func postImage(t *testing.T, url string, data []byte) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	_, _ = fw.Write(data)
	_ = mw.Close()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url+"/analyze", &buf)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
