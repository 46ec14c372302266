package manager

import (
	"context"
	"testing"

	"classifyd/pkg/types"
)

func TestStatus(t *testing.T) {
	m := New(&fakePredictor{top: 0.9}, Config{
		Workers:       3,
		MaxQueueDepth: 5,
		Model:         types.ModelInfo{Path: "/m/export_model.onnx", ImageSize: 224, Device: "cpu"},
	})
	if _, err := m.Analyze(testCtx(t), colorImage(2)); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	s := m.Status(context.Background())
	if s.State != "ready" {
		t.Fatalf("state=%q", s.State)
	}
	if s.Model.Labels != len(testLabels) || s.Model.Path != "/m/export_model.onnx" {
		t.Fatalf("model=%+v", s.Model)
	}
	if s.Inference.Workers != 3 || s.Inference.MaxQueueDepth != 5 || s.Inference.AcceptedTotal != 1 {
		t.Fatalf("inference=%+v", s.Inference)
	}
	if s.ThresholdPercent != 69 {
		t.Fatalf("threshold=%v", s.ThresholdPercent)
	}
	if s.Host == nil || s.Host.CPUs <= 0 {
		t.Fatalf("host=%+v", s.Host)
	}
}
