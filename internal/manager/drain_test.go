package manager

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClose_DrainsAndRejects(t *testing.T) {
	block := make(chan struct{})
	f := &fakePredictor{top: 0.9, block: block}
	m := New(f, Config{Workers: 1, DrainTimeout: time.Second})

	done := make(chan error, 1)
	go func() {
		_, err := m.Analyze(context.Background(), colorImage(0))
		done <- err
	}()
	for f.calls.Load() < 1 {
		time.Sleep(time.Millisecond)
	}

	closed := make(chan error, 1)
	go func() { closed <- m.Close(context.Background()) }()
	for m.Ready() {
		time.Sleep(time.Millisecond)
	}
	if _, err := m.Analyze(testCtx(t), colorImage(0)); !IsDraining(err) {
		t.Fatalf("expected draining error, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("in-flight request failed: %v", err)
	}
	if err := <-closed; err != nil {
		t.Fatalf("close: %v", err)
	}
	if !f.closed.Load() {
		t.Fatalf("predictor not closed")
	}
	if m.Status(context.Background()).State != string(StateDraining) {
		t.Fatalf("expected draining state")
	}
}

func TestClose_TimeoutLeavesBusyPredictorOpen(t *testing.T) {
	f := &fakePredictor{top: 0.9, delay: 300 * time.Millisecond}
	m := New(f, Config{Workers: 1, DrainTimeout: 50 * time.Millisecond})

	done := make(chan error, 1)
	go func() {
		_, err := m.Analyze(context.Background(), colorImage(1))
		done <- err
	}()
	for f.calls.Load() < 1 {
		time.Sleep(time.Millisecond)
	}

	if err := m.Close(context.Background()); !errors.Is(err, ErrDrainIncomplete) {
		t.Fatalf("expected ErrDrainIncomplete, got %v", err)
	}
	if f.closed.Load() {
		t.Fatalf("predictor closed while Predict was running")
	}
	if err := <-done; err != nil {
		t.Fatalf("in-flight request failed: %v", err)
	}
	if f.closed.Load() {
		t.Fatalf("predictor closed after an incomplete drain")
	}
}

func TestClose_CanceledContextLeavesBusyPredictorOpen(t *testing.T) {
	block := make(chan struct{})
	f := &fakePredictor{top: 0.9, block: block}
	m := New(f, Config{Workers: 1, DrainTimeout: time.Minute})

	done := make(chan error, 1)
	go func() {
		_, err := m.Analyze(context.Background(), colorImage(1))
		done <- err
	}()
	for f.calls.Load() < 1 {
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Close(ctx); !errors.Is(err, ErrDrainIncomplete) {
		t.Fatalf("expected ErrDrainIncomplete, got %v", err)
	}
	close(block)
	if err := <-done; err != nil {
		t.Fatalf("in-flight request failed: %v", err)
	}
	if f.closed.Load() {
		t.Fatalf("predictor closed while Predict was running")
	}
}

func TestClose_Idempotent(t *testing.T) {
	m := New(&fakePredictor{}, Config{})
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
