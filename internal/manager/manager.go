package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/classifier"
)

// State represents lifecycle state of the manager.
type State string

const (
	StateReady    State = "ready"
	StateDraining State = "draining"
)

type Manager struct {
	pred classifier.Predictor
	cfg  Config
	log  zerolog.Logger

	// Admission primitives: genCh holds one token per running inference,
	// queueCh one per admitted request (running or waiting).
	genCh   chan struct{}
	queueCh chan struct{}

	draining atomic.Bool

	// predictMu is read-held for every Predict call; Close takes the write
	// side so the predictor is never released under a running inference.
	predictMu  sync.RWMutex
	predClosed bool

	acceptedTotal atomic.Uint64
	rejectedTotal atomic.Uint64
	failedTotal   atomic.Uint64

	startTime time.Time
}

// New wraps an already loaded predictor. The predictor is shared read-only by
// every request for the lifetime of the Manager.
func New(pred classifier.Predictor, cfg Config) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		pred:      pred,
		cfg:       cfg,
		log:       cfg.Logger,
		genCh:     make(chan struct{}, cfg.Workers),
		queueCh:   make(chan struct{}, cfg.Workers+cfg.MaxQueueDepth),
		startTime: time.Now(),
	}
}

// Ready reports whether new requests are accepted.
func (m *Manager) Ready() bool { return !m.draining.Load() }

// Labels returns the predictor's label set.
func (m *Manager) Labels() []string {
	return append([]string(nil), m.pred.Labels()...)
}

// ThresholdPercent returns the effective acceptance threshold.
func (m *Manager) ThresholdPercent() float64 { return m.cfg.ThresholdPercent }
