package manager

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/classifier"
	"classifyd/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
	defaultDrainTimeout  = 10 * time.Second
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// ThresholdPercent is the acceptance cut-off; <= 0 uses classifier.DefaultThresholdPercent.
	ThresholdPercent float64
	// Workers bounds concurrent inferences; <= 0 uses runtime.NumCPU().
	Workers       int
	MaxQueueDepth int
	MaxWait       time.Duration
	DrainTimeout  time.Duration
	// Model is reported by Status.
	Model  types.ModelInfo
	Logger zerolog.Logger
	// HasGPU is reported by Status; probed once by the caller.
	HasGPU bool
}

func (c Config) withDefaults() Config {
	if c.ThresholdPercent <= 0 {
		c.ThresholdPercent = classifier.DefaultThresholdPercent
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxQueueDepth <= 0 {
		c.MaxQueueDepth = defaultMaxQueueDepth
	}
	if c.MaxWait <= 0 {
		c.MaxWait = defaultMaxWait
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = defaultDrainTimeout
	}
	return c
}
