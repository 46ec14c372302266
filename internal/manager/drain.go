package manager

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrDrainIncomplete is returned by Close when admitted requests outlived the
// drain timeout. The predictor is left open in that case.
var ErrDrainIncomplete = errors.New("drain incomplete: predictor still in use")

// Close initiates a graceful drain and releases the predictor.
//   - Marks the manager draining so new requests get a 503.
//   - Waits up to the drain timeout (or ctx) for admitted requests to finish.
//   - Closes the predictor if it implements io.Closer and no Predict call is running.
func (m *Manager) Close(ctx context.Context) error {
	if m.draining.Swap(true) {
		return nil
	}
	m.log.Info().Msg("drain start")

	deadline := time.NewTimer(m.cfg.DrainTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for len(m.queueCh) > 0 || !m.predictMu.TryLock() {
		select {
		case <-tick.C:
			continue
		case <-deadline.C:
		case <-ctx.Done():
		}
		m.log.Warn().Int("pending", len(m.queueCh)).Msg("drain timeout; predictor left open")
		return ErrDrainIncomplete
	}
	defer m.predictMu.Unlock()
	m.predClosed = true

	var err error
	if c, ok := m.pred.(io.Closer); ok {
		err = c.Close()
	}
	m.log.Info().Msg("drain done")
	return err
}
