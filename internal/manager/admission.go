package manager

import (
	"context"
	"time"
)

// beginInference reserves a queue slot and then a worker slot.
// Returns a release func to be deferred.
func (m *Manager) beginInference(ctx context.Context) (func(), error) {
	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}

	// A full queue rejects immediately instead of piling up waiters.
	select {
	case m.queueCh <- struct{}{}:
	default:
		return func() {}, tooBusyError{reason: "queue_full"}
	}

	acquired := false
	defer func() {
		if !acquired {
			<-m.queueCh
		}
	}()
	timer := time.NewTimer(m.cfg.MaxWait)
	defer timer.Stop()
	select {
	case m.genCh <- struct{}{}:
		acquired = true
		return func() { <-m.genCh; <-m.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, tooBusyError{reason: "wait_timeout"}
	}
}
