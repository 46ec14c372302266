package manager

import (
	"context"
	"image"
	"time"

	"classifyd/internal/classifier"
)

// Analyze classifies img and applies the acceptance policy. Low confidence is
// not an error: it yields a Decision with Accepted == false.
func (m *Manager) Analyze(ctx context.Context, img image.Image) (classifier.Decision, error) {
	if m.draining.Load() {
		return classifier.Decision{}, drainingError{}
	}
	release, err := m.beginInference(ctx)
	if err != nil {
		if reason := BusyReason(err); reason != "" {
			inferenceTotal.WithLabelValues("busy").Inc()
			m.log.Warn().Str("reason", reason).Msg("inference rejected")
		}
		return classifier.Decision{}, err
	}
	defer release()
	// Close may have started while this request waited for a slot.
	if m.draining.Load() {
		return classifier.Decision{}, drainingError{}
	}

	m.predictMu.RLock()
	if m.predClosed {
		m.predictMu.RUnlock()
		return classifier.Decision{}, drainingError{}
	}
	inferenceInflight.Inc()
	start := time.Now()
	pred, err := m.pred.Predict(ctx, img)
	dur := time.Since(start)
	inferenceInflight.Dec()
	m.predictMu.RUnlock()
	inferenceDuration.Observe(dur.Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return classifier.Decision{}, ctx.Err()
		}
		m.failedTotal.Add(1)
		inferenceTotal.WithLabelValues("failed").Inc()
		m.log.Error().Err(err).Dur("dur", dur).Msg("prediction failed")
		return classifier.Decision{}, predictionError{err: err}
	}

	d, err := classifier.Decide(pred, m.cfg.ThresholdPercent)
	if err != nil {
		m.failedTotal.Add(1)
		inferenceTotal.WithLabelValues("failed").Inc()
		return classifier.Decision{}, predictionError{err: err}
	}
	if d.Accepted {
		m.acceptedTotal.Add(1)
		inferenceTotal.WithLabelValues("accepted").Inc()
	} else {
		m.rejectedTotal.Add(1)
		inferenceTotal.WithLabelValues("rejected").Inc()
	}
	m.log.Debug().
		Str("label", d.Label).
		Float64("confidence", d.Confidence).
		Bool("accepted", d.Accepted).
		Dur("dur", dur).
		Msg("prediction")
	return d, nil
}
