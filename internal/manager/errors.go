package manager

import "errors"

// tooBusyError signals queue overflow or wait timeout for 429 mapping.
type tooBusyError struct{ reason string }

func (e tooBusyError) Error() string { return "too busy: " + e.reason }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}

// BusyReason returns the backpressure reason label, or "" when err is not backpressure.
func BusyReason(err error) string {
	var e tooBusyError
	if errors.As(err, &e) {
		return e.reason
	}
	return ""
}

// drainingError signals that the server is shutting down (return 503).
type drainingError struct{}

func (drainingError) Error() string { return "server is shutting down" }

// IsDraining reports whether err was caused by a drain in progress.
func IsDraining(err error) bool {
	var e drainingError
	return errors.As(err, &e)
}

// predictionError wraps a predictor failure (return 500).
type predictionError struct{ err error }

func (e predictionError) Error() string { return "prediction failed: " + e.err.Error() }

func (e predictionError) Unwrap() error { return e.err }

// IsPredictionFailure reports whether err came from the predictor.
func IsPredictionFailure(err error) bool {
	var e predictionError
	return errors.As(err, &e)
}
