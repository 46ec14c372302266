// Package manager owns the loaded predictor for the lifetime of the process
// and coordinates access to it. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, readiness.
//   - config.go: Config and package defaults.
//   - errors.go: error types and helpers (IsTooBusy, IsDraining, IsPredictionFailure).
//   - admission.go: bounded worker pool in front of the predictor.
//   - analyze.go: Analyze, the per-request inference entry point.
//   - drain.go: Close, graceful drain on shutdown.
//   - status_report.go: Status for /status.
//   - metrics.go: Prometheus inference metrics.
//
// The predictor is constructed by the caller and injected through New; the
// manager never loads or replaces it.
package manager
