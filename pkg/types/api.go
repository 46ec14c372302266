package types

// AnalyzeResponse is returned by POST /analyze for both accepted and rejected predictions.
type AnalyzeResponse struct {
	// Predicted label with confidence, or "Unrecognized" when the prediction was rejected.
	// example: KALLAX Shelving unit (prob=95%)
	Result string `json:"result" example:"KALLAX Shelving unit (prob=95%)"`
	// Human-readable explanation for a rejected prediction.
	// example: I can't identify the object
	Message string `json:"message,omitempty" example:"I can't identify the object"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: missing form field "file"
	Error string `json:"error" example:"missing form field \"file\""`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// InferenceStatus summarizes the admission pool for /status.
type InferenceStatus struct {
	// Maximum concurrent inferences.
	// example: 8
	Workers int `json:"workers" example:"8"`
	// Inferences currently running.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Requests waiting for a worker.
	// example: 0
	Queued int `json:"queued" example:"0"`
	// Maximum waiting requests before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
	// Accepted predictions since start.
	// example: 120
	AcceptedTotal uint64 `json:"accepted_total" example:"120"`
	// Low-confidence rejections since start.
	// example: 7
	RejectedTotal uint64 `json:"rejected_total" example:"7"`
	// Failed inferences since start.
	// example: 0
	FailedTotal uint64 `json:"failed_total" example:"0"`
}

// HostStatus describes the machine the predictor runs on.
type HostStatus struct {
	// Logical CPUs.
	// example: 8
	CPUs int `json:"cpus" example:"8"`
	// Total memory in MB.
	// example: 16000
	MemTotalMB uint64 `json:"mem_total_mb" example:"16000"`
	// Used memory percentage.
	// example: 42.5
	MemUsedPercent float64 `json:"mem_used_percent" example:"42.5"`
	// Whether a GPU was detected.
	// example: false
	GPU bool `json:"gpu" example:"false"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Lifecycle state (ready, draining).
	// example: ready
	State string `json:"state" example:"ready"`
	// Loaded model.
	Model ModelInfo `json:"model"`
	// Acceptance threshold in percent; confidences at or below are rejected.
	// example: 69
	ThresholdPercent float64 `json:"threshold_percent" example:"69"`
	// Admission pool counters.
	Inference InferenceStatus `json:"inference"`
	// Host resources; omitted when they cannot be read.
	Host *HostStatus `json:"host,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
