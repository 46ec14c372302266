package types

// ModelInfo describes the artifact the predictor was loaded from.
type ModelInfo struct {
	// Absolute path to the artifact on disk.
	// example: /srv/classifyd/app/export_model.onnx
	Path string `json:"path" example:"/srv/classifyd/app/export_model.onnx"`
	// Number of labels the model predicts.
	// example: 29
	Labels int `json:"labels" example:"29"`
	// Square input edge in pixels.
	// example: 224
	ImageSize int `json:"image_size" example:"224"`
	// Execution device (cpu or cuda).
	// example: cpu
	Device string `json:"device" example:"cpu"`
}
