package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Devices an artifact can target.
const (
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"
)

// Metadata describes how to feed and read an artifact. It lives next to the
// model as <name>.json; every field is optional.
type Metadata struct {
	Classes      []string   `json:"classes"`
	ImageSize    int        `json:"image_size"`
	InputName    string     `json:"input_name"`
	OutputName   string     `json:"output_name"`
	Mean         [3]float32 `json:"mean"`
	Std          [3]float32 `json:"std"`
	ApplySoftmax bool       `json:"apply_softmax"`
	Device       string     `json:"device"`
}

var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// MetadataPath returns the sidecar path for a model file: model.onnx -> model.json.
func MetadataPath(modelPath string) string {
	return strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".json"
}

// LoadMetadata reads the sidecar at path. A missing file yields defaults.
func LoadMetadata(path string) (Metadata, error) {
	var m Metadata
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return m, fmt.Errorf("read metadata: %w", err)
	default:
		if err := json.Unmarshal(b, &m); err != nil {
			return m, fmt.Errorf("parse metadata %s: %w", path, err)
		}
	}
	m.applyDefaults()
	return m, m.validate()
}

func (m *Metadata) applyDefaults() {
	if m.ImageSize == 0 {
		m.ImageSize = 224
	}
	if m.Mean == ([3]float32{}) {
		m.Mean = imagenetMean
	}
	if m.Std == ([3]float32{}) {
		m.Std = imagenetStd
	}
	m.Device = strings.ToLower(strings.TrimSpace(m.Device))
	if m.Device == "" {
		m.Device = DeviceCPU
	}
	if len(m.Classes) > 0 {
		m.Classes = NormalizeLabels(m.Classes)
	}
}

func (m Metadata) validate() error {
	if m.ImageSize < 0 {
		return fmt.Errorf("metadata: image_size must be positive, got %d", m.ImageSize)
	}
	for i, s := range m.Std {
		if s == 0 {
			return fmt.Errorf("metadata: std[%d] must be non-zero", i)
		}
	}
	switch m.Device {
	case DeviceCPU, DeviceCUDA:
	default:
		return fmt.Errorf("metadata: unsupported device %q", m.Device)
	}
	return nil
}
