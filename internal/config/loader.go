package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are filled from Default by Merge.
type Config struct {
	Addr        string `json:"addr" yaml:"addr" toml:"addr"`
	ModelURL    string `json:"model_url" yaml:"model_url" toml:"model_url"`
	ModelPath   string `json:"model_path" yaml:"model_path" toml:"model_path"`
	ModelSHA256 string `json:"model_sha256" yaml:"model_sha256" toml:"model_sha256"`
	// ONNX Runtime shared library; empty lets the runtime use its platform default.
	RuntimeLib string `json:"runtime_lib" yaml:"runtime_lib" toml:"runtime_lib"`
	ViewPath   string `json:"view_path" yaml:"view_path" toml:"view_path"`
	StaticDir  string `json:"static_dir" yaml:"static_dir" toml:"static_dir"`

	ThresholdPercent float64 `json:"threshold_percent" yaml:"threshold_percent" toml:"threshold_percent"`
	MaxUploadBytes   int64   `json:"max_upload_bytes" yaml:"max_upload_bytes" toml:"max_upload_bytes"`
	MaxImagePixels   int     `json:"max_image_pixels" yaml:"max_image_pixels" toml:"max_image_pixels"`

	Workers          int `json:"workers" yaml:"workers" toml:"workers"`
	MaxQueueDepth    int `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxWaitSeconds   int `json:"max_wait_seconds" yaml:"max_wait_seconds" toml:"max_wait_seconds"`
	AnalyzeTimeoutS  int `json:"analyze_timeout_seconds" yaml:"analyze_timeout_seconds" toml:"analyze_timeout_seconds"`
	DrainTimeoutS    int `json:"drain_timeout_seconds" yaml:"drain_timeout_seconds" toml:"drain_timeout_seconds"`
	FetchRetries     int `json:"fetch_retries" yaml:"fetch_retries" toml:"fetch_retries"`
	FetchTimeoutSecs int `json:"fetch_timeout_seconds" yaml:"fetch_timeout_seconds" toml:"fetch_timeout_seconds"`

	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
