package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultModelURL is the fixed location the artifact is fetched from on a fresh deployment.
const DefaultModelURL = "https://drive.google.com/uc?export=download&id=1-EUgYdL06ckEOM9cf-GJSkLznWFYykEp"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:             "0.0.0.0:5000",
		ModelURL:         DefaultModelURL,
		ModelPath:        "app/export_model.onnx",
		ViewPath:         "app/view/index.html",
		StaticDir:        "app/static",
		ThresholdPercent: 69,
		MaxUploadBytes:   10 << 20,
		MaxImagePixels:   40_000_000,
		MaxQueueDepth:    32,
		MaxWaitSeconds:   30,
		DrainTimeoutS:    10,
		FetchTimeoutSecs: 300,
		CORSOrigins:      []string{"*"},
		LogLevel:         "info",
		LogFormat:        "json",
	}
}

// Merge overlays the non-zero fields of o onto c.
func (c Config) Merge(o Config) Config {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.ModelURL != "" {
		c.ModelURL = o.ModelURL
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.ModelSHA256 != "" {
		c.ModelSHA256 = o.ModelSHA256
	}
	if o.RuntimeLib != "" {
		c.RuntimeLib = o.RuntimeLib
	}
	if o.ViewPath != "" {
		c.ViewPath = o.ViewPath
	}
	if o.StaticDir != "" {
		c.StaticDir = o.StaticDir
	}
	if o.ThresholdPercent != 0 {
		c.ThresholdPercent = o.ThresholdPercent
	}
	if o.MaxUploadBytes != 0 {
		c.MaxUploadBytes = o.MaxUploadBytes
	}
	if o.MaxImagePixels != 0 {
		c.MaxImagePixels = o.MaxImagePixels
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.MaxQueueDepth != 0 {
		c.MaxQueueDepth = o.MaxQueueDepth
	}
	if o.MaxWaitSeconds != 0 {
		c.MaxWaitSeconds = o.MaxWaitSeconds
	}
	if o.AnalyzeTimeoutS != 0 {
		c.AnalyzeTimeoutS = o.AnalyzeTimeoutS
	}
	if o.DrainTimeoutS != 0 {
		c.DrainTimeoutS = o.DrainTimeoutS
	}
	if o.FetchRetries != 0 {
		c.FetchRetries = o.FetchRetries
	}
	if o.FetchTimeoutSecs != 0 {
		c.FetchTimeoutSecs = o.FetchTimeoutSecs
	}
	if len(o.CORSOrigins) > 0 {
		c.CORSOrigins = append([]string(nil), o.CORSOrigins...)
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	return c
}

// envPrefix namespaces environment overrides, e.g. CLASSIFYD_ADDR.
const envPrefix = "CLASSIFYD_"

// FromEnv reads CLASSIFYD_* variables. Unparsable numbers are reported as errors
// rather than silently ignored.
func FromEnv() (Config, error) {
	var c Config
	var err error
	str := func(key string, dst *string) {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		v := os.Getenv(envPrefix + key)
		if v == "" || err != nil {
			return
		}
		n, e := strconv.Atoi(v)
		if e != nil {
			err = fmt.Errorf("%s%s: %w", envPrefix, key, e)
			return
		}
		*dst = n
	}
	str("ADDR", &c.Addr)
	str("MODEL_URL", &c.ModelURL)
	str("MODEL_PATH", &c.ModelPath)
	str("MODEL_SHA256", &c.ModelSHA256)
	str("RUNTIME_LIB", &c.RuntimeLib)
	str("VIEW_PATH", &c.ViewPath)
	str("STATIC_DIR", &c.StaticDir)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	num("MAX_IMAGE_PIXELS", &c.MaxImagePixels)
	num("WORKERS", &c.Workers)
	num("MAX_QUEUE_DEPTH", &c.MaxQueueDepth)
	num("MAX_WAIT_SECONDS", &c.MaxWaitSeconds)
	num("ANALYZE_TIMEOUT_SECONDS", &c.AnalyzeTimeoutS)
	num("DRAIN_TIMEOUT_SECONDS", &c.DrainTimeoutS)
	num("FETCH_RETRIES", &c.FetchRetries)
	num("FETCH_TIMEOUT_SECONDS", &c.FetchTimeoutSecs)
	if v := os.Getenv(envPrefix + "THRESHOLD_PERCENT"); v != "" && err == nil {
		f, e := strconv.ParseFloat(v, 64)
		if e != nil {
			err = fmt.Errorf("%sTHRESHOLD_PERCENT: %w", envPrefix, e)
		} else {
			c.ThresholdPercent = f
		}
	}
	if v := os.Getenv(envPrefix + "MAX_UPLOAD_BYTES"); v != "" && err == nil {
		n, e := strconv.ParseInt(v, 10, 64)
		if e != nil {
			err = fmt.Errorf("%sMAX_UPLOAD_BYTES: %w", envPrefix, e)
		} else {
			c.MaxUploadBytes = n
		}
	}
	if v := os.Getenv(envPrefix + "CORS_ORIGINS"); v != "" {
		c.CORSOrigins = SplitCSV(v)
	}
	return c, err
}

// Validate checks values that would otherwise fail late at request time.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if c.ModelPath == "" {
		return fmt.Errorf("model_path is required")
	}
	// Zero is the unset marker everywhere else, so it cannot be a real threshold.
	if c.ThresholdPercent <= 0 || c.ThresholdPercent > 100 {
		return fmt.Errorf("threshold_percent must be within (0,100], got %v", c.ThresholdPercent)
	}
	if c.MaxUploadBytes < 0 || c.MaxImagePixels < 0 {
		return fmt.Errorf("max_upload_bytes and max_image_pixels must not be negative")
	}
	if c.Workers < 0 || c.MaxQueueDepth < 0 || c.FetchRetries < 0 {
		return fmt.Errorf("workers, max_queue_depth and fetch_retries must not be negative")
	}
	switch c.LogFormat {
	case "", "json", "console":
	default:
		return fmt.Errorf("unsupported log_format %q (json|console)", c.LogFormat)
	}
	return nil
}

// SplitCSV splits a comma-separated list, trimming blanks and dropping empties.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
