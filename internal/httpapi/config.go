package httpapi

import "time"

const (
	defaultMaxUploadBytes int64 = 10 << 20
	defaultRetryAfter           = time.Second
)

// Options configures the router built by NewMux.
type Options struct {
	// ViewPath is the homepage document served verbatim at GET /.
	ViewPath string
	// StaticDir is served under /static/; empty disables the route.
	StaticDir string
	// MaxUploadBytes caps the /analyze request body; <= 0 uses 10 MiB.
	MaxUploadBytes int64
	// MaxImagePixels caps declared width*height; <= 0 uses classifier.DefaultMaxImagePixels.
	MaxImagePixels int
	// AnalyzeTimeout bounds a single /analyze call; zero disables it.
	AnalyzeTimeout time.Duration
	// RetryAfter is advertised on 429 responses.
	RetryAfter time.Duration
	// CORSOrigins lists allowed origins; empty disables CORS.
	CORSOrigins []string
}

func (o Options) withDefaults() Options {
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = defaultMaxUploadBytes
	}
	if o.RetryAfter <= 0 {
		o.RetryAfter = defaultRetryAfter
	}
	return o
}

var (
	corsAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	corsAllowedHeaders = []string{"X-Requested-With", "Content-Type"}
)
