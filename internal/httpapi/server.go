package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"classifyd/internal/classifier"
	"classifyd/internal/manager"
	"classifyd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Analyze(ctx context.Context, img image.Image) (classifier.Decision, error)
	Status(ctx context.Context) types.StatusResponse
	Ready() bool
}

type server struct {
	svc  Service
	opts Options
	home []byte
}

// NewMux builds the router. The homepage document is read once here; a
// missing file is an error.
func NewMux(svc Service, opts Options) (http.Handler, error) {
	opts = opts.withDefaults()
	home, err := os.ReadFile(opts.ViewPath)
	if err != nil {
		return nil, fmt.Errorf("read view %q: %w", opts.ViewPath, err)
	}
	s := &server{svc: svc, opts: opts, home: home}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, metrics, access log, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Compression for HTML and JSON responses
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", s.handleHome)
	r.Post("/analyze", s.handleAnalyze)
	if opts.StaticDir != "" {
		fs := http.FileServer(noListingFS{http.Dir(opts.StaticDir)})
		r.Handle("/static/*", http.StripPrefix("/static", fs))
	}

	r.Get("/status", s.handleStatus)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("draining"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r, nil
}

// handleHome godoc
// @Summary      Upload page
// @Description  Returns the static upload page. Query parameters are ignored.
// @Tags         ui
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.home)
}

// handleAnalyze godoc
// @Summary      Classify an image
// @Description  Accepts a multipart upload in field "file" and returns the predicted furniture label.
// @Description  Predictions at or below the confidence threshold return result "Unrecognized".
// @Tags         inference
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "image (JPEG, PNG, GIF, BMP, WEBP)"
// @Success      200  {object}  types.AnalyzeResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      413  {object}  types.ErrorResponse
// @Failure      415  {object}  types.ErrorResponse
// @Failure      429  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Failure      504  {object}  types.ErrorResponse
// @Router       /analyze [post]
func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		if isTooLarge(err) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "upload exceeds "+strconv.FormatInt(s.opts.MaxUploadBytes, 10)+" bytes")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, _, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, `missing form field "file"`)
		return
	}
	defer f.Close()

	img, err := classifier.DecodeImage(f, s.opts.MaxImagePixels)
	if err != nil {
		if errors.Is(err, classifier.ErrImageTooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeJSONError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	ctx := r.Context()
	if s.opts.AnalyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.AnalyzeTimeout)
		defer cancel()
	}
	d, err := s.svc.Analyze(ctx, img)
	if err != nil {
		// Client went away; nothing to answer.
		if errors.Is(r.Context().Err(), context.Canceled) {
			return
		}
		status := statusForError(err)
		if status == http.StatusTooManyRequests {
			IncrementBackpressure(manager.BusyReason(err))
			w.Header().Set("Retry-After", strconv.Itoa(int(s.opts.RetryAfter.Seconds()+0.5)))
		}
		writeJSONError(w, status, err.Error())
		return
	}

	resp := types.AnalyzeResponse{Result: d.Result()}
	if !d.Accepted {
		resp.Message = classifier.RejectedMessage
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// handleStatus godoc
// @Summary      Server status
// @Tags         ops
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.svc.Status(r.Context())); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || errors.Is(err, multipart.ErrMessageTooLarge)
}

// noListingFS hides directories so http.FileServer never renders listings.
type noListingFS struct{ fs http.FileSystem }

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
