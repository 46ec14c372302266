package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/artifact"
	"classifyd/internal/classifier"
	"classifyd/internal/common/fsutil"
	"classifyd/internal/common/hostinfo"
	"classifyd/internal/config"
	"classifyd/internal/httpapi"
	"classifyd/internal/manager"
	"classifyd/pkg/types"
)

const shutdownTimeout = 5 * time.Second

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// runFetch makes sure the artifact exists locally and returns its resolved path.
func runFetch(ctx context.Context, cfg config.Config, log zerolog.Logger) (string, error) {
	path, err := fsutil.ResolvePath(cfg.ModelPath)
	if err != nil {
		return "", err
	}
	f := artifact.New(artifact.Options{
		Timeout: seconds(cfg.FetchTimeoutSecs),
		Retries: cfg.FetchRetries,
		SHA256:  cfg.ModelSHA256,
		Logger:  log,
	})
	downloaded, err := f.Ensure(ctx, cfg.ModelURL, path)
	if err != nil {
		return "", err
	}
	log.Info().Str("path", path).Bool("downloaded", downloaded).Msg("model artifact ready")
	return path, nil
}

// runServe fetches and loads the model, then serves HTTP until ctx is canceled.
func runServe(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	path, err := runFetch(ctx, cfg, log)
	if err != nil {
		return err
	}

	hasGPU := hostinfo.HasGPU()
	pred, err := classifier.Load(path, classifier.LoadOptions{
		RuntimeLib: cfg.RuntimeLib,
		HasGPU:     func() bool { return hasGPU },
		Logger:     log,
	})
	if err != nil {
		var ie *classifier.IncompatibleError
		if errors.As(err, &ie) {
			log.Error().Str("reason", ie.Reason).Str("remedy", ie.Remedy).Msg("incompatible model artifact")
		}
		return fmt.Errorf("load model: %w", err)
	}
	meta := pred.Metadata()

	mgr := manager.New(pred, manager.Config{
		ThresholdPercent: cfg.ThresholdPercent,
		Workers:          cfg.Workers,
		MaxQueueDepth:    cfg.MaxQueueDepth,
		MaxWait:          seconds(cfg.MaxWaitSeconds),
		DrainTimeout:     seconds(cfg.DrainTimeoutS),
		Model:            types.ModelInfo{Path: path, ImageSize: meta.ImageSize, Device: meta.Device},
		Logger:           log,
		HasGPU:           hasGPU,
	})

	httpapi.SetLogger(log)
	httpapi.SetAccessLogLevel(cfg.LogLevel)
	mux, err := httpapi.NewMux(mgr, httpapi.Options{
		ViewPath:       cfg.ViewPath,
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MaxImagePixels: cfg.MaxImagePixels,
		AnalyzeTimeout: seconds(cfg.AnalyzeTimeoutS),
		CORSOrigins:    cfg.CORSOrigins,
	})
	if err != nil {
		_ = mgr.Close(context.Background())
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		_ = mgr.Close(context.Background())
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}

	// Handlers observe server shutdown through the base context.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("model", path).Msg("classifyd listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		_ = mgr.Close(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown: drain inference first, then stop accepting connections.
	log.Info().Msg("shutting down")
	drainCtx, cancel := context.WithTimeout(context.Background(), seconds(cfg.DrainTimeoutS)+shutdownTimeout)
	defer cancel()
	if err := mgr.Close(drainCtx); err != nil {
		log.Warn().Err(err).Msg("close predictor")
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	cancelBase()
	return nil
}
