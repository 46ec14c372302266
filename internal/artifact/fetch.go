// Package artifact makes sure the serialized model exists on local disk,
// downloading it once on a fresh deployment.
package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"classifyd/internal/common/fsutil"
)

// Options configures a Fetcher.
type Options struct {
	// Timeout bounds a single download attempt. Zero means no timeout.
	Timeout time.Duration
	// Retries is the number of additional attempts after the first failure.
	Retries int
	// SHA256 is the expected hex digest of a fresh download. Empty disables verification.
	SHA256 string
	Logger zerolog.Logger
}

// Fetcher downloads artifacts over HTTP(S).
type Fetcher struct {
	client  *http.Client
	retries int
	sha256  string
	log     zerolog.Logger
	// newBackOff builds the retry schedule; replaced in tests.
	newBackOff func() backoff.BackOff
}

// New constructs a Fetcher.
func New(opts Options) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		retries: opts.Retries,
		sha256:  strings.ToLower(strings.TrimSpace(opts.SHA256)),
		log:     opts.Logger,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// Ensure downloads url to dest unless dest already exists. An existing file is
// trusted as-is: no network call is made and its content is not re-validated.
// It reports whether a download happened.
func (f *Fetcher) Ensure(ctx context.Context, url, dest string) (bool, error) {
	if fsutil.PathExists(dest) {
		f.log.Debug().Str("path", dest).Msg("artifact present")
		return false, nil
	}
	if url == "" {
		return false, &FetchError{Dest: dest, Err: fmt.Errorf("artifact missing and no download url configured")}
	}

	start := time.Now()
	f.log.Info().Str("url", url).Str("path", dest).Msg("fetch start")
	var n int64
	attempt := 0
	op := func() error {
		attempt++
		var err error
		n, err = f.download(ctx, url, dest)
		if err == nil {
			return nil
		}
		f.log.Warn().Err(err).Int("attempt", attempt).Msg("fetch attempt failed")
		if se, ok := err.(statusError); ok && !se.retryable() {
			return backoff.Permanent(err)
		}
		if err == ErrChecksumMismatch || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(f.newBackOff(), uint64(f.retries)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return false, &FetchError{URL: url, Dest: dest, Err: err}
	}
	f.log.Info().Str("path", dest).Int64("bytes", n).Dur("dur", time.Since(start)).Msg("fetch done")
	return true, nil
}

// download performs one GET and publishes the body at dest.
func (f *Fetcher) download(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, statusError{code: resp.StatusCode, status: resp.Status}
	}

	tmp, err := fsutil.CreateSibling(dest)
	if err != nil {
		return 0, err
	}
	var h hash.Hash
	w := io.Writer(tmp)
	if f.sha256 != "" {
		h = sha256.New()
		w = io.MultiWriter(tmp, h)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		fsutil.Discard(tmp)
		return n, fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if h != nil && hex.EncodeToString(h.Sum(nil)) != f.sha256 {
		fsutil.Discard(tmp)
		return n, ErrChecksumMismatch
	}
	return n, fsutil.Publish(tmp, dest)
}
