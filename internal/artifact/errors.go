package artifact

import (
	"errors"
	"fmt"
)

// ErrChecksumMismatch is returned when a downloaded artifact does not match the configured SHA-256.
var ErrChecksumMismatch = errors.New("artifact checksum mismatch")

// FetchError reports a failed artifact download. Startup treats it as fatal.
type FetchError struct {
	URL  string
	Dest string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s -> %s: %v", e.URL, e.Dest, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchFailure reports whether err came from an artifact download.
func IsFetchFailure(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// statusError is a non-2xx response from the artifact host.
type statusError struct {
	code   int
	status string
}

func (e statusError) Error() string { return "unexpected response status: " + e.status }

// retryable reports whether another attempt could succeed.
func (e statusError) retryable() bool {
	return e.code >= 500 || e.code == 408 || e.code == 429
}
