package classifier

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"classifyd/internal/common/hostinfo"
)

// LoadOptions configures Load.
type LoadOptions struct {
	// RuntimeLib is the ONNX Runtime shared library. Empty uses the platform default name.
	RuntimeLib string
	// Labels is used when the metadata sidecar does not list classes.
	Labels []string
	// Threads caps intra-op parallelism per inference; 0 lets the runtime decide.
	Threads int
	// HasGPU probes the host; defaults to hostinfo.HasGPU.
	HasGPU func() bool
	Logger zerolog.Logger
}

// Load deserializes the artifact at path into a predictor. It is meant to run
// exactly once at startup. Incompatible artifacts yield an *IncompatibleError;
// every other failure is returned with its cause intact.
func Load(path string, opts LoadOptions) (*ONNXPredictor, error) {
	if err := sniff(path); err != nil {
		return nil, err
	}
	meta, err := LoadMetadata(MetadataPath(path))
	if err != nil {
		return nil, err
	}
	labels := meta.Classes
	if len(labels) == 0 {
		labels = opts.Labels
	}
	if len(labels) == 0 {
		labels = DefaultLabels
	}
	hasGPU := opts.HasGPU
	if hasGPU == nil {
		hasGPU = hostinfo.HasGPU
	}
	if meta.Device == DeviceCUDA && !hasGPU() {
		return nil, errRequiresGPU(path, nil)
	}
	opts.Logger.Info().
		Str("path", path).
		Str("device", meta.Device).
		Int("labels", len(labels)).
		Int("image_size", meta.ImageSize).
		Msg("loading model")
	return newONNXPredictor(path, meta, labels, opts)
}

var (
	zipMagic = []byte("PK\x03\x04")
)

// sniff rejects artifact formats this runtime cannot read. Read errors are
// returned unchanged.
func sniff(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	head := make([]byte, 4)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("read %s: %w", path, err)
	}
	head = head[:n]
	if n == 0 {
		return fmt.Errorf("read %s: empty artifact", path)
	}
	// Pickle protocol 2+ starts with PROTO (0x80) followed by the version.
	isPickle := n >= 2 && head[0] == 0x80 && head[1] >= 2 && head[1] <= 5
	if isPickle || bytes.HasPrefix(head, zipMagic) {
		return &IncompatibleError{
			Path:   path,
			Reason: "artifact is not an ONNX model",
			Remedy: pickleRemedy,
		}
	}
	return nil
}
