package classifier

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompatibleArtifact marks artifacts that cannot run on this host or runtime.
var ErrIncompatibleArtifact = errors.New("incompatible model artifact")

// IncompatibleError explains why an artifact cannot be loaded and how to fix it.
// errors.Is(err, ErrIncompatibleArtifact) holds for every IncompatibleError.
type IncompatibleError struct {
	Path   string
	Reason string
	Remedy string
	Err    error
}

func (e *IncompatibleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Path, e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	if e.Remedy != "" {
		b.WriteString("\n\n")
		b.WriteString(e.Remedy)
	}
	return b.String()
}

func (e *IncompatibleError) Is(target error) bool { return target == ErrIncompatibleArtifact }

func (e *IncompatibleError) Unwrap() error { return e.Err }

const (
	gpuRemedy = "This model was exported for a CUDA execution provider and will not work in a CPU-only environment.\n\n" +
		"Export the model again for CPU (or set \"device\": \"cpu\" in its metadata file), " +
		"or run the service on a host with an NVIDIA GPU and the CUDA runtime installed."
	pickleRemedy = "The artifact looks like a Python pickle or PyTorch checkpoint, which this runtime cannot read.\n\n" +
		"Export the trained model to ONNX (torch.onnx.export) and point model_url or model_path at the .onnx file."
)

func errRequiresGPU(path string, cause error) error {
	return &IncompatibleError{
		Path:   path,
		Reason: "artifact requires a GPU-capable runtime, found CPU-only",
		Remedy: gpuRemedy,
		Err:    cause,
	}
}

// isGPUFailure reports whether a runtime error stems from a missing GPU provider.
func isGPUFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"cuda", "cudnn", "gpu"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
