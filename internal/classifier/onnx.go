package classifier

import (
	"context"
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXPredictor runs an ONNX image classifier through ONNX Runtime. Each call
// allocates its own tensors, so one predictor serves concurrent requests.
type ONNXPredictor struct {
	session *ort.DynamicAdvancedSession
	meta    Metadata
	labels  []string

	closeOnce sync.Once
}

// envMu guards process-wide runtime initialization.
var envMu sync.Mutex

func initRuntime(lib string) error {
	envMu.Lock()
	defer envMu.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	if lib != "" {
		ort.SetSharedLibraryPath(lib)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnx runtime: %w", err)
	}
	return nil
}

func newONNXPredictor(path string, meta Metadata, labels []string, opts LoadOptions) (*ONNXPredictor, error) {
	if err := initRuntime(opts.RuntimeLib); err != nil {
		return nil, err
	}

	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	if meta.InputName == "" && len(inputs) > 0 {
		meta.InputName = inputs[0].Name
	}
	if meta.OutputName == "" && len(outputs) > 0 {
		meta.OutputName = outputs[0].Name
	}
	for _, o := range outputs {
		if o.Name != meta.OutputName || len(o.Dimensions) == 0 {
			continue
		}
		if w := o.Dimensions[len(o.Dimensions)-1]; w > 0 && int(w) != len(labels) {
			return nil, fmt.Errorf("model %s outputs %d classes, have %d labels", path, w, len(labels))
		}
	}

	so, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer so.Destroy()
	if opts.Threads > 0 {
		if err := so.SetIntraOpNumThreads(opts.Threads); err != nil {
			return nil, fmt.Errorf("session options: %w", err)
		}
	}
	if meta.Device == DeviceCUDA {
		cuda, err := ort.NewCUDAProviderOptions()
		if err != nil {
			return nil, errRequiresGPU(path, err)
		}
		defer cuda.Destroy()
		if err := so.AppendExecutionProviderCUDA(cuda); err != nil {
			return nil, errRequiresGPU(path, err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{meta.InputName}, []string{meta.OutputName}, so)
	if err != nil {
		if isGPUFailure(err) {
			return nil, errRequiresGPU(path, err)
		}
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &ONNXPredictor{session: session, meta: meta, labels: labels}, nil
}

// Labels returns the label set in output order.
func (p *ONNXPredictor) Labels() []string { return p.labels }

// Metadata returns the effective artifact metadata.
func (p *ONNXPredictor) Metadata() Metadata { return p.meta }

// Predict classifies img.
func (p *ONNXPredictor) Predict(ctx context.Context, img image.Image) (Prediction, error) {
	size := int64(p.meta.ImageSize)
	data := Preprocess(img, p.meta.ImageSize, p.meta.Mean, p.meta.Std)

	in, err := ort.NewTensor(ort.NewShape(1, 3, size, size), data)
	if err != nil {
		return Prediction{}, fmt.Errorf("input tensor: %w", err)
	}
	defer in.Destroy()
	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(p.labels))))
	if err != nil {
		return Prediction{}, fmt.Errorf("output tensor: %w", err)
	}
	defer out.Destroy()

	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if err := p.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return Prediction{}, fmt.Errorf("inference failed: %w", err)
	}
	scores := append([]float32(nil), out.GetData()...)
	if p.meta.ApplySoftmax {
		softmax(scores)
	}
	return NewPrediction(p.labels, scores)
}

// Close releases the session and the runtime environment.
func (p *ONNXPredictor) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.session.Destroy()
		envMu.Lock()
		if ort.IsInitialized() {
			if e := ort.DestroyEnvironment(); err == nil {
				err = e
			}
		}
		envMu.Unlock()
	})
	return err
}
