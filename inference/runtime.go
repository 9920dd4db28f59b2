package inference

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"
)

// Runtime is the delegation seam between the filler and a pretrained
// model. Implementations take the prepared image and mask tensors and
// return the model output as float32, whatever the graph emits natively.
type Runtime interface {
	Infer(ctx context.Context, image, mask *tensor.Dense) (*tensor.Dense, error)
	Close() error
}

// ORTRuntime implements Runtime over an onnxruntime session.
//
// A dynamic session is used instead of a pre-allocated one because
// published inpainting exports disagree on output type: some emit
// float32 in [0,1], some float32 in [0,255], some uint8. Letting the
// runtime allocate the output and converting after the fact handles all
// of them with one session shape.
type ORTRuntime struct {
	session *ort.DynamicAdvancedSession
}

// NewORTRuntime loads the shared library if needed and builds a session
// for the configured model.
//
// Arguments:
//   - cfg: A validated Config with defaults applied.
//
// Returns:
//   - *ORTRuntime: The ready session wrapper.
//   - error: An error if the library or model cannot be loaded.
func NewORTRuntime(cfg Config) (*ORTRuntime, error) {
	// Check if the shared library exists before trying to use it.
	if _, err := os.Stat(cfg.LibraryPath); os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "onnxruntime library not found at %s", cfg.LibraryPath)
	}

	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initializing ORT environment")
		}
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "creating ORT session options")
	}
	defer options.Destroy()

	if cfg.IntraOpThreads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
			return nil, errors.Wrap(err, "setting intra-op threads")
		}
	}
	if cfg.InterOpThreads > 0 {
		if err := options.SetInterOpNumThreads(cfg.InterOpThreads); err != nil {
			return nil, errors.Wrap(err, "setting inter-op threads")
		}
	}
	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended); err != nil {
		return nil, errors.Wrap(err, "setting graph optimization level")
	}
	if err := appendProvider(options, cfg); err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.ImageInput, cfg.MaskInput},
		[]string{cfg.Output},
		options,
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating ORT session")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderCPU
	}
	log.Printf("🧠 Loaded inpainting model %s at %dx%d on %s", cfg.ModelPath, cfg.Resolution, cfg.Resolution, provider)
	return &ORTRuntime{session: session}, nil
}

// Infer runs the model on the prepared tensors.
//
// Arguments:
//   - ctx: Checked before the session call.
//   - image: The [1, 3, S, S] image tensor.
//   - mask: The [1, 1, S, S] mask tensor.
//
// Returns:
//   - *tensor.Dense: The model output converted to float32.
//   - error: An error if the session call fails.
func (r *ORTRuntime) Infer(ctx context.Context, image, mask *tensor.Dense) (*tensor.Dense, error) {
	if r.session == nil {
		return nil, errors.New("session is closed")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	imageT, err := denseToORT(image)
	if err != nil {
		return nil, errors.Wrap(err, "image tensor")
	}
	defer imageT.Destroy()

	maskT, err := denseToORT(mask)
	if err != nil {
		return nil, errors.Wrap(err, "mask tensor")
	}
	defer maskT.Destroy()

	// A nil output slot tells onnxruntime to allocate it. The allocated
	// value must be destroyed here once copied out.
	outputs := []ort.Value{nil}
	if err := r.session.Run([]ort.Value{imageT, maskT}, outputs); err != nil {
		return nil, errors.Wrap(err, "running inference")
	}
	out := outputs[0]
	defer out.Destroy()

	return ortToDense(out)
}

// Close destroys the session.
func (r *ORTRuntime) Close() error {
	if r.session == nil {
		return nil
	}
	if err := r.session.Destroy(); err != nil {
		return errors.Wrap(err, "destroying ORT session")
	}
	r.session = nil
	log.Printf("🔒 Inpainting session closed")
	return nil
}

// denseToORT wraps a float32 Dense backing slice in an onnxruntime
// tensor of the same shape. The data is shared, not copied, so the
// Dense must outlive the returned tensor.
func denseToORT(t *tensor.Dense) (*ort.Tensor[float32], error) {
	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("backing must be []float32, got %T", t.Data())
	}
	shape := t.Shape()
	dims := make([]int64, len(shape))
	for i, d := range shape {
		dims[i] = int64(d)
	}
	return ort.NewTensor(ort.NewShape(dims...), data)
}

// ortToDense copies a session output into a float32 Dense, widening
// byte outputs so the rest of the pipeline sees one element type.
func ortToDense(v ort.Value) (*tensor.Dense, error) {
	switch out := v.(type) {
	case *ort.Tensor[float32]:
		src := out.GetData()
		data := make([]float32, len(src))
		copy(data, src)
		return tensor.New(tensor.WithShape(intShape(out.GetShape())...), tensor.WithBacking(data)), nil
	case *ort.Tensor[uint8]:
		src := out.GetData()
		data := make([]float32, len(src))
		for i, b := range src {
			data[i] = float32(b)
		}
		return tensor.New(tensor.WithShape(intShape(out.GetShape())...), tensor.WithBacking(data)), nil
	default:
		return nil, errors.Errorf("unsupported model output type %T", v)
	}
}

func intShape(s ort.Shape) []int {
	dims := make([]int, len(s))
	for i, d := range s {
		dims[i] = int(d)
	}
	return dims
}
