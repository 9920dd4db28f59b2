// Package inference - Neural inpainting over pretrained ONNX models.
//
// The package owns everything between an RGBA buffer pair and a model
// runtime: tensor preparation, session lifecycle, output decoding, and
// blending the synthesized region back into the source image. The fill
// contract is identical to the classical paths: masked pixels are
// replaced, unmasked pixels are byte-preserved, the mask is consumed.
package inference

import (
	"runtime"

	"github.com/pkg/errors"
)

// Normalization selects how image bytes map onto model input floats.
type Normalization string

const (
	// NormalizationZeroToOne maps bytes to [0, 1].
	NormalizationZeroToOne Normalization = "zero-to-one"
	// NormalizationMinusOneToOne maps bytes to [-1, 1].
	NormalizationMinusOneToOne Normalization = "minus-one-to-one"
)

// MaskPolarity selects which float value marks a hole in the mask tensor.
type MaskPolarity string

const (
	// MaskHoleIsOne writes 1.0 for masked pixels, 0.0 elsewhere.
	MaskHoleIsOne MaskPolarity = "hole-is-one"
	// MaskHoleIsZero writes 0.0 for masked pixels, 1.0 elsewhere.
	MaskHoleIsZero MaskPolarity = "hole-is-zero"
)

const (
	// DefaultResolution is the square side length models are fed at.
	DefaultResolution = 512

	defaultImageInput = "image"
	defaultMaskInput  = "mask"
	defaultOutput     = "output"
)

// Config describes one pretrained inpainting model and how to talk to it.
//
// The zero value is not runnable: ModelPath is required. Optional fields
// fall back to defaults when empty, so a Config built by hand only needs
// to set what differs from DefaultConfig().
type Config struct {
	// ModelPath is the ONNX model file. Required.
	ModelPath string `json:"modelPath"      yaml:"modelPath"`
	// LibraryPath overrides the onnxruntime shared library location.
	// Empty selects the per-platform default path.
	LibraryPath string `json:"libraryPath"    yaml:"libraryPath"`
	// Resolution is the square side length the model operates at.
	Resolution int `json:"resolution"     yaml:"resolution"`

	// ImageInput, MaskInput, and Output name the model graph tensors.
	ImageInput string `json:"imageInput"     yaml:"imageInput"`
	MaskInput  string `json:"maskInput"      yaml:"maskInput"`
	Output     string `json:"output"         yaml:"output"`

	Normalization Normalization `json:"normalization"  yaml:"normalization"`
	MaskPolarity  MaskPolarity  `json:"maskPolarity"   yaml:"maskPolarity"`

	// Provider selects the execution provider. Empty runs on CPU.
	Provider Provider `json:"provider"       yaml:"provider"`
	// CUDADevice selects the GPU when Provider is cuda. Zero is the
	// first device.
	CUDADevice int `json:"cudaDevice"     yaml:"cudaDevice"`

	// IntraOpThreads and InterOpThreads bound onnxruntime parallelism.
	// Zero keeps the runtime defaults.
	IntraOpThreads int `json:"intraOpThreads" yaml:"intraOpThreads"`
	InterOpThreads int `json:"interOpThreads" yaml:"interOpThreads"`
}

// DefaultConfig returns a Config with every optional field populated.
// ModelPath is left empty and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		Resolution:    DefaultResolution,
		ImageInput:    defaultImageInput,
		MaskInput:     defaultMaskInput,
		Output:        defaultOutput,
		Normalization: NormalizationZeroToOne,
		MaskPolarity:  MaskHoleIsOne,
		Provider:      ProviderCPU,
	}
}

// GetLaMaConfig returns the tensor layout the published LaMa ONNX export
// uses: 512x512, [0,1] image range, holes marked with ones.
//
// Arguments:
//   - modelPath: Path to the exported LaMa ONNX file.
//
// Returns:
//   - Config: A runnable configuration for the model.
func GetLaMaConfig(modelPath string) Config {
	cfg := DefaultConfig()
	cfg.ModelPath = modelPath
	return cfg
}

// GetAOTGANConfig returns the tensor layout for AOT-GAN exports, which
// expect inputs scaled to [-1, 1].
//
// Arguments:
//   - modelPath: Path to the exported AOT-GAN ONNX file.
//
// Returns:
//   - Config: A runnable configuration for the model.
func GetAOTGANConfig(modelPath string) Config {
	cfg := DefaultConfig()
	cfg.ModelPath = modelPath
	cfg.ImageInput = "img"
	cfg.Normalization = NormalizationMinusOneToOne
	return cfg
}

// withDefaults fills empty optional fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Resolution == 0 {
		c.Resolution = def.Resolution
	}
	if c.ImageInput == "" {
		c.ImageInput = def.ImageInput
	}
	if c.MaskInput == "" {
		c.MaskInput = def.MaskInput
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Normalization == "" {
		c.Normalization = def.Normalization
	}
	if c.MaskPolarity == "" {
		c.MaskPolarity = def.MaskPolarity
	}
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.LibraryPath == "" {
		c.LibraryPath = getSharedLibPath()
	}
	return c
}

// Validate reports the first problem that would prevent a session from
// being built. Empty optional fields are legal; they default later.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return errors.New("model path is required")
	}
	return c.validateOptions()
}

// validateOptions checks everything except ModelPath, which only
// matters when a session is actually opened.
func (c Config) validateOptions() error {
	if c.Resolution < 0 {
		return errors.Errorf("resolution must not be negative, got %d", c.Resolution)
	}
	switch c.Normalization {
	case "", NormalizationZeroToOne, NormalizationMinusOneToOne:
	default:
		return errors.Errorf("unknown normalization: %s", c.Normalization)
	}
	switch c.MaskPolarity {
	case "", MaskHoleIsOne, MaskHoleIsZero:
	default:
		return errors.Errorf("unknown mask polarity: %s", c.MaskPolarity)
	}
	switch c.Provider {
	case "", ProviderCPU, ProviderCoreML, ProviderCUDA, ProviderOpenVINO:
	default:
		return errors.Errorf("unsupported execution provider: %s", c.Provider)
	}
	if c.CUDADevice < 0 {
		return errors.Errorf("cuda device must not be negative, got %d", c.CUDADevice)
	}
	if c.IntraOpThreads < 0 || c.InterOpThreads < 0 {
		return errors.New("thread counts must not be negative")
	}
	return nil
}

// getSharedLibPath returns the onnxruntime shared library path for the
// current platform.
//
// Returns:
//   - The file path to the ONNX Runtime shared library.
func getSharedLibPath() string {
	if runtime.GOOS == "windows" {
		if runtime.GOARCH == "amd64" {
			return "../third_party/onnxruntime.dll"
		}
	}
	if runtime.GOOS == "darwin" {
		if runtime.GOARCH == "arm64" {
			return "../third_party/onnxruntime_arm64.dylib"
		}
		if runtime.GOARCH == "amd64" {
			return "../third_party/onnxruntime_amd64.dylib"
		}
	}
	if runtime.GOOS == "linux" {
		if runtime.GOARCH == "arm64" {
			return "../third_party/onnxruntime_arm64.so"
		}
		return "../third_party/onnxruntime.so"
	}
	panic("Unable to find a version of the onnxruntime library supporting this system.")
}
