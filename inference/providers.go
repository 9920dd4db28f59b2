// Package inference - Execution provider selection.
package inference

import (
	"strconv"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Provider selects the onnxruntime execution provider a session runs on.
type Provider string

const (
	// ProviderCPU runs on the default CPU provider.
	ProviderCPU Provider = "cpu"
	// ProviderCoreML accelerates on Apple devices.
	// See: https://onnxruntime.ai/docs/execution-providers/CoreML-ExecutionProvider.html
	ProviderCoreML Provider = "coreml"
	// ProviderCUDA accelerates on NVIDIA GPUs.
	// See: https://onnxruntime.ai/docs/execution-providers/CUDA-ExecutionProvider.html
	ProviderCUDA Provider = "cuda"
	// ProviderOpenVINO accelerates on Intel CPU/GPU/NPU hardware.
	// See: https://onnxruntime.ai/docs/execution-providers/OpenVINO-ExecutionProvider.html
	ProviderOpenVINO Provider = "openvino"
)

// Providers lists every selectable execution provider.
var Providers = []Provider{ProviderCPU, ProviderCoreML, ProviderCUDA, ProviderOpenVINO}

// appendProvider attaches the configured execution provider to the
// session options. CPU needs no append; it is the runtime fallback and
// stays registered even when an accelerated provider is enabled.
//
// Arguments:
//   - options: The session options under construction.
//   - cfg: A validated Config with defaults applied.
//
// Returns:
//   - error: An error if the provider cannot be enabled.
func appendProvider(options *ort.SessionOptions, cfg Config) error {
	switch cfg.Provider {
	case "", ProviderCPU:
		return nil
	case ProviderCoreML:
		if err := options.AppendExecutionProviderCoreML(0); err != nil {
			return errors.Wrap(err, "enabling CoreML")
		}
	case ProviderCUDA:
		cuda, err := ort.NewCUDAProviderOptions()
		if err != nil {
			return errors.Wrap(err, "creating CUDA provider options")
		}
		defer cuda.Destroy()
		if cfg.CUDADevice > 0 {
			err = cuda.Update(map[string]string{"device_id": strconv.Itoa(cfg.CUDADevice)})
			if err != nil {
				return errors.Wrapf(err, "selecting CUDA device %d", cfg.CUDADevice)
			}
		}
		if err := options.AppendExecutionProviderCUDA(cuda); err != nil {
			return errors.Wrap(err, "enabling CUDA")
		}
	case ProviderOpenVINO:
		if err := options.AppendExecutionProviderOpenVINO(map[string]string{}); err != nil {
			return errors.Wrap(err, "enabling OpenVINO")
		}
	default:
		return errors.Errorf("unsupported execution provider: %s", cfg.Provider)
	}
	return nil
}
