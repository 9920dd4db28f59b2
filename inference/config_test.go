package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "minimal valid config",
			config:  Config{ModelPath: "model.onnx"},
			wantErr: false,
		},
		{
			name:    "full valid config",
			config:  GetLaMaConfig("lama.onnx"),
			wantErr: false,
		},
		{
			name:    "missing model path",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "negative resolution",
			config:  Config{ModelPath: "model.onnx", Resolution: -1},
			wantErr: true,
		},
		{
			name:    "unknown normalization",
			config:  Config{ModelPath: "model.onnx", Normalization: "sigmoid"},
			wantErr: true,
		},
		{
			name:    "unknown mask polarity",
			config:  Config{ModelPath: "model.onnx", MaskPolarity: "inverted"},
			wantErr: true,
		},
		{
			name:    "negative thread count",
			config:  Config{ModelPath: "model.onnx", IntraOpThreads: -2},
			wantErr: true,
		},
		{
			name:    "every known provider",
			config:  Config{ModelPath: "model.onnx", Provider: ProviderOpenVINO},
			wantErr: false,
		},
		{
			name:    "unsupported provider",
			config:  Config{ModelPath: "model.onnx", Provider: "tpu"},
			wantErr: true,
		},
		{
			name:    "negative cuda device",
			config:  Config{ModelPath: "model.onnx", Provider: ProviderCUDA, CUDADevice: -1},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				require.Error(t, err, "config should be rejected")
			} else {
				require.NoError(t, err, "config should be accepted")
			}
		})
	}
}

func TestWithDefaultsFillsEveryOptionalField(t *testing.T) {
	cfg := Config{ModelPath: "model.onnx"}.withDefaults()

	assert.Equal(t, DefaultResolution, cfg.Resolution)
	assert.Equal(t, "image", cfg.ImageInput)
	assert.Equal(t, "mask", cfg.MaskInput)
	assert.Equal(t, "output", cfg.Output)
	assert.Equal(t, NormalizationZeroToOne, cfg.Normalization)
	assert.Equal(t, MaskHoleIsOne, cfg.MaskPolarity)
	assert.Equal(t, ProviderCPU, cfg.Provider)
	assert.NotEmpty(t, cfg.LibraryPath, "library path should default per platform")
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		ModelPath:     "model.onnx",
		Resolution:    256,
		ImageInput:    "img",
		Normalization: NormalizationMinusOneToOne,
		LibraryPath:   "/opt/ort/libonnxruntime.so",
	}.withDefaults()

	assert.Equal(t, 256, cfg.Resolution)
	assert.Equal(t, "img", cfg.ImageInput)
	assert.Equal(t, NormalizationMinusOneToOne, cfg.Normalization)
	assert.Equal(t, "/opt/ort/libonnxruntime.so", cfg.LibraryPath)
}

func TestModelPresets(t *testing.T) {
	lama := GetLaMaConfig("lama.onnx")
	require.NoError(t, lama.Validate())
	assert.Equal(t, "lama.onnx", lama.ModelPath)
	assert.Equal(t, NormalizationZeroToOne, lama.Normalization)
	assert.Equal(t, MaskHoleIsOne, lama.MaskPolarity)

	aot := GetAOTGANConfig("aotgan.onnx")
	require.NoError(t, aot.Validate())
	assert.Equal(t, "aotgan.onnx", aot.ModelPath)
	assert.Equal(t, "img", aot.ImageInput, "AOT-GAN exports name the image input differently")
	assert.Equal(t, NormalizationMinusOneToOne, aot.Normalization)
}
