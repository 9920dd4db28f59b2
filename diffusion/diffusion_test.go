package diffusion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-inpaint/images"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "default config", config: DefaultConfig(), wantErr: false},
		{name: "navier-stokes", config: Config{Method: MethodNavierStokes, Radius: 5}, wantErr: false},
		{name: "unknown method", config: Config{Method: "patch", Radius: 3}, wantErr: true},
		{name: "zero radius", config: Config{Method: MethodTelea}, wantErr: true},
		{name: "negative radius", config: Config{Method: MethodTelea, Radius: -1}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewFillerDefaultsZeroConfig(t *testing.T) {
	f, err := NewFiller(Config{})
	require.NoError(t, err)
	assert.Equal(t, MethodTelea, f.cfg.Method)
	assert.Equal(t, float32(DefaultRadius), f.cfg.Radius)
}

func TestFillRejectsContractViolations(t *testing.T) {
	f, err := NewFiller(DefaultConfig())
	require.NoError(t, err)

	err = f.Fill(context.Background(), nil, images.New(4, 4))
	require.Error(t, err)

	err = f.Fill(context.Background(), images.New(4, 4), images.New(3, 4))
	require.Error(t, err, "mismatched mask dimensions")
}

func TestFillEmptyMaskIsNoOp(t *testing.T) {
	f, err := NewFiller(DefaultConfig())
	require.NoError(t, err)

	img := images.New(4, 4)
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	before := img.Clone()

	require.NoError(t, f.Fill(context.Background(), img, images.New(4, 4)))
	assert.Equal(t, before.Pix, img.Pix, "no holes means no writes")
}

func TestFillRespectsContext(t *testing.T) {
	f, err := NewFiller(DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := images.New(4, 4)
	mask := images.New(4, 4)
	mask.Pix[3] = 255

	require.ErrorIs(t, f.Fill(ctx, img, mask), context.Canceled)
}
