package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-inpaint/diffusion"
	"github.com/nvr-ai/go-inpaint/patchmatch"
)

func TestNewFillerFactory(t *testing.T) {
	tests := []struct {
		name    string
		args    NewFillerArgs
		wantErr string
	}{
		{
			name: "patchmatch with defaults",
			args: NewFillerArgs{Method: MethodPatchMatch},
		},
		{
			name: "patchmatch with explicit config",
			args: NewFillerArgs{
				Method:     MethodPatchMatch,
				PatchMatch: patchmatch.Config{PatchSize: 7, Iterations: 3},
			},
		},
		{
			name: "telea with defaults",
			args: NewFillerArgs{Method: MethodTelea},
		},
		{
			name: "navier-stokes with caller radius",
			args: NewFillerArgs{
				Method:    MethodNavierStokes,
				Diffusion: diffusion.Config{Radius: 5},
			},
		},
		{
			name: "patchmatch rejects even patch size",
			args: NewFillerArgs{
				Method:     MethodPatchMatch,
				PatchMatch: patchmatch.Config{PatchSize: 8, Iterations: 1},
			},
			wantErr: "patch size",
		},
		{
			name: "diffusion rejects negative radius",
			args: NewFillerArgs{
				Method:    MethodTelea,
				Diffusion: diffusion.Config{Radius: -2},
			},
			wantErr: "radius",
		},
		{
			name:    "neural requires a model path",
			args:    NewFillerArgs{Method: MethodNeural},
			wantErr: "model path",
		},
		{
			name:    "auto requires a model path for its neural engine",
			args:    NewFillerArgs{Method: MethodAuto},
			wantErr: "model path",
		},
		{
			name:    "unknown method",
			args:    NewFillerArgs{Method: "magic"},
			wantErr: "unsupported fill method",
		},
		{
			name:    "empty method",
			args:    NewFillerArgs{},
			wantErr: "unsupported fill method",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFiller(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
			require.NoError(t, f.Close())
		})
	}
}

func TestMethodsListsEverySwitchArm(t *testing.T) {
	assert.ElementsMatch(t, Methods, []Method{
		MethodPatchMatch,
		MethodTelea,
		MethodNavierStokes,
		MethodNeural,
		MethodAuto,
	})
}
