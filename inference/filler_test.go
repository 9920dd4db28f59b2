package inference

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-inpaint/images"
)

// fakeRuntime records the tensors it was handed and returns a canned
// output, standing in for an onnxruntime session.
type fakeRuntime struct {
	lastImage *tensor.Dense
	lastMask  *tensor.Dense
	out       *tensor.Dense
	err       error
	calls     int
	closed    bool
}

func (f *fakeRuntime) Infer(_ context.Context, image, mask *tensor.Dense) (*tensor.Dense, error) {
	f.calls++
	f.lastImage = image
	f.lastMask = mask
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeRuntime) Close() error {
	f.closed = true
	return nil
}

func newTestFiller(t *testing.T, rt Runtime, resolution int) *Filler {
	t.Helper()
	f, err := NewFillerWithRuntime(testConfig(resolution), rt)
	require.NoError(t, err)
	return f
}

func TestFillerFillsMaskedRegion(t *testing.T) {
	img := makeSolid(t, 8, 8, 64, 64, 64)
	mask := images.New(8, 8)
	for y := 3; y < 5; y++ {
		for x := 3; x < 5; x++ {
			mask.Pix[mask.PixOffset(x, y)+3] = 255
		}
	}

	rt := &fakeRuntime{out: chwTensor(t, 8, 8, 0.5, 0.5, 0.5)}
	f := newTestFiller(t, rt, 8)

	require.NoError(t, f.Fill(context.Background(), img, mask))
	require.Equal(t, 1, rt.calls)

	assert.Equal(t, []int{1, 3, 8, 8}, []int(rt.lastImage.Shape()))
	assert.Equal(t, []int{1, 1, 8, 8}, []int(rt.lastMask.Shape()))

	pi := img.PixOffset(3, 3)
	assert.Equal(t, uint8(128), img.Pix[pi], "hole takes the model gray")
	assert.Equal(t, uint8(255), img.Pix[pi+3])
	assert.Equal(t, uint8(64), img.Pix[0], "unmasked pixel preserved")
	assert.Equal(t, 0, images.CountMasked(mask))
}

func TestFillerSkipsInferenceOnEmptyMask(t *testing.T) {
	img := makeSolid(t, 4, 4, 9, 9, 9)
	mask := images.New(4, 4)
	before := img.Clone()

	rt := &fakeRuntime{}
	f := newTestFiller(t, rt, 4)

	require.NoError(t, f.Fill(context.Background(), img, mask))
	assert.Equal(t, 0, rt.calls, "no model call without holes")
	assert.Equal(t, before.Pix, img.Pix)
}

func TestFillerPropagatesRuntimeError(t *testing.T) {
	img := makeSolid(t, 4, 4, 9, 9, 9)
	mask := images.New(4, 4)
	mask.Pix[3] = 255

	rt := &fakeRuntime{err: errors.New("session exploded")}
	f := newTestFiller(t, rt, 4)

	err := f.Fill(context.Background(), img, mask)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session exploded")
}

func TestFillerRejectsContractViolations(t *testing.T) {
	rt := &fakeRuntime{}
	f := newTestFiller(t, rt, 4)

	err := f.Fill(context.Background(), nil, images.New(4, 4))
	require.Error(t, err)

	err = f.Fill(context.Background(), images.New(4, 4), images.New(3, 4))
	require.Error(t, err, "mismatched mask dimensions")
	assert.Equal(t, 0, rt.calls)
}

func TestFillerRespectsContext(t *testing.T) {
	img := makeSolid(t, 4, 4, 9, 9, 9)
	mask := images.New(4, 4)
	mask.Pix[3] = 255

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rt := &fakeRuntime{}
	f := newTestFiller(t, rt, 4)

	err := f.Fill(ctx, img, mask)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rt.calls)
}

func TestFillerCloseIsIdempotent(t *testing.T) {
	rt := &fakeRuntime{}
	f := newTestFiller(t, rt, 4)

	require.NoError(t, f.Close())
	assert.True(t, rt.closed)
	require.NoError(t, f.Close(), "second close is a no-op")

	err := f.Fill(context.Background(), images.New(2, 2), images.New(2, 2))
	require.Error(t, err, "fill after close")
}

func TestNewFillerWithRuntimeValidation(t *testing.T) {
	_, err := NewFillerWithRuntime(DefaultConfig(), nil)
	require.Error(t, err, "runtime is required")

	bad := DefaultConfig()
	bad.Normalization = "sigmoid"
	_, err = NewFillerWithRuntime(bad, &fakeRuntime{})
	require.Error(t, err)

	f, err := NewFillerWithRuntime(Config{}, &fakeRuntime{})
	require.NoError(t, err, "model path is not needed with an injected runtime")
	assert.Equal(t, DefaultResolution, f.cfg.Resolution, "defaults applied")
}

func TestNewFillerRequiresModelPath(t *testing.T) {
	_, err := NewFiller(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model path")
}
