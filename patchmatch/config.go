package patchmatch

import (
	"math/rand"

	"github.com/pkg/errors"
)

const (
	// DefaultPatchSize is the side of the square comparison window.
	DefaultPatchSize = 9
	// DefaultIterations is the number of refinement passes.
	DefaultIterations = 5
)

// Config controls one fill run.
//
// The zero value is not valid; start from DefaultConfig and override.
type Config struct {
	// PatchSize is the side of the square window compared around each
	// pixel. Must be odd and >= 1. Larger windows produce smoother,
	// more structure-preserving fills at higher cost.
	PatchSize int `json:"patchSize" yaml:"patchSize"`
	// Iterations is the number of propagation+search passes over the
	// hole. Must be >= 0; zero skips refinement and reconstructs straight
	// from the random initialization.
	Iterations int `json:"iterations" yaml:"iterations"`
	// Rand supplies every random draw of the run. Nil means a
	// time-seeded source is created per call. Inject a seeded source for
	// reproducible output; a shared source must not be used by two
	// concurrent calls.
	Rand *rand.Rand `json:"-" yaml:"-"`
}

// DefaultConfig returns the standard configuration: 9×9 patches, 5
// refinement passes, time-seeded randomness.
func DefaultConfig() Config {
	return Config{
		PatchSize:  DefaultPatchSize,
		Iterations: DefaultIterations,
	}
}

// Validate checks the configuration invariants.
//
// Returns:
// - An error naming the offending field and value, or nil.
func (c Config) Validate() error {
	if c.PatchSize < 1 || c.PatchSize%2 == 0 {
		return errors.Errorf("patch size must be an odd integer >= 1, got %d", c.PatchSize)
	}
	if c.Iterations < 0 {
		return errors.Errorf("iterations must be >= 0, got %d", c.Iterations)
	}
	return nil
}

// halfPatch returns the window radius, (PatchSize-1)/2.
func (c Config) halfPatch() int {
	return (c.PatchSize - 1) / 2
}
