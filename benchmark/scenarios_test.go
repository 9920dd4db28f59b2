package benchmark

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-inpaint/fill"
)

func TestScenarioBuilder(t *testing.T) {
	scenario := NewScenarioBuilder("test_scenario").
		WithMethod(fill.MethodTelea).
		WithMaskPattern(PatternScatteredBlobs, 0.2).
		WithPatchMatch(7, 3).
		WithRuns(4).
		WithWarmupRuns(1).
		WithSeed(42).
		Build()

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, fill.MethodTelea, scenario.Method)
	assert.Equal(t, PatternScatteredBlobs, scenario.Pattern)
	assert.Equal(t, 0.2, scenario.Coverage)
	assert.Equal(t, 7, scenario.PatchSize)
	assert.Equal(t, 3, scenario.FillIterations)
	assert.Equal(t, 4, scenario.Runs)
	assert.Equal(t, 1, scenario.WarmupRuns)
	assert.Equal(t, int64(42), scenario.Seed)
}

func TestScenarioBuilderDefaults(t *testing.T) {
	scenario := NewScenarioBuilder("defaults").Build()

	assert.Equal(t, fill.MethodPatchMatch, scenario.Method)
	assert.Equal(t, PatternCenteredBox, scenario.Pattern)
	assert.Equal(t, 0.05, scenario.Coverage)
	assert.Equal(t, 10, scenario.Runs)
	assert.Equal(t, 2, scenario.WarmupRuns)
	assert.NotZero(t, scenario.PatchSize)
	assert.NotZero(t, scenario.FillIterations)
}

func TestPredefinedScenarios(t *testing.T) {
	predefined := &PredefinedScenarios{}

	quick := predefined.GetQuickScenarios()
	assert.Equal(t, "Quick Performance Test", quick.Name)
	assert.Len(t, quick.Scenarios, len(MaskPatterns))

	sweep := predefined.GetCoverageSweepScenarios(fill.MethodPatchMatch)
	assert.Len(t, sweep.Scenarios, 4)
	for _, scenario := range sweep.Scenarios {
		assert.Equal(t, fill.MethodPatchMatch, scenario.Method)
	}

	sizes := predefined.GetPatchSizeScenarios()
	assert.Len(t, sizes.Scenarios, 4)
	seen := make(map[int]bool)
	for _, scenario := range sizes.Scenarios {
		seen[scenario.PatchSize] = true
	}
	assert.Len(t, seen, 4, "every scenario should probe a distinct window size")

	methods := predefined.GetMethodComparisonScenarios([]fill.Method{fill.MethodPatchMatch, fill.MethodTelea}, 0.05)
	assert.Len(t, methods.Scenarios, 2)
}

func TestScenarioSetRoundTrip(t *testing.T) {
	predefined := &PredefinedScenarios{}
	original := predefined.GetQuickScenarios()

	path := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, SaveScenarioSet(original, path))

	loaded, err := LoadScenarioSet(path)
	require.NoError(t, err)

	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Scenarios, loaded.Scenarios)
}

func TestLoadScenarioSetMissingFile(t *testing.T) {
	_, err := LoadScenarioSet(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
