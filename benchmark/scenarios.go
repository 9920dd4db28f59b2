package benchmark

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nvr-ai/go-inpaint/fill"
	"github.com/nvr-ai/go-inpaint/patchmatch"
)

// Scenario describes one benchmark configuration: which engine fills
// which synthetic hole shape, and how many timed runs to take.
type Scenario struct {
	Name           string      `json:"name"`
	Method         fill.Method `json:"method"`
	Pattern        MaskPattern `json:"pattern"`
	Coverage       float64     `json:"coverage"`
	PatchSize      int         `json:"patch_size"`
	FillIterations int         `json:"fill_iterations"`
	Runs           int         `json:"runs"`
	WarmupRuns     int         `json:"warmup_runs"`
	Seed           int64       `json:"seed"`
}

// ScenarioBuilder helps build scenarios with a fluent API
type ScenarioBuilder struct {
	scenario Scenario
}

// NewScenarioBuilder creates a builder seeded with usable defaults.
func NewScenarioBuilder(name string) *ScenarioBuilder {
	return &ScenarioBuilder{
		scenario: Scenario{
			Name:           name,
			Method:         fill.MethodPatchMatch,
			Pattern:        PatternCenteredBox,
			Coverage:       0.05,
			PatchSize:      patchmatch.DefaultPatchSize,
			FillIterations: patchmatch.DefaultIterations,
			Runs:           10,
			WarmupRuns:     2,
			Seed:           1,
		},
	}
}

// WithMethod sets the fill engine
func (sb *ScenarioBuilder) WithMethod(method fill.Method) *ScenarioBuilder {
	sb.scenario.Method = method
	return sb
}

// WithMaskPattern sets the hole shape and its coverage fraction
func (sb *ScenarioBuilder) WithMaskPattern(pattern MaskPattern, coverage float64) *ScenarioBuilder {
	sb.scenario.Pattern = pattern
	sb.scenario.Coverage = coverage
	return sb
}

// WithPatchMatch sets the window size and pass count for the core engine
func (sb *ScenarioBuilder) WithPatchMatch(patchSize, iterations int) *ScenarioBuilder {
	sb.scenario.PatchSize = patchSize
	sb.scenario.FillIterations = iterations
	return sb
}

// WithRuns sets the number of timed runs
func (sb *ScenarioBuilder) WithRuns(runs int) *ScenarioBuilder {
	sb.scenario.Runs = runs
	return sb
}

// WithWarmupRuns sets the number of warmup runs
func (sb *ScenarioBuilder) WithWarmupRuns(warmups int) *ScenarioBuilder {
	sb.scenario.WarmupRuns = warmups
	return sb
}

// WithSeed sets the seed for mask generation and engine randomness
func (sb *ScenarioBuilder) WithSeed(seed int64) *ScenarioBuilder {
	sb.scenario.Seed = seed
	return sb
}

// Build returns the configured scenario
func (sb *ScenarioBuilder) Build() Scenario {
	return sb.scenario
}

// ScenarioSet represents a collection of related scenarios
type ScenarioSet struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Scenarios   []Scenario `json:"scenarios"`
}

// PredefinedScenarios contains common benchmark scenario sets
type PredefinedScenarios struct{}

// GetQuickScenarios returns a smaller set for quick testing
func (ps *PredefinedScenarios) GetQuickScenarios() *ScenarioSet {
	scenarios := make([]Scenario, 0)

	for _, pattern := range MaskPatterns {
		scenario := NewScenarioBuilder(fmt.Sprintf("quick_%s_%s", fill.MethodPatchMatch, pattern)).
			WithMaskPattern(pattern, 0.05).
			WithRuns(5).
			WithWarmupRuns(1).
			Build()

		scenarios = append(scenarios, scenario)
	}

	return &ScenarioSet{
		Name:        "Quick Performance Test",
		Description: "PatchMatch over each mask pattern at 5% coverage",
		Scenarios:   scenarios,
	}
}

// GetCoverageSweepScenarios tests one method across hole sizes
func (ps *PredefinedScenarios) GetCoverageSweepScenarios(method fill.Method) *ScenarioSet {
	scenarios := make([]Scenario, 0)

	coverages := []float64{0.01, 0.05, 0.10, 0.25}
	for _, coverage := range coverages {
		scenario := NewScenarioBuilder(fmt.Sprintf("coverage_%s_%02.0f", method, coverage*100)).
			WithMethod(method).
			WithMaskPattern(PatternCenteredBox, coverage).
			Build()

		scenarios = append(scenarios, scenario)
	}

	return &ScenarioSet{
		Name:        fmt.Sprintf("Coverage Sweep - %s", method),
		Description: fmt.Sprintf("Measures how %s scales with the masked fraction", method),
		Scenarios:   scenarios,
	}
}

// GetPatchSizeScenarios tests the core engine across window sizes
func (ps *PredefinedScenarios) GetPatchSizeScenarios() *ScenarioSet {
	scenarios := make([]Scenario, 0)

	sizes := []int{5, 7, 9, 13}
	for _, size := range sizes {
		scenario := NewScenarioBuilder(fmt.Sprintf("patch_%dx%d", size, size)).
			WithPatchMatch(size, patchmatch.DefaultIterations).
			Build()

		scenarios = append(scenarios, scenario)
	}

	return &ScenarioSet{
		Name:        "Patch Size Comparison",
		Description: "Compares PatchMatch window sizes on the same holes",
		Scenarios:   scenarios,
	}
}

// GetMethodComparisonScenarios compares fill engines on the same holes
func (ps *PredefinedScenarios) GetMethodComparisonScenarios(methods []fill.Method, coverage float64) *ScenarioSet {
	scenarios := make([]Scenario, 0)

	for _, method := range methods {
		scenario := NewScenarioBuilder(fmt.Sprintf("method_%s_%02.0f", method, coverage*100)).
			WithMethod(method).
			WithMaskPattern(PatternCenteredBox, coverage).
			Build()

		scenarios = append(scenarios, scenario)
	}

	return &ScenarioSet{
		Name:        fmt.Sprintf("Method Comparison @ %.0f%%", coverage*100),
		Description: fmt.Sprintf("Compares fill methods at %.0f%% coverage", coverage*100),
		Scenarios:   scenarios,
	}
}

// SaveScenarioSet saves a scenario set to a JSON file
func SaveScenarioSet(scenarioSet *ScenarioSet, filename string) error {
	data, err := json.MarshalIndent(scenarioSet, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario set: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	return nil
}

// LoadScenarioSet loads a scenario set from a JSON file
func LoadScenarioSet(filename string) (*ScenarioSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenarioSet ScenarioSet
	if err := json.Unmarshal(data, &scenarioSet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario set: %w", err)
	}

	return &scenarioSet, nil
}
