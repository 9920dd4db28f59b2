package main

import (
	"fmt"
	"log"

	"github.com/nvr-ai/go-inpaint/benchmark"
	"github.com/nvr-ai/go-inpaint/fill"
)

// Example program to create and save benchmark scenarios
func main() {
	predefined := &benchmark.PredefinedScenarios{}

	// Create quick scenarios
	quick := predefined.GetQuickScenarios()
	err := benchmark.SaveScenarioSet(quick, "quick_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save quick scenarios: %v", err)
	}
	fmt.Printf("Saved %d quick scenarios\n", len(quick.Scenarios))

	// Create coverage sweep scenarios
	coverage := predefined.GetCoverageSweepScenarios(fill.MethodPatchMatch)
	err = benchmark.SaveScenarioSet(coverage, "coverage_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save coverage scenarios: %v", err)
	}
	fmt.Printf("Saved %d coverage scenarios\n", len(coverage.Scenarios))

	// Create patch size scenarios
	patchSizes := predefined.GetPatchSizeScenarios()
	err = benchmark.SaveScenarioSet(patchSizes, "patch_size_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save patch size scenarios: %v", err)
	}
	fmt.Printf("Saved %d patch size scenarios\n", len(patchSizes.Scenarios))

	// Create method comparison scenarios
	methods := predefined.GetMethodComparisonScenarios(
		[]fill.Method{fill.MethodPatchMatch, fill.MethodTelea, fill.MethodNavierStokes},
		0.05,
	)
	err = benchmark.SaveScenarioSet(methods, "method_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save method scenarios: %v", err)
	}
	fmt.Printf("Saved %d method scenarios\n", len(methods.Scenarios))

	// Create custom scenario using builder
	customScenario := benchmark.NewScenarioBuilder("custom_heavy_strokes").
		WithMethod(fill.MethodPatchMatch).
		WithMaskPattern(benchmark.PatternRandomStrokes, 0.15).
		WithPatchMatch(9, 6).
		WithRuns(20).
		WithWarmupRuns(5).
		WithSeed(42).
		Build()

	customSet := &benchmark.ScenarioSet{
		Name:        "Custom Heavy Strokes Test",
		Description: "Tests dense stroke masks with a widened patch window",
		Scenarios:   []benchmark.Scenario{customScenario},
	}

	err = benchmark.SaveScenarioSet(customSet, "custom_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save custom scenarios: %v", err)
	}
	fmt.Printf("Saved %d custom scenarios\n", len(customSet.Scenarios))

	fmt.Println("All scenario files created successfully!")
}
