package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvr-ai/go-inpaint/benchmark"
	"github.com/nvr-ai/go-inpaint/fill"
	"github.com/nvr-ai/go-inpaint/inference"
)

func main() {
	var (
		corpusDir    = flag.String("corpus", "", "Directory of benchmark images (empty uses a synthetic corpus)")
		outputDir    = flag.String("output", "./benchmark_results", "Output directory for results")
		scenarioFile = flag.String("scenarios", "", "Path to a scenario set JSON file")
		quick        = flag.Bool("quick", false, "Run quick benchmark scenarios")
		coverage     = flag.Bool("coverage", false, "Sweep hole coverage fractions")
		patchSizes   = flag.Bool("patch-sizes", false, "Compare PatchMatch window sizes")
		methods      = flag.String("methods", "", "Comma-separated fill methods to compare (e.g. patchmatch,telea)")
		modelPath    = flag.String("model", "", "Path to an inpainting ONNX model (needed for neural scenarios)")
		timeout      = flag.Duration("timeout", 30*time.Minute, "Benchmark timeout duration")
	)
	flag.Parse()

	// Create benchmark suite
	suite, err := benchmark.NewSuite(benchmark.NewSuiteArgs{
		CorpusDir:  *corpusDir,
		OutputPath: *outputDir,
		Neural:     inference.GetLaMaConfig(*modelPath),
	})
	if err != nil {
		log.Fatalf("Failed to create suite: %v", err)
	}

	// Add scenarios based on flags
	predefined := &benchmark.PredefinedScenarios{}

	if *scenarioFile != "" {
		scenarioSet, err := benchmark.LoadScenarioSet(*scenarioFile)
		if err != nil {
			log.Fatalf("Failed to load scenario file: %v", err)
		}
		suite.AddScenarioSet(scenarioSet)
		fmt.Printf("Loaded %d scenarios from %s\n", len(scenarioSet.Scenarios), *scenarioFile)
	} else {
		if *quick {
			scenarios := predefined.GetQuickScenarios()
			suite.AddScenarioSet(scenarios)
			fmt.Printf("Added %d quick scenarios\n", len(scenarios.Scenarios))
		}

		if *coverage {
			scenarios := predefined.GetCoverageSweepScenarios(fill.MethodPatchMatch)
			suite.AddScenarioSet(scenarios)
			fmt.Printf("Added %d coverage sweep scenarios\n", len(scenarios.Scenarios))
		}

		if *patchSizes {
			scenarios := predefined.GetPatchSizeScenarios()
			suite.AddScenarioSet(scenarios)
			fmt.Printf("Added %d patch size scenarios\n", len(scenarios.Scenarios))
		}

		if *methods != "" {
			compared := make([]fill.Method, 0)
			for _, name := range strings.Split(*methods, ",") {
				compared = append(compared, fill.Method(strings.TrimSpace(name)))
			}
			scenarios := predefined.GetMethodComparisonScenarios(compared, 0.05)
			suite.AddScenarioSet(scenarios)
			fmt.Printf("Added %d method comparison scenarios\n", len(scenarios.Scenarios))
		}

		// If no specific scenarios requested, use quick by default
		if !*quick && !*coverage && !*patchSizes && *methods == "" {
			scenarios := predefined.GetQuickScenarios()
			suite.AddScenarioSet(scenarios)
			fmt.Printf("Added %d default quick scenarios\n", len(scenarios.Scenarios))
		}
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Run benchmarks
	fmt.Println("Starting benchmark execution...")
	start := time.Now()

	if err := suite.RunAllScenarios(ctx); err != nil {
		log.Fatalf("Benchmark execution failed: %v", err)
	}

	duration := time.Since(start)
	fmt.Printf("Benchmark completed in %v\n", duration)

	// Print summary
	results := suite.GetResults()
	fmt.Printf("\n=== BENCHMARK RESULTS SUMMARY ===\n")
	fmt.Printf("Total scenarios: %d\n", len(results))
	fmt.Printf("Results saved to: %s\n", *outputDir)

	// Find fastest scenario
	var bestThroughput float64
	var bestScenario string
	for _, result := range results {
		if result.MegapixelsPerSecond > bestThroughput {
			bestThroughput = result.MegapixelsPerSecond
			bestScenario = result.Scenario.Name
		}
		fmt.Printf("  %s: %.2f Mpx/s, PSNR %.1f dB (%.2f MB memory)\n",
			result.Scenario.Name,
			result.MegapixelsPerSecond,
			result.Quality.PSNR,
			float64(result.MemoryStats.AllocBytes)/(1024*1024))
	}

	fmt.Printf("\nFastest scenario: %s (%.2f Mpx/s)\n", bestScenario, bestThroughput)
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "Benchmark tool for inpainting fill performance and quality.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(
			os.Stderr,
			"  %s -corpus ./test_images -quick\n",
			filepath.Base(os.Args[0]),
		)
		fmt.Fprintf(
			os.Stderr,
			"  %s -scenarios ./scenarios.json -output ./results\n",
			filepath.Base(os.Args[0]),
		)
		fmt.Fprintf(
			os.Stderr,
			"  %s -coverage -patch-sizes -methods patchmatch,telea\n",
			filepath.Base(os.Args[0]),
		)
	}
}
