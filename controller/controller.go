// Package controller - This file contains the controller for routing frames to the appropriate fill engine.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/nvr-ai/go-inpaint/fill"
	"github.com/nvr-ai/go-inpaint/images"
)

// Tier identifies one rung of the fill engine ladder.
type Tier string

const (
	// TierClassic is the cheap engine tier, run on every frame by default.
	TierClassic Tier = "classic"
	// TierNeural is the pretrained model tier, reserved for demanding holes.
	TierNeural Tier = "neural"
)

// Frame is a single image and mask pair moving through the router.
type Frame struct {
	ID        int
	Image     *images.Buffer
	Mask      *images.Buffer
	Timestamp time.Time
}

// ThresholdConfig is a configuration for the routing thresholds.
type ThresholdConfig struct {
	// NeuralHoleFraction routes to the neural tier when the counted hole
	// fraction exceeds it.
	NeuralHoleFraction float64
	// NeuralLargestHoleFraction routes to the neural tier when a single
	// hole exceeds it. Classic engines degrade on large contiguous holes
	// long before they degrade on total coverage.
	NeuralLargestHoleFraction float64
	// HysteresisFrames is how many consecutive disagreeing frames it
	// takes to actually switch tiers.
	HysteresisFrames int
}

// DefaultThresholds returns the routing thresholds used when a caller
// brings no tuning of its own.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		NeuralHoleFraction:        0.10,
		NeuralLargestHoleFraction: 0.05,
		HysteresisFrames:          3,
	}
}

// Controller is a controller for the fill tier. It is not safe for
// concurrent use; route each stream from a single goroutine.
type Controller struct {
	Analyzer        HoleAnalyzer
	Fillers         map[Tier]fill.Filler
	Current         Tier
	HysteresisCount int
	Thresholds      ThresholdConfig
}

// Decide decides the next tier to use.
//
// Arguments:
//   - frame: The frame to decide the next tier for.
//
// Returns:
//   - fill.Filler: The filler to use for the frame.
//   - error: An error if the decision fails.
func (rc *Controller) Decide(frame Frame) (fill.Filler, error) {
	// An unset tier means the stream just started.
	if rc.Current == "" {
		rc.Current = TierClassic
	}

	metrics, err := rc.Analyzer.AnalyzeHoles(frame.Mask)
	if err != nil {
		return nil, err
	}

	var next Tier
	switch {
	case metrics.HoleFraction > rc.Thresholds.NeuralHoleFraction:
		next = TierNeural
	case metrics.LargestHoleFraction > rc.Thresholds.NeuralLargestHoleFraction:
		next = TierNeural
	default:
		next = TierClassic
	}

	if next != rc.Current {
		rc.HysteresisCount++
		if rc.HysteresisCount >= rc.Thresholds.HysteresisFrames {
			rc.Current = next
			rc.HysteresisCount = 0
		}
	} else {
		rc.HysteresisCount = 0
	}

	filler, ok := rc.Fillers[rc.Current]
	if !ok {
		return nil, fmt.Errorf("no filler registered for tier %s", rc.Current)
	}
	return filler, nil
}

// Process routes the frame and runs the chosen filler on it in place.
//
// Arguments:
//   - ctx: Bounds the fill.
//   - frame: The frame to fill. Its mask is consumed by the fill.
//
// Returns:
//   - Tier: The tier that handled the frame.
//   - error: An error if routing or filling fails.
func (rc *Controller) Process(ctx context.Context, frame Frame) (Tier, error) {
	filler, err := rc.Decide(frame)
	if err != nil {
		return "", err
	}
	if err := filler.Fill(ctx, frame.Image, frame.Mask); err != nil {
		return rc.Current, err
	}
	return rc.Current, nil
}
