// Package models - Registry of pretrained inpainting model families.
package models

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-inpaint/inference"
)

// Family identifies a published inpainting model lineage. Families
// differ in tensor naming and value ranges, not in the fill contract.
type Family string

const (
	// FamilyLaMa is the large-mask inpainting export: 512x512, [0,1]
	// inputs, holes marked with ones.
	FamilyLaMa Family = "lama"
	// FamilyAOTGAN is the AOT-GAN export: [-1,1] inputs with the image
	// tensor named img.
	FamilyAOTGAN Family = "aot-gan"
	// FamilyGeneric assumes the default tensor layout. Use it for
	// custom exports that follow the common convention.
	FamilyGeneric Family = "generic"
)

// Families lists every registered model family.
var Families = []Family{FamilyLaMa, FamilyAOTGAN, FamilyGeneric}

// Resolve returns the runnable configuration for a model family.
//
// This factory is the entry point for model selection: it routes family
// names to the matching tensor layout so callers never hand-assemble an
// inference.Config for a published export.
//
// Arguments:
//   - family: The model lineage the export came from.
//   - modelPath: Path to the ONNX file.
//
// Returns:
//   - inference.Config: The tensor layout for the family.
//   - error: An error if the family is not registered.
//
// @example
//
//	cfg, err := models.Resolve(models.FamilyLaMa, "/models/lama.onnx")
//	if err != nil {
//	    log.Fatalf("Failed to resolve model: %v", err)
//	}
func Resolve(family Family, modelPath string) (inference.Config, error) {
	switch family {
	case FamilyLaMa:
		return inference.GetLaMaConfig(modelPath), nil
	case FamilyAOTGAN:
		return inference.GetAOTGANConfig(modelPath), nil
	case FamilyGeneric:
		cfg := inference.DefaultConfig()
		cfg.ModelPath = modelPath
		return cfg, nil
	default:
		return inference.Config{}, errors.Errorf("unsupported model family: %s", family)
	}
}
