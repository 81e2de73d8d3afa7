// Package steps provides stage definitions and dependency validation for the
// campaign pipeline.
package steps

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	dbpkg "github.com/jonathan/campaign-pipeline/internal/db"
)

// Stage names, in execution order
const (
	ExtractBrief       = "extract_brief"
	MarketResearch     = "market_research"
	SynthesizeBrief    = "synthesize_brief"
	GenerateAdCopy     = "generate_ad_copy"
	GenerateStoryboard = "generate_storyboard"
)

// StepDefinition defines metadata for a pipeline stage
type StepDefinition struct {
	Name         string
	Title        string // Human-facing banner text
	Category     string
	Artifact     string // Artifact step the stage output is stored under
	Reaches      string // Phase the runner enters when the stage succeeds
	Dependencies []string
}

// StepOrder is the fixed execution order of the pipeline
var StepOrder = []string{
	ExtractBrief,
	MarketResearch,
	SynthesizeBrief,
	GenerateAdCopy,
	GenerateStoryboard,
}

// StepRegistry holds all stage definitions
var StepRegistry = map[string]StepDefinition{
	ExtractBrief: {
		Name:         ExtractBrief,
		Title:        "Extracting sample brief",
		Category:     dbpkg.StepCategoryExtraction,
		Artifact:     dbpkg.StepSampleBrief,
		Reaches:      "brief_extracted",
		Dependencies: []string{},
	},
	MarketResearch: {
		Name:         MarketResearch,
		Title:        "Researching target markets",
		Category:     dbpkg.StepCategoryResearch,
		Artifact:     dbpkg.StepMarketResearch,
		Reaches:      "researched",
		Dependencies: []string{ExtractBrief},
	},
	SynthesizeBrief: {
		Name:         SynthesizeBrief,
		Title:        "Synthesizing campaign brief",
		Category:     dbpkg.StepCategorySynthesis,
		Artifact:     dbpkg.StepCampaignBrief,
		Reaches:      "brief_synthesized",
		Dependencies: []string{ExtractBrief, MarketResearch},
	},
	GenerateAdCopy: {
		Name:         GenerateAdCopy,
		Title:        "Generating ad copy",
		Category:     dbpkg.StepCategoryGeneration,
		Artifact:     dbpkg.StepAdCopy,
		Reaches:      "ad_copy_generated",
		Dependencies: []string{SynthesizeBrief},
	},
	GenerateStoryboard: {
		Name:         GenerateStoryboard,
		Title:        "Generating storyboard",
		Category:     dbpkg.StepCategoryGeneration,
		Artifact:     dbpkg.StepStoryboard,
		Reaches:      "storyboard_generated",
		Dependencies: []string{SynthesizeBrief, GenerateAdCopy},
	},
}

// Lookup returns the definition of the named stage
func Lookup(name string) (StepDefinition, error) {
	def, ok := StepRegistry[name]
	if !ok {
		return StepDefinition{}, fmt.Errorf("unknown step: %s", name)
	}
	return def, nil
}

// Ordered returns the stage definitions in execution order
func Ordered() []StepDefinition {
	defs := make([]StepDefinition, 0, len(StepOrder))
	for _, name := range StepOrder {
		defs = append(defs, StepRegistry[name])
	}
	return defs
}

// Index returns the position of the named stage in StepOrder, or -1
func Index(name string) int {
	for i, n := range StepOrder {
		if n == name {
			return i
		}
	}
	return -1
}

// CheckOrder verifies that every stage's dependencies run before it
func CheckOrder() error {
	for i, name := range StepOrder {
		def, err := Lookup(name)
		if err != nil {
			return err
		}
		for _, dep := range def.Dependencies {
			j := Index(dep)
			if j < 0 {
				return fmt.Errorf("step %s depends on unknown step %s", name, dep)
			}
			if j >= i {
				return fmt.Errorf("step %s runs before its dependency %s", name, dep)
			}
		}
	}
	return nil
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %v", e.Step, e.MissingDependencies)
}

// StepStore reads recorded stage executions
type StepStore interface {
	GetRunStep(ctx context.Context, runID uuid.UUID, step string) (*dbpkg.RunStep, error)
}

// ValidateDependencies checks if all required dependencies for a stage are completed
func ValidateDependencies(ctx context.Context, store StepStore, runID uuid.UUID, stepName string) error {
	def, err := Lookup(stepName)
	if err != nil {
		return err
	}

	var missing []string
	for _, dep := range def.Dependencies {
		step, err := store.GetRunStep(ctx, runID, dep)
		if err != nil {
			return fmt.Errorf("failed to check dependency %s: %w", dep, err)
		}
		if step == nil || step.Status != dbpkg.StepStatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// LastCompleted returns the last stage in execution order whose record is
// completed, or "" if none is.
func LastCompleted(ctx context.Context, store StepStore, runID uuid.UUID) (string, error) {
	last := ""
	for _, name := range StepOrder {
		step, err := store.GetRunStep(ctx, runID, name)
		if err != nil {
			return "", fmt.Errorf("failed to check step %s: %w", name, err)
		}
		if step == nil || step.Status != dbpkg.StepStatusCompleted {
			break
		}
		last = name
	}
	return last, nil
}
