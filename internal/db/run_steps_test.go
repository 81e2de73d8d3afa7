package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepStatusConstants(t *testing.T) {
	assert.Equal(t, "pending", StepStatusPending)
	assert.Equal(t, "in_progress", StepStatusInProgress)
	assert.Equal(t, "completed", StepStatusCompleted)
	assert.Equal(t, "failed", StepStatusFailed)
}

func TestStepCategoryConstants(t *testing.T) {
	assert.Equal(t, "extraction", StepCategoryExtraction)
	assert.Equal(t, "research", StepCategoryResearch)
	assert.Equal(t, "synthesis", StepCategorySynthesis)
	assert.Equal(t, "generation", StepCategoryGeneration)
}

func TestIsTerminalStepStatus(t *testing.T) {
	assert.True(t, IsTerminalStepStatus(StepStatusCompleted))
	assert.True(t, IsTerminalStepStatus(StepStatusFailed))
	assert.False(t, IsTerminalStepStatus(StepStatusPending))
	assert.False(t, IsTerminalStepStatus(StepStatusInProgress))
	assert.False(t, IsTerminalStepStatus("unknown"))
}
