package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepSampleBrief,
		StepMarketResearch,
		StepCampaignBrief,
		StepAdCopy,
		StepStoryboard,
	}

	seen := map[string]bool{}
	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
		assert.False(t, seen[step], "step constant %q is duplicated", step)
		seen[step] = true
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		Source: "gs://bucket/brief.pdf",
		Model:  "gemini-2.0-flash-001",
		Status: RunStatusRunning,
	}

	assert.Equal(t, "gs://bucket/brief.pdf", run.Source)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)
	assert.Nil(t, run.ErrorMessage)
}

func TestSchemaSQL(t *testing.T) {
	for _, table := range []string{"campaign_runs", "run_steps", "artifacts"} {
		assert.True(t, strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+table), "schema should create %s", table)
	}
	assert.Contains(t, schemaSQL, "UNIQUE (run_id, step)")
}
