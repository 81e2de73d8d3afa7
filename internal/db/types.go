package db

import (
	"time"

	"github.com/google/uuid"
)

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run represents a campaign run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	Source       string     `json:"source"`
	Model        string     `json:"model"`
	Status       string     `json:"status"`
	Phase        string     `json:"phase"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// ArtifactSummary is a lightweight view of an artifact for listing
type ArtifactSummary struct {
	ID        uuid.UUID `json:"id"`
	Step      string    `json:"step"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	HasJSON   bool      `json:"has_json"`
	HasText   bool      `json:"has_text"`
}

// Artifact step constants for known artifact types
const (
	StepSampleBrief    = "sample_brief"
	StepMarketResearch = "market_research"
	StepCampaignBrief  = "campaign_brief"
	StepAdCopy         = "ad_copy"
	StepStoryboard     = "storyboard"
)
