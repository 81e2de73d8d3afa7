package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/campaign-pipeline/internal/types"
)

// GetSampleBriefByRunID loads the brief extracted from the source document
func (db *DB) GetSampleBriefByRunID(ctx context.Context, runID uuid.UUID) (*types.CampaignBrief, error) {
	return getBrief(ctx, db, runID, StepSampleBrief)
}

// GetCampaignBriefByRunID loads the synthesized campaign brief
func (db *DB) GetCampaignBriefByRunID(ctx context.Context, runID uuid.UUID) (*types.CampaignBrief, error) {
	return getBrief(ctx, db, runID, StepCampaignBrief)
}

func getBrief(ctx context.Context, db *DB, runID uuid.UUID, step string) (*types.CampaignBrief, error) {
	content, err := db.GetArtifact(ctx, runID, step)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	return unmarshalBrief(content)
}

func unmarshalBrief(content []byte) (*types.CampaignBrief, error) {
	var brief types.CampaignBrief
	if err := json.Unmarshal(content, &brief); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign brief: %w", err)
	}
	return &brief, nil
}

// GetMarketResearchByRunID loads research text and citations for a run
func (db *DB) GetMarketResearchByRunID(ctx context.Context, runID uuid.UUID) (*types.MarketResearch, error) {
	content, err := db.GetArtifact(ctx, runID, StepMarketResearch)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	return unmarshalResearch(content)
}

func unmarshalResearch(content []byte) (*types.MarketResearch, error) {
	var research types.MarketResearch
	if err := json.Unmarshal(content, &research); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market research: %w", err)
	}
	return &research, nil
}

// GetAdCopyByRunID loads the generated ad copy bundle for a run
func (db *DB) GetAdCopyByRunID(ctx context.Context, runID uuid.UUID) (*types.AdCopyBundle, error) {
	content, err := db.GetArtifact(ctx, runID, StepAdCopy)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	return unmarshalAdCopy(content)
}

func unmarshalAdCopy(content []byte) (*types.AdCopyBundle, error) {
	var bundle types.AdCopyBundle
	if err := json.Unmarshal(content, &bundle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ad copy: %w", err)
	}
	return &bundle, nil
}

// GetStoryboardByRunID loads the storyboard text for a run
func (db *DB) GetStoryboardByRunID(ctx context.Context, runID uuid.UUID) (string, error) {
	return db.GetTextArtifact(ctx, runID, StepStoryboard)
}
