package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/campaign-pipeline/internal/pipeline"
)

// Output file names written by writeOutputs
const (
	fileSampleBrief    = "sample_brief.json"
	fileMarketResearch = "market_research.json"
	fileCampaignBrief  = "campaign_brief.json"
	fileAdCopy         = "ad_copy.json"
	fileStoryboard     = "storyboard.md"
)

// writeOutputs writes every output present in st to dir
func writeOutputs(dir string, st *pipeline.State) error {
	if st == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := map[string]string{}
	if st.SampleBrief != nil {
		files[fileSampleBrief] = st.SampleBrief.JSON()
	}
	if st.Research != nil {
		data, err := json.MarshalIndent(st.Research, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal market research: %w", err)
		}
		files[fileMarketResearch] = string(data)
	}
	if st.Brief != nil {
		files[fileCampaignBrief] = st.Brief.JSON()
	}
	if st.AdCopy != nil {
		files[fileAdCopy] = st.AdCopy.JSON()
	}
	if st.Storyboard != "" {
		files[fileStoryboard] = st.Storyboard
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
