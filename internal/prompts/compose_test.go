package prompts

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jonathan/campaign-pipeline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractedBrief = `{"campaign_name":"X","campaign_objectives":["o1"],"target_audience":"t","media_strategy":["m1"],"timeline":"2025","target_countries":["US","FR"],"performance_metrics":["p1"]}`

func decodeBrief(t *testing.T) *types.CampaignBrief {
	t.Helper()
	var brief types.CampaignBrief
	require.NoError(t, json.Unmarshal([]byte(extractedBrief), &brief))
	return &brief
}

func TestAdCopy_ContainsCountriesAndBrief(t *testing.T) {
	brief := decodeBrief(t)

	prompt, err := AdCopy(brief)
	require.NoError(t, err)
	assert.Contains(t, prompt, `["US", "FR"]`)
	assert.Contains(t, prompt, brief.JSON())
	assert.Contains(t, prompt, "create an Instagram ad-copy for each target market")
}

func TestStoryboard_ContainsCountriesAndBrief(t *testing.T) {
	brief := decodeBrief(t)

	prompt, err := Storyboard(brief)
	require.NoError(t, err)
	assert.Contains(t, prompt, `target markets: ["US", "FR"].`)
	assert.Contains(t, prompt, brief.JSON())
	assert.Contains(t, prompt, "YouTube Shorts")
}

func TestCampaignSynthesis_IsDeterministic(t *testing.T) {
	brief := decodeBrief(t)
	research := "Phones are getting {{.ProductDetails}} smarter."
	product := "Product Name: Pix Phone 10\n"

	first, err := CampaignSynthesis(brief, research, product)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := CampaignSynthesis(brief, research, product)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Contains(t, first, "Sample campaign brief:\n"+brief.JSON())
	assert.Contains(t, first, "Market research:\n"+research)
	assert.Contains(t, first, "New product details:\n"+product)
}

func TestCampaignSynthesis_MissingInputs(t *testing.T) {
	brief := decodeBrief(t)

	tests := []struct {
		name     string
		sample   *types.CampaignBrief
		research string
		product  string
	}{
		{name: "no sample brief", sample: nil, research: "r", product: "p"},
		{name: "no research", sample: brief, research: "  ", product: "p"},
		{name: "no product", sample: brief, research: "r", product: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CampaignSynthesis(tt.sample, tt.research, tt.product)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingInput))
		})
	}
}

func TestBriefPrompts_MissingBrief(t *testing.T) {
	_, err := AdCopy(nil)
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = Storyboard(&types.CampaignBrief{CampaignName: "no countries"})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestMarketResearch(t *testing.T) {
	assert.Contains(t, MarketResearch(""), "latest trends in the phone industry")
	assert.Equal(t, "custom question", MarketResearch("custom question"))
}

func TestBriefExtraction(t *testing.T) {
	assert.Equal(t, "Extract the details from the sample marketing brief.", BriefExtraction())
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, `[]`, FormatList(nil))
	assert.Equal(t, `["US"]`, FormatList([]string{"US"}))
	assert.Equal(t, `["US", "FR", "Côte d'Ivoire"]`, FormatList([]string{"US", "FR", "Côte d'Ivoire"}))
}
