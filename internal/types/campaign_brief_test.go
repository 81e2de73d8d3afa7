package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBrief() CampaignBrief {
	return CampaignBrief{
		CampaignName:       "Pix Phone 10 Launch",
		CampaignObjectives: []string{"Drive pre-orders", "Grow awareness"},
		TargetAudience:     "Tech-savvy adults 25-40",
		MediaStrategy:      []string{"Instagram", "YouTube Shorts"},
		Timeline:           "Jan 2025",
		TargetCountries:    []string{"US", "France", "Japan"},
		PerformanceMetrics: []string{"CTR", "Pre-order volume"},
	}
}

func TestCampaignBrief_JSONFieldNames(t *testing.T) {
	brief := sampleBrief()

	out := brief.JSON()
	assert.Contains(t, out, `"campaign_name": "Pix Phone 10 Launch"`)
	assert.Contains(t, out, `"campaign_objectives"`)
	assert.Contains(t, out, `"target_audience": "Tech-savvy adults 25-40"`)
	assert.Contains(t, out, `"media_strategy"`)
	assert.Contains(t, out, `"timeline": "Jan 2025"`)
	assert.Contains(t, out, `"target_countries"`)
	assert.Contains(t, out, `"performance_metrics"`)

	var decoded CampaignBrief
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, brief, decoded)
}

func TestCampaignBrief_JSONIsStable(t *testing.T) {
	brief := sampleBrief()
	assert.Equal(t, brief.JSON(), brief.JSON())
}

func TestCampaignBrief_JSONKeepsSpecialCharacters(t *testing.T) {
	brief := sampleBrief()
	brief.CampaignName = "Café & <Friends>"

	out := brief.JSON()
	assert.Contains(t, out, `"campaign_name": "Café & <Friends>"`)
	assert.NotContains(t, out, `\u0026`)
}

func TestCampaignBrief_Validate(t *testing.T) {
	brief := sampleBrief()
	assert.NoError(t, brief.Validate())

	empty := sampleBrief()
	empty.TargetCountries = []string{}
	assert.NoError(t, empty.Validate(), "present but empty lists are allowed")

	missing := sampleBrief()
	missing.MediaStrategy = nil
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MediaStrategy")
}

func TestAdCopyBundle_Entry(t *testing.T) {
	bundle := AdCopyBundle{
		AdCopyOptions:     []string{"Hello US", "Bonjour FR"},
		LocalizationNotes: []string{"casual"},
		VisualDescription: []string{"city", "Paris", "Tokyo"},
	}

	assert.Equal(t, 3, bundle.Len())

	copyText, note, visual := bundle.Entry(1)
	assert.Equal(t, "Bonjour FR", copyText)
	assert.Equal(t, "", note)
	assert.Equal(t, "Paris", visual)

	copyText, note, visual = bundle.Entry(5)
	assert.Empty(t, copyText)
	assert.Empty(t, note)
	assert.Empty(t, visual)
}

func TestAdCopyBundle_Validate(t *testing.T) {
	bundle := AdCopyBundle{
		AdCopyOptions:     []string{"a"},
		LocalizationNotes: []string{"b"},
	}
	require.Error(t, bundle.Validate())

	bundle.VisualDescription = []string{"c"}
	assert.NoError(t, bundle.Validate())
}

func TestAdCopyBundle_JSONKeepsNonASCII(t *testing.T) {
	bundle := AdCopyBundle{
		AdCopyOptions:     []string{"新しいPix Phone 10"},
		LocalizationNotes: []string{"Japanese"},
		VisualDescription: []string{"Tokyo"},
	}
	assert.Contains(t, bundle.JSON(), "新しいPix Phone 10")
}

func TestProductDetails_Describe(t *testing.T) {
	product := ProductDetails{
		Name:             "Pix Phone 10",
		ShortDescription: "Flagship phone",
		TechSpecs:        []Spec{{Name: "Camera", Value: "50MP"}},
		KeyHighlights:    []string{"Compact form factor"},
		LaunchTimeline:   "Jan 2025",
		TargetCountries:  []string{"US", "France", "Japan"},
	}

	desc := product.Describe()
	assert.Contains(t, desc, "Product Name: Pix Phone 10\n")
	assert.Contains(t, desc, "Short description: Flagship phone\n")
	assert.Contains(t, desc, "Tech Specs:\n  - Camera: 50MP\n")
	assert.Contains(t, desc, "Key Highlights:\n  - Compact form factor\n")
	assert.Contains(t, desc, "Launch timeline: Jan 2025\n")
	assert.Contains(t, desc, "Target countries: US, France and Japan\n")
}

func TestProductDetails_DescribeMinimal(t *testing.T) {
	product := ProductDetails{Name: "Widget", TargetCountries: []string{"US"}}

	desc := product.Describe()
	assert.Equal(t, "Product Name: Widget\nTarget countries: US\n", desc)
}
