package prompts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/campaign-pipeline/internal/types"
)

// promptFile holds the marketing pipeline templates
const promptFile = "marketing.json"

// ErrMissingInput is returned when a composition function is called without an
// input that its template requires.
var ErrMissingInput = errors.New("missing prompt input")

// BriefExtraction returns the instruction sent alongside the source brief document.
func BriefExtraction() string {
	return MustGet(promptFile, "extract-brief")
}

// MarketResearch returns the grounded research prompt. A non-blank override is
// used verbatim; otherwise the built-in research questions are used.
func MarketResearch(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return MustGet(promptFile, "market-research")
}

// CampaignSynthesis builds the prompt that turns a sample brief, market research and
// new product details into a new campaign brief.
func CampaignSynthesis(sample *types.CampaignBrief, research string, product string) (string, error) {
	if sample == nil {
		return "", fmt.Errorf("%w: sample campaign brief", ErrMissingInput)
	}
	if strings.TrimSpace(research) == "" {
		return "", fmt.Errorf("%w: market research", ErrMissingInput)
	}
	if strings.TrimSpace(product) == "" {
		return "", fmt.Errorf("%w: product details", ErrMissingInput)
	}

	return Format(MustGet(promptFile, "synthesize-brief"), map[string]string{
		"SampleBrief":    sample.JSON(),
		"MarketResearch": research,
		"ProductDetails": product,
	}), nil
}

// AdCopy builds the prompt for localized Instagram ad copy, one per target market.
func AdCopy(brief *types.CampaignBrief) (string, error) {
	return briefPrompt("ad-copy", brief)
}

// Storyboard builds the prompt for a localized short-form video storyboard.
func Storyboard(brief *types.CampaignBrief) (string, error) {
	return briefPrompt("storyboard", brief)
}

func briefPrompt(key string, brief *types.CampaignBrief) (string, error) {
	if brief == nil {
		return "", fmt.Errorf("%w: campaign brief", ErrMissingInput)
	}
	if brief.TargetCountries == nil {
		return "", fmt.Errorf("%w: campaign brief target countries", ErrMissingInput)
	}

	return Format(MustGet(promptFile, key), map[string]string{
		"TargetCountries": FormatList(brief.TargetCountries),
		"Brief":           brief.JSON(),
	}), nil
}

// FormatList renders a list as a JSON-style array of quoted strings, e.g. ["US", "FR"].
func FormatList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
