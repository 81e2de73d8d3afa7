package types

import (
	"fmt"
	"strings"
)

// ProductDetails describes the new product a campaign is created for.
type ProductDetails struct {
	Name             string   `json:"name" yaml:"name"`
	ShortDescription string   `json:"short_description" yaml:"short_description"`
	TechSpecs        []Spec   `json:"tech_specs,omitempty" yaml:"tech_specs"`
	KeyHighlights    []string `json:"key_highlights,omitempty" yaml:"key_highlights"`
	LaunchTimeline   string   `json:"launch_timeline,omitempty" yaml:"launch_timeline"`
	TargetCountries  []string `json:"target_countries,omitempty" yaml:"target_countries"`
}

// Spec is a single named technical specification
type Spec struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Describe renders the product as the plain-text block used in prompts.
func (p *ProductDetails) Describe() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Product Name: %s\n", p.Name))
	if p.ShortDescription != "" {
		sb.WriteString(fmt.Sprintf("Short description: %s\n", p.ShortDescription))
	}
	if len(p.TechSpecs) > 0 {
		sb.WriteString("Tech Specs:\n")
		for _, spec := range p.TechSpecs {
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", spec.Name, spec.Value))
		}
	}
	if len(p.KeyHighlights) > 0 {
		sb.WriteString("Key Highlights:\n")
		for _, h := range p.KeyHighlights {
			sb.WriteString(fmt.Sprintf("  - %s\n", h))
		}
	}
	if p.LaunchTimeline != "" {
		sb.WriteString(fmt.Sprintf("Launch timeline: %s\n", p.LaunchTimeline))
	}
	if len(p.TargetCountries) > 0 {
		sb.WriteString(fmt.Sprintf("Target countries: %s\n", joinCountries(p.TargetCountries)))
	}

	return sb.String()
}

// joinCountries renders "US, France and Japan"
func joinCountries(countries []string) string {
	switch len(countries) {
	case 0:
		return ""
	case 1:
		return countries[0]
	default:
		return strings.Join(countries[:len(countries)-1], ", ") + " and " + countries[len(countries)-1]
	}
}
