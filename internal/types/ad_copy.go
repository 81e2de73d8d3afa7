package types

import "github.com/go-playground/validator/v10"

// AdCopyBundle holds localized ad copy for a campaign. Entries in each list are
// conceptually paired with the brief's target countries, in order.
type AdCopyBundle struct {
	AdCopyOptions     []string `json:"ad_copy_options" validate:"required"`
	LocalizationNotes []string `json:"localization_notes" validate:"required"`
	VisualDescription []string `json:"visual_description" validate:"required"`
}

// Validate checks that every list field was present in the decoded payload.
func (a *AdCopyBundle) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// JSON returns the canonical indented JSON rendering of the bundle.
func (a *AdCopyBundle) JSON() string {
	return marshalIndent(a)
}

// Entry returns the i-th ad copy, localization note and visual description.
// Missing entries are returned as empty strings.
func (a *AdCopyBundle) Entry(i int) (copyText, note, visual string) {
	if i < len(a.AdCopyOptions) {
		copyText = a.AdCopyOptions[i]
	}
	if i < len(a.LocalizationNotes) {
		note = a.LocalizationNotes[i]
	}
	if i < len(a.VisualDescription) {
		visual = a.VisualDescription[i]
	}
	return copyText, note, visual
}

// Len returns the length of the longest list in the bundle.
func (a *AdCopyBundle) Len() int {
	return max(len(a.AdCopyOptions), len(a.LocalizationNotes), len(a.VisualDescription))
}
