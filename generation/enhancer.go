package generation

import (
	"strings"

	"dreamforge/styles"
)

// baselineQualityKeywords are appended to every enhanced prompt. At most
// maxBaselineKeywords of them are added, skipping any the prompt already
// mentions, so repeated enhancement of the same text is a no-op.
var baselineQualityKeywords = []string{
	"high quality",
	"detailed",
	"professional",
	"artistic",
	"4k resolution",
	"sharp focus",
	"well-composed",
}

const maxBaselineKeywords = 3

// baselineNegative is always present in the negative prompt regardless of
// the selected style preset.
var baselineNegative = []string{
	"low quality",
	"blurry",
	"distorted",
	"deformed",
	"ugly",
	"watermark",
}

// ComposePrompt derives the effective (positive, negative) prompt pair from
// a validated request and its resolved style preset.
//
// The positive prompt is the user text, then the preset's suffix, then up
// to three baseline quality keywords the text does not already contain.
// The negative prompt is the preset's fragment unioned with the baseline
// list; duplicates are dropped keeping the first occurrence, so the output
// is stable for a given input.
func ComposePrompt(req ValidatedRequest, preset styles.Preset) EffectivePrompt {
	parts := []string{req.Prompt}
	if preset.PromptSuffix != "" {
		parts = append(parts, preset.PromptSuffix)
	}

	if req.Enhance {
		existing := strings.ToLower(strings.Join(parts, ", "))
		added := 0
		for _, kw := range baselineQualityKeywords {
			if added >= maxBaselineKeywords {
				break
			}
			if strings.Contains(existing, kw) {
				continue
			}
			parts = append(parts, kw)
			added++
		}
	}

	return EffectivePrompt{
		Positive: strings.Join(parts, ", "),
		Negative: composeNegative(preset.NegativePrompt),
	}
}

// composeNegative merges a preset's negative fragment with the baseline
// terms, first occurrence wins.
func composeNegative(fragment string) string {
	seen := make(map[string]bool)
	var terms []string

	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		key := strings.ToLower(term)
		if seen[key] {
			return
		}
		seen[key] = true
		terms = append(terms, term)
	}

	for _, t := range strings.Split(fragment, ",") {
		add(t)
	}
	for _, t := range baselineNegative {
		add(t)
	}

	return strings.Join(terms, ", ")
}
