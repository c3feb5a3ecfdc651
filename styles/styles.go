// Package styles provides the fixed style preset catalog applied to prompts
// before inference.
//
// A preset is a named, immutable prompt-modification template: a suffix
// appended to the positive prompt and a fragment merged into the negative
// prompt. The catalog is loaded once at startup and read-only afterwards.
package styles

import (
	"fmt"
	"strings"
)

// NoneID is the reserved identifier meaning "no transformation".
// Looking it up always returns a preset with empty fragments.
const NoneID = "none"

// Preset is a single style preset. Immutable once loaded.
type Preset struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	PromptSuffix   string `yaml:"prompt_suffix"`
	NegativePrompt string `yaml:"negative_prompt"`
}

// IsNone reports whether the preset performs no transformation.
func (p Preset) IsNone() bool {
	return p.PromptSuffix == "" && p.NegativePrompt == ""
}

// Catalog maps style identifiers to presets. Safe for concurrent reads.
type Catalog struct {
	byID    map[string]Preset
	ordered []Preset
}

// builtinPresets is the fixed process-wide preset table.
var builtinPresets = []Preset{
	{
		ID:             "photorealistic",
		Name:           "Photorealistic",
		PromptSuffix:   "photorealistic, realistic, detailed, high quality",
		NegativePrompt: "cartoon, drawing, illustration, painting",
	},
	{
		ID:             "artistic",
		Name:           "Artistic",
		PromptSuffix:   "artistic, painting style, creative, expressive",
		NegativePrompt: "photograph, photorealistic",
	},
	{
		ID:             "cinematic",
		Name:           "Cinematic",
		PromptSuffix:   "cinematic, dramatic lighting, movie scene, epic",
		NegativePrompt: "flat lighting, amateur",
	},
	{
		ID:             "fantasy",
		Name:           "Fantasy",
		PromptSuffix:   "fantasy art, magical, ethereal, mystical",
		NegativePrompt: "mundane, modern setting",
	},
	{
		ID:             "scifi",
		Name:           "Sci-Fi",
		PromptSuffix:   "science fiction, futuristic, high-tech, cyberpunk",
		NegativePrompt: "historical, medieval",
	},
	{
		ID:             "landscape",
		Name:           "Landscape",
		PromptSuffix:   "landscape photography, natural lighting, scenic",
		NegativePrompt: "people, indoor scene",
	},
	{
		ID:             "portrait",
		Name:           "Portrait",
		PromptSuffix:   "portrait, professional headshot, well-lit face",
		NegativePrompt: "deformed face, extra limbs, cropped head",
	},
	{
		ID:             "vintage",
		Name:           "Vintage",
		PromptSuffix:   "vintage style, retro, classic, nostalgic",
		NegativePrompt: "modern, digital artifacts",
	},
	{
		ID:   NoneID,
		Name: "None",
	},
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	c, err := newCatalog(builtinPresets)
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}

func newCatalog(presets []Preset) (*Catalog, error) {
	byID := make(map[string]Preset, len(presets))
	ordered := make([]Preset, 0, len(presets))
	for _, p := range presets {
		id := NormalizeID(p.ID)
		if id == "" {
			return nil, fmt.Errorf("styles: preset %q has empty id", p.Name)
		}
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("styles: duplicate preset id %q", id)
		}
		p.ID = id
		byID[id] = p
		ordered = append(ordered, p)
	}
	// The reserved no-op preset is always present
	if _, ok := byID[NoneID]; !ok {
		none := Preset{ID: NoneID, Name: "None"}
		byID[NoneID] = none
		ordered = append(ordered, none)
	}
	return &Catalog{byID: byID, ordered: ordered}, nil
}

// Lookup returns the preset for the given identifier. Unknown identifiers
// and NoneID return the no-op preset; by the time a request reaches the
// catalog, the validator has already normalized unknown styles to NoneID.
func (c *Catalog) Lookup(id string) Preset {
	if p, ok := c.byID[NormalizeID(id)]; ok {
		return p
	}
	return c.byID[NoneID]
}

// Contains reports whether the identifier names a known preset.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[NormalizeID(id)]
	return ok
}

// List returns the presets in catalog order.
func (c *Catalog) List() []Preset {
	out := make([]Preset, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// NormalizeID canonicalizes a style identifier: lowercase, trimmed, with
// spaces and hyphens removed ("Sci-Fi" and "scifi" name the same preset).
func NormalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.ReplaceAll(id, " ", "")
	id = strings.ReplaceAll(id, "-", "")
	return id
}
