package styles

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog indicates a preset file that cannot be used.
var ErrInvalidCatalog = errors.New("styles: invalid preset catalog")

// catalogFile is the on-disk YAML layout for preset overrides.
type catalogFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadCatalog reads a preset catalog from a YAML file. An operator can ship
// a custom preset table without rebuilding; the reserved "none" preset may
// not be redefined to carry fragments.
//
// File layout:
//
//	presets:
//	  - id: photorealistic
//	    name: Photorealistic
//	    prompt_suffix: "photorealistic, detailed"
//	    negative_prompt: "cartoon, drawing"
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("styles: read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("%w: no presets defined", ErrInvalidCatalog)
	}

	for _, p := range file.Presets {
		if NormalizeID(p.ID) == NoneID && (p.PromptSuffix != "" || p.NegativePrompt != "") {
			return nil, fmt.Errorf("%w: the %q preset must stay a no-op", ErrInvalidCatalog, NoneID)
		}
	}

	c, err := newCatalog(file.Presets)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return c, nil
}
