package localization

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseOverrides decodes a YAML document of the form
//
//	en_GB:
//	  sentence_disabled: "Paused"
//	es_ES:
//	  and: "e"
//
// Unknown languages or keys are rejected so typos surface at startup.
func ParseOverrides(data []byte) (Overrides, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("localization: decode overrides: %w", err)
	}

	out := make(Overrides, len(raw))
	for code, entries := range raw {
		lang, err := ParseLanguage(code)
		if err != nil {
			return nil, err
		}
		for name, text := range entries {
			key, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("%w (language %s)", err, lang)
			}
			out.Set(lang, key, text)
		}
	}
	return out, nil
}

// LoadOverridesFile reads and parses an overrides file. An empty path yields
// no overrides.
func LoadOverridesFile(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("localization: read overrides file: %w", err)
	}
	return ParseOverrides(data)
}
