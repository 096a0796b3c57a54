package search

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config tunes the search heuristics. The probe key list and stopword set are
// data on purpose: upstream payload schemas drift, and extending a list is
// safer than touching control flow.
type Config struct {
	ProbeKeys             []string `yaml:"probe_keys"`
	Stopwords             []string `yaml:"stopwords"`
	TitleWeight           int      `yaml:"title_weight"`
	BodyWeight            int      `yaml:"body_weight"`
	MaxCandidates         int      `yaml:"max_candidates"`
	FallbackSample        int      `yaml:"fallback_sample"`
	SnippetLength         int      `yaml:"snippet_length"`
	AdvancedSnippetLength int      `yaml:"advanced_snippet_length"`
}

// DefaultConfig returns the compiled-in tuning values. The probe keys cover
// every payload schema the pipeline has been observed to return, in priority
// order.
func DefaultConfig() *Config {
	return &Config{
		ProbeKeys: []string{
			"website_content",
			"output",
			"content",
			"extracted_content",
			"text",
			"scraped_content",
			"data",
		},
		Stopwords: []string{
			"the", "a", "an", "and", "or", "but", "is", "are", "was", "were",
			"in", "on", "at", "to", "for", "with", "by", "about", "like",
			"through", "over", "before", "between", "after", "from", "up",
			"down", "do", "does", "did", "have", "has", "had", "of", "that", "this",
		},
		TitleWeight:           3,
		BodyWeight:            1,
		MaxCandidates:         15,
		FallbackSample:        10,
		SnippetLength:         200,
		AdvancedSnippetLength: 250,
	}
}

// LoadConfig reads a YAML tuning file and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read search config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse search config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid search config %s: %w", path, err)
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if len(config.ProbeKeys) == 0 {
		return fmt.Errorf("probe_keys must not be empty")
	}
	if config.TitleWeight <= 0 || config.BodyWeight <= 0 {
		return fmt.Errorf("weights must be positive")
	}
	if config.MaxCandidates <= 0 {
		return fmt.Errorf("max_candidates must be positive")
	}
	if config.SnippetLength <= 0 || config.AdvancedSnippetLength <= 0 {
		return fmt.Errorf("snippet lengths must be positive")
	}
	return nil
}
