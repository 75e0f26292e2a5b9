// Package defaults loads optional first-run overrides from a YAML file.
package defaults

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seekmark/seekmark/internal/domain"
)

// Overrides is the parsed defaults.yaml document. Both sections are
// optional; a missing section keeps the built-in values.
type Overrides struct {
	Settings *domain.Settings `yaml:"settings"`
	Tags     []string         `yaml:"tags"`
}

// Loader handles loading and parsing of the defaults.yaml file
type Loader struct {
	filePath string
}

// NewLoader creates a new defaults loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the defaults file.
func (l *Loader) Load() (Overrides, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to read defaults file: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("failed to parse defaults yaml: %w", err)
	}
	return o, nil
}

// Resolve folds the overrides into the built-in first-run values. A
// settings section replaces the whole record; tags are normalized to
// lowercase and deduplicated.
func (o Overrides) Resolve() (domain.Settings, []string) {
	settings := domain.DefaultSettings()
	if o.Settings != nil {
		settings = *o.Settings
	}

	tags := domain.DefaultTags()
	if len(o.Tags) > 0 {
		seen := make(map[string]bool, len(o.Tags))
		tags = make([]string, 0, len(o.Tags))
		for _, t := range o.Tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			tags = append(tags, t)
			seen[t] = true
		}
	}
	return settings, tags
}
