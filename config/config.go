// Package config provides configuration loading and management for semproto.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semproto/resolver"
)

// packageName matches a dotted proto package such as "schemaorg" or
// "example.schema.v1".
var packageName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Config represents the complete semproto configuration
type Config struct {
	// Package is the proto package of the generated schema
	Package string `yaml:"package"`
	// OutputDir receives schema.proto and schema_descriptor.json
	OutputDir string `yaml:"output_dir"`
	// Source is the vocabulary file or glob to compile
	Source string `yaml:"source"`
	// MetricsFile, when set, receives compile metrics in Prometheus text format
	MetricsFile string `yaml:"metrics_file"`

	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Comments   CommentsConfig   `yaml:"comments"`
	Overrides  OverridesConfig  `yaml:"overrides"`
	Watch      WatchConfig      `yaml:"watch"`
}

// VocabularyConfig configures vocabulary IRIs
type VocabularyConfig struct {
	// Namespace is the IRI prefix of the source vocabulary (empty = detect)
	Namespace string `yaml:"namespace"`
	// CanonicalNamespace prefixes enumeration member IRIs in the output
	CanonicalNamespace string `yaml:"canonical_namespace"`
}

// CommentsConfig configures documentation comments
type CommentsConfig struct {
	// Style is "text" (strip markup) or "markdown"
	Style string `yaml:"style"`
}

// OverridesConfig corrects vocabulary entries that lack the relationships
// the compiler relies on
type OverridesConfig struct {
	// Enumerations are classes always emitted as enumerations
	Enumerations []string `yaml:"enumerations"`
	// Subclasses are extra parent → children edges used for range widening
	Subclasses map[string][]string `yaml:"subclasses"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long source changes settle before recompiling
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Package:   "schemaorg",
		OutputDir: ".",
		Vocabulary: VocabularyConfig{
			Namespace:          "", // Auto-detect
			CanonicalNamespace: "https://schema.org/",
		},
		Comments: CommentsConfig{
			Style: "text",
		},
		Overrides: OverridesConfig{
			Enumerations: []string{"DriveWheelConfigurationValue", "SteeringPositionValue"},
			Subclasses: map[string][]string{
				"Audience": {"Researcher"},
			},
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !packageName.MatchString(c.Package) {
		return fmt.Errorf("package %q is not a valid proto package name", c.Package)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	switch c.Comments.Style {
	case "text", "markdown":
	default:
		return fmt.Errorf("comments.style must be text or markdown, got %q", c.Comments.Style)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// Patch returns the override table in the form the resolver consumes.
func (c *Config) Patch() resolver.Patch {
	return resolver.Patch{
		Enumerations: c.Overrides.Enumerations,
		Subclasses:   c.Overrides.Subclasses,
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Package != "" {
		c.Package = other.Package
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.Source != "" {
		c.Source = other.Source
	}
	if other.MetricsFile != "" {
		c.MetricsFile = other.MetricsFile
	}

	// Vocabulary
	if other.Vocabulary.Namespace != "" {
		c.Vocabulary.Namespace = other.Vocabulary.Namespace
	}
	if other.Vocabulary.CanonicalNamespace != "" {
		c.Vocabulary.CanonicalNamespace = other.Vocabulary.CanonicalNamespace
	}

	// Comments
	if other.Comments.Style != "" {
		c.Comments.Style = other.Comments.Style
	}

	// Overrides
	if len(other.Overrides.Enumerations) > 0 {
		c.Overrides.Enumerations = other.Overrides.Enumerations
	}
	if len(other.Overrides.Subclasses) > 0 {
		c.Overrides.Subclasses = other.Overrides.Subclasses
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
