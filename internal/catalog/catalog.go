// Package catalog serves the static sample prompt catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thebtf/promptdeck/pkg/models"
)

//go:embed samples.yaml
var defaultSamples []byte

// Sample is one catalog entry as written in YAML.
type Sample struct {
	Text        string   `yaml:"text"`
	Category    string   `yaml:"category"`
	Suggestions []string `yaml:"suggestions"`
	AgeDays     int      `yaml:"age_days"`
}

// Config is the top-level YAML structure.
type Config struct {
	Samples []Sample `yaml:"samples"`
}

// Registry holds catalog samples in definition order.
type Registry struct {
	samples []Sample
}

// Default returns the embedded catalog.
func Default() *Registry {
	r, err := Parse(defaultSamples)
	if err != nil {
		panic("embedded catalog is invalid: " + err.Error())
	}
	return r
}

// Load reads a catalog file. An empty path or a missing file yields the
// embedded catalog.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Registry, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, s := range cfg.Samples {
		if s.Text == "" {
			return nil, fmt.Errorf("sample %d: empty text", i)
		}
		if len(s.Suggestions) != models.SuggestionCount {
			return nil, fmt.Errorf("sample %q: want %d suggestions, got %d", s.Text, models.SuggestionCount, len(s.Suggestions))
		}
		if _, ok := models.ParseCategory(s.Category); !ok {
			return nil, fmt.Errorf("sample %q: unknown category %q", s.Text, s.Category)
		}
	}
	return &Registry{samples: cfg.Samples}, nil
}

// Len returns the number of samples.
func (r *Registry) Len() int {
	return len(r.samples)
}

// Records materializes the samples as prompt records dated relative to now.
// Ids are 1-based positions in the catalog.
func (r *Registry) Records(now time.Time) models.HistoryList {
	out := make(models.HistoryList, 0, len(r.samples))
	for i, s := range r.samples {
		category, _ := models.ParseCategory(s.Category)
		created := now.Add(-time.Duration(s.AgeDays) * 24 * time.Hour)
		out = append(out, models.NewPromptRecord(int64(i+1), s.Text, s.Suggestions, category, created))
	}
	return out
}

// Search filters the catalog by a case-insensitive substring over text and
// suggestions, and by category. An empty category or "all" matches every category.
func (r *Registry) Search(now time.Time, query string, category string) models.HistoryList {
	all := r.Records(now)
	out := make(models.HistoryList, 0, len(all))
	for _, rec := range all {
		if !rec.Matches(query) {
			continue
		}
		if category != "" && category != "all" && string(rec.Category) != category {
			continue
		}
		out = append(out, rec)
	}
	return out
}
