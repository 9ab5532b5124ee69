package llm

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Taxonomy lists the labels the model should choose from. It is only a
// prompt hint; replies are never checked against it.
type Taxonomy struct {
	Domains []Domain `yaml:"domains"`
}

// Domain is an L1 entry.
type Domain struct {
	Name       string     `yaml:"name"`
	Categories []Category `yaml:"categories"`
}

// Category is an L2 entry with its L3 sub-groups.
type Category struct {
	Name   string   `yaml:"name"`
	Groups []string `yaml:"groups"`
}

// LoadTaxonomy reads a taxonomy YAML file. An empty path yields nil.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	return ParseTaxonomy(data)
}

// ParseTaxonomy decodes taxonomy YAML.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate rejects empty taxonomies and unnamed entries.
func (t *Taxonomy) Validate() error {
	if len(t.Domains) == 0 {
		return errors.New("taxonomy has no domains")
	}
	for i, d := range t.Domains {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("taxonomy domain %d has no name", i)
		}
		for j, c := range d.Categories {
			if strings.TrimSpace(c.Name) == "" {
				return fmt.Errorf("taxonomy category %d of %q has no name", j, d.Name)
			}
		}
	}
	return nil
}

// Paths renders the taxonomy as "L1 > L2 > L3" lines.
func (t *Taxonomy) Paths() []string {
	if t == nil {
		return nil
	}

	var paths []string
	for _, d := range t.Domains {
		if len(d.Categories) == 0 {
			paths = append(paths, d.Name)
			continue
		}
		for _, c := range d.Categories {
			if len(c.Groups) == 0 {
				paths = append(paths, d.Name+" > "+c.Name)
				continue
			}
			for _, g := range c.Groups {
				paths = append(paths, d.Name+" > "+c.Name+" > "+g)
			}
		}
	}
	return paths
}
