package domain

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// University is one entry of the static catalog.
type University struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Country     string `yaml:"country" json:"country"`
	Major       string `yaml:"major" json:"major"`
	Fee         string `yaml:"fee" json:"fee"`
	Acceptance  string `yaml:"acceptance" json:"acceptance_rate"`
	Highlight   string `yaml:"highlight" json:"-"`
	Description string `yaml:"description" json:"description"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	universities []University
	byID         map[string]int
	countries    []string
}

// ParseCatalog decodes a YAML catalog document. Duplicate ids are rejected.
func ParseCatalog(b []byte) (*Catalog, error) {
	var doc struct {
		Universities []University `yaml:"universities"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		universities: doc.Universities,
		byID:         make(map[string]int, len(doc.Universities)),
	}
	seenCountry := make(map[string]bool)
	for i, u := range doc.Universities {
		if u.ID == "" {
			return nil, fmt.Errorf("parse catalog: entry %d has no id", i)
		}
		if _, dup := c.byID[u.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate id %q", u.ID)
		}
		c.byID[u.ID] = i
		if !seenCountry[u.Country] {
			seenCountry[u.Country] = true
			c.countries = append(c.countries, u.Country)
		}
	}
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := ParseCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
})

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog { return defaultCatalog() }

// All returns a copy of every university in catalog order.
func (c *Catalog) All() []University {
	out := make([]University, len(c.universities))
	copy(out, c.universities)
	return out
}

func (c *Catalog) Lookup(id string) (University, bool) {
	i, ok := c.byID[id]
	if !ok {
		return University{}, false
	}
	return c.universities[i], true
}

// Countries lists countries in order of first appearance.
func (c *Catalog) Countries() []string {
	out := make([]string, len(c.countries))
	copy(out, c.countries)
	return out
}

// InCountry returns the universities of one country in catalog order.
func (c *Catalog) InCountry(country string) []University {
	var out []University
	for _, u := range c.universities {
		if u.Country == country {
			out = append(out, u)
		}
	}
	return out
}
