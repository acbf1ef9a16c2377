// Package catalog serves the read-only set of activity templates the planner
// schedules from. The catalog is loaded once and never mutated.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/utils"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrActivityNotFound is returned by Get for an unknown template id.
var ErrActivityNotFound = errors.New("activity not found")

// themeCategories lists the categories each theme draws from. Balanced is
// absent on purpose: it matches every category.
var themeCategories = map[models.Theme][]models.Category{
	models.ThemeLazy:      {models.CategoryRelaxation, models.CategoryWellness, models.CategoryFood, models.CategoryEntertainment},
	models.ThemeAdventure: {models.CategoryAdventure, models.CategoryWellness, models.CategoryFood},
	models.ThemeSocial:    {models.CategorySocial, models.CategoryFood, models.CategoryEntertainment},
}

type document struct {
	Activities []models.ActivityTemplate `yaml:"activities"`
}

// Catalog is an immutable, ordered set of activity templates.
type Catalog struct {
	activities []models.ActivityTemplate
	byID       map[string]int
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a replacement catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Activities)
}

// New builds a catalog from templates, rejecting duplicates and malformed entries.
func New(activities []models.ActivityTemplate) (*Catalog, error) {
	c := &Catalog{
		activities: make([]models.ActivityTemplate, 0, len(activities)),
		byID:       make(map[string]int, len(activities)),
	}
	for _, a := range activities {
		if err := validate(a); err != nil {
			return nil, err
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate activity id in catalog: %s", a.ID)
		}
		c.byID[a.ID] = len(c.activities)
		c.activities = append(c.activities, a)
	}
	return c, nil
}

func validate(a models.ActivityTemplate) error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("activity %q has no id", a.Name)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("activity %s has no name", a.ID)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("activity %s has unknown category %q", a.ID, a.Category)
	}
	if a.Duration <= 0 {
		return fmt.Errorf("activity %s must have a positive duration, got %d", a.ID, a.Duration)
	}
	if a.SuggestedTime != "" && !utils.ValidateTimeFormat(a.SuggestedTime) {
		return fmt.Errorf("activity %s has invalid suggested time %q", a.ID, a.SuggestedTime)
	}
	return nil
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.activities)
}

// ListAll returns every template in catalog order.
func (c *Catalog) ListAll() []models.ActivityTemplate {
	out := make([]models.ActivityTemplate, len(c.activities))
	copy(out, c.activities)
	return out
}

// ListByTheme returns the templates whose category suits theme. An empty or
// balanced theme returns everything.
func (c *Catalog) ListByTheme(theme models.Theme) []models.ActivityTemplate {
	cats, ok := themeCategories[theme]
	if !ok {
		return c.ListAll()
	}
	out := make([]models.ActivityTemplate, 0, len(c.activities))
	for _, a := range c.activities {
		for _, cat := range cats {
			if a.Category == cat {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Search matches term case-insensitively against name and description and
// filters by exact category. An empty category or "all" matches any category.
func (c *Catalog) Search(term string, category models.Category) []models.ActivityTemplate {
	needle := strings.ToLower(term)
	out := make([]models.ActivityTemplate, 0)
	for _, a := range c.activities {
		if category != "" && category != models.CategoryAll && a.Category != category {
			continue
		}
		if strings.Contains(strings.ToLower(a.Name), needle) ||
			strings.Contains(strings.ToLower(a.Description), needle) {
			out = append(out, a)
		}
	}
	return out
}

// Get looks up a template by id.
func (c *Catalog) Get(id string) (models.ActivityTemplate, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.ActivityTemplate{}, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}
	return c.activities[i], nil
}
