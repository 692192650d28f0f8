package categories

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// FileName is the category definitions file inside a workspace.
const FileName = "categories.yaml"

// Service provides in-memory lookup over the category set.
type Service struct {
	cats   []model.Category
	byID   map[string]model.Category
	byName map[string]model.Category
}

// categoriesFile is the on-disk YAML shape.
type categoriesFile struct {
	Categories []fileEntry `yaml:"categories"`
}

type fileEntry struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Keywords  []string `yaml:"keywords,omitempty"`
	System    bool     `yaml:"system,omitempty"`
	Matchable bool     `yaml:"matchable,omitempty"`
	Order     int      `yaml:"order"`
}

// NewService creates a Service from a slice of categories, ordered by their
// Order field (ties keep input order).
func NewService(cats []model.Category) *Service {
	sorted := make([]model.Category, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	byID := make(map[string]model.Category, len(sorted))
	byName := make(map[string]model.Category, len(sorted))
	for _, c := range sorted {
		byID[c.ID] = c
		byName[c.Name] = c
	}
	return &Service{cats: sorted, byID: byID, byName: byName}
}

// Load reads categories.yaml from a workspace root. Entries without an ID
// get one assigned; call Save afterwards to persist them.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}

	seenID := make(map[string]bool, len(file.Categories))
	seenName := make(map[string]bool, len(file.Categories))
	cats := make([]model.Category, 0, len(file.Categories))
	for _, e := range file.Categories {
		if e.Name == "" {
			return nil, fmt.Errorf("category with id %q has no name", e.ID)
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if seenID[e.ID] {
			return nil, fmt.Errorf("duplicate category id %q", e.ID)
		}
		if seenName[e.Name] {
			return nil, fmt.Errorf("duplicate category name %q", e.Name)
		}
		seenID[e.ID] = true
		seenName[e.Name] = true
		cats = append(cats, model.Category{
			ID:        e.ID,
			Name:      e.Name,
			Keywords:  e.Keywords,
			IsSystem:  e.System,
			Matchable: e.Matchable,
			Order:     e.Order,
		})
	}
	return NewService(cats), nil
}

// Save writes the category set to categories.yaml in the workspace root.
func (s *Service) Save(root string) error {
	file := categoriesFile{Categories: make([]fileEntry, 0, len(s.cats))}
	for _, c := range s.cats {
		file.Categories = append(file.Categories, fileEntry{
			ID:        c.ID,
			Name:      c.Name,
			Keywords:  c.Keywords,
			System:    c.IsSystem,
			Matchable: c.Matchable,
			Order:     c.Order,
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling categories: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), data, 0o644); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}

// All returns every category in display order.
func (s *Service) All() []model.Category {
	return s.cats
}

// Get returns a category by ID.
func (s *Service) Get(id string) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// GetByName returns a category by its display name.
func (s *Service) GetByName(name string) (model.Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Exists reports whether a category ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Resolve accepts either a category ID or a display name, for CLI use.
func (s *Service) Resolve(ref string) (model.Category, bool) {
	if c, ok := s.byID[ref]; ok {
		return c, true
	}
	c, ok := s.byName[ref]
	return c, ok
}

// Matchable returns the categories keyword matching may use, in order.
func (s *Service) Matchable() []model.Category {
	var result []model.Category
	for _, c := range s.cats {
		if c.MatchEligible() {
			result = append(result, c)
		}
	}
	return result
}

// UncategorizedID returns the system Uncategorized category's ID, or "".
func (s *Service) UncategorizedID() string {
	return s.systemID(model.SystemUncategorized)
}

// ExcludedID returns the system Excluded category's ID, or "".
func (s *Service) ExcludedID() string {
	return s.systemID(model.SystemExcluded)
}

func (s *Service) systemID(name string) string {
	c, ok := s.byName[name]
	if !ok || !c.IsSystem {
		return ""
	}
	return c.ID
}
