package admin

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const registryEnv = "ADMIN_REGISTRY_YAML"

// Django-style default when an entity does not set list_per_page.
const DefaultListPerPage = 100

const (
	EntityProduct    = "product"
	EntityCollection = "collection"
	EntityCustomer   = "customer"
	EntityOrder      = "order"
)

const ActionClearInventory = "clear_inventory"

//go:embed admin.yaml
var registryFS embed.FS

type yamlRegistry struct {
	Site     string       `yaml:"site"`
	Version  int          `yaml:"version"`
	Entities []yamlEntity `yaml:"entities"`
}

type yamlEntity struct {
	Name         string   `yaml:"name"`
	ListDisplay  []string `yaml:"list_display"`
	ListEditable []string `yaml:"list_editable"`
	ListPerPage  int      `yaml:"list_per_page"`
	ListFilter   []string `yaml:"list_filter"`
	SearchFields []string `yaml:"search_fields"`
	Ordering     []string `yaml:"ordering"`
	Actions      []string `yaml:"actions"`
}

// EntityConfig is the admin presentation of one entity type.
type EntityConfig struct {
	Name         string   `json:"name"`
	ListDisplay  []string `json:"list_display"`
	ListEditable []string `json:"list_editable"`
	ListPerPage  int      `json:"list_per_page"`
	ListFilter   []string `json:"list_filter"`
	SearchFields []string `json:"search_fields"`
	Ordering     []string `json:"ordering"`
	Actions      []string `json:"actions"`
}

func (c EntityConfig) clone() EntityConfig {
	c.ListDisplay = append([]string{}, c.ListDisplay...)
	c.ListEditable = append([]string{}, c.ListEditable...)
	c.ListFilter = append([]string{}, c.ListFilter...)
	c.SearchFields = append([]string{}, c.SearchFields...)
	c.Ordering = append([]string{}, c.Ordering...)
	c.Actions = append([]string{}, c.Actions...)
	return c
}

// Registry is immutable once built; every accessor hands out copies.
type Registry struct {
	site     string
	entities map[string]EntityConfig
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide registry, parsing it on first use.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		var raw []byte
		raw, defaultErr = readRegistry()
		if defaultErr != nil {
			return
		}
		defaultReg, defaultErr = Parse(raw)
	})
	return defaultReg, defaultErr
}

func readRegistry() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(registryEnv)); path != "" {
		return os.ReadFile(path)
	}
	return registryFS.ReadFile("admin.yaml")
}

func Parse(raw []byte) (*Registry, error) {
	var doc yamlRegistry
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse admin registry: %w", err)
	}
	if len(doc.Entities) == 0 {
		return nil, errors.New("admin registry has no entities")
	}
	reg := &Registry{
		site:     strings.TrimSpace(doc.Site),
		entities: make(map[string]EntityConfig, len(doc.Entities)),
	}
	for _, e := range doc.Entities {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, errors.New("admin entity name is required")
		}
		if _, dup := reg.entities[name]; dup {
			return nil, fmt.Errorf("duplicate admin entity: %s", name)
		}
		if len(e.ListDisplay) == 0 {
			return nil, fmt.Errorf("admin entity %s: list_display is required", name)
		}
		display := map[string]bool{}
		for _, f := range e.ListDisplay {
			display[f] = true
		}
		for _, f := range e.ListEditable {
			if !display[f] {
				return nil, fmt.Errorf("admin entity %s: list_editable field %q is not in list_display", name, f)
			}
		}
		perPage := e.ListPerPage
		if perPage <= 0 {
			perPage = DefaultListPerPage
		}
		reg.entities[name] = EntityConfig{
			Name:         name,
			ListDisplay:  e.ListDisplay,
			ListEditable: e.ListEditable,
			ListPerPage:  perPage,
			ListFilter:   e.ListFilter,
			SearchFields: e.SearchFields,
			Ordering:     e.Ordering,
			Actions:      e.Actions,
		}.clone()
	}
	return reg, nil
}

func (r *Registry) Site() string { return r.site }

func (r *Registry) Entity(name string) (EntityConfig, bool) {
	c, ok := r.entities[name]
	if !ok {
		return EntityConfig{}, false
	}
	return c.clone(), true
}

// Entities returns every registered entity sorted by name.
func (r *Registry) Entities() []EntityConfig {
	names := make([]string, 0, len(r.entities))
	for n := range r.entities {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]EntityConfig, 0, len(names))
	for _, n := range names {
		out = append(out, r.entities[n].clone())
	}
	return out
}

func (r *Registry) PerPage(entity string) int {
	if c, ok := r.entities[entity]; ok {
		return c.ListPerPage
	}
	return DefaultListPerPage
}

func (r *Registry) HasAction(entity, action string) bool {
	c, ok := r.entities[entity]
	if !ok {
		return false
	}
	for _, a := range c.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// EditableFields keeps only list_editable keys of updates and reports the rejected ones.
func (r *Registry) EditableFields(entity string, updates map[string]any) (map[string]any, []string) {
	allowed := map[string]bool{}
	if c, ok := r.entities[entity]; ok {
		for _, f := range c.ListEditable {
			allowed[f] = true
		}
	}
	kept := map[string]any{}
	var rejected []string
	for k, v := range updates {
		if allowed[k] {
			kept[k] = v
			continue
		}
		rejected = append(rejected, k)
	}
	sort.Strings(rejected)
	return kept, rejected
}
