// Package persona holds the counseling personas, renders their prompts and
// sends them to the text generator.
package persona

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// Names of personas the application refers to directly.
const (
	ProgressTracker = "progress_tracker"
	CBTTherapist    = "cbt_therapist"
)

//go:embed personas.yaml
var defaultTable []byte

type table struct {
	Strategies map[domain.Strategy]string `yaml:"strategies"`
	Personas   []domain.PersonaConfig     `yaml:"personas"`
}

// Registry is the read-only persona table.
type Registry struct {
	personas   map[string]domain.PersonaConfig
	byStrategy map[domain.Strategy]string
}

// Default loads the built-in persona table.
func Default() (*Registry, error) {
	return Parse(defaultTable)
}

// LoadFile loads a persona table from path. An empty path loads the
// built-in table.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML persona table and checks that every strategy maps
// to a defined persona.
func Parse(data []byte) (*Registry, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode personas: %w", err)
	}

	r := &Registry{
		personas:   make(map[string]domain.PersonaConfig, len(t.Personas)),
		byStrategy: make(map[domain.Strategy]string, len(t.Strategies)),
	}
	for _, p := range t.Personas {
		if p.Name == "" {
			return nil, fmt.Errorf("persona without name")
		}
		if _, dup := r.personas[p.Name]; dup {
			return nil, fmt.Errorf("duplicate persona %q", p.Name)
		}
		if p.PromptTemplate == "" {
			return nil, fmt.Errorf("persona %q has no prompt template", p.Name)
		}
		r.personas[p.Name] = p
	}

	for _, s := range domain.Strategies() {
		name, ok := t.Strategies[s]
		if !ok {
			return nil, fmt.Errorf("strategy %q has no persona", s)
		}
		if _, ok := r.personas[name]; !ok {
			return nil, fmt.Errorf("strategy %q maps to %q: %w", s, name, domain.ErrUnknownPersona)
		}
		r.byStrategy[s] = name
	}
	return r, nil
}

// Get returns the persona called name.
func (r *Registry) Get(name string) (domain.PersonaConfig, error) {
	p, ok := r.personas[name]
	if !ok {
		return domain.PersonaConfig{}, fmt.Errorf("%q: %w", name, domain.ErrUnknownPersona)
	}
	return p, nil
}

// ForStrategy returns the persona that answers under s.
func (r *Registry) ForStrategy(s domain.Strategy) (domain.PersonaConfig, error) {
	name, ok := r.byStrategy[s]
	if !ok {
		return domain.PersonaConfig{}, fmt.Errorf("strategy %q: %w", s, domain.ErrUnknownPersona)
	}
	return r.personas[name], nil
}

// Names lists the persona names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.personas))
	for n := range r.personas {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
