package provider

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Registry is the static provider catalog. It is immutable after
// construction and therefore safe for unsynchronized concurrent reads.
type Registry struct {
	descriptors []Descriptor
	byName      map[string]Descriptor
}

// NewRegistry validates the catalog and builds a registry. Duplicate
// provider names are a configuration error.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		if d.Name == "" {
			return nil, eris.New("provider descriptor with empty name")
		}
		if _, exists := byName[d.Name]; exists {
			return nil, eris.Wrap(ErrDuplicateProvider, d.Name)
		}
		byName[d.Name] = d
	}

	descs := make([]Descriptor, len(descriptors))
	copy(descs, descriptors)

	return &Registry{descriptors: descs, byName: byName}, nil
}

// Get returns the descriptor for a provider name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// ListProviders returns descriptors advertising the given capability,
// ordered by priority rank ascending, ties broken by cost ascending.
func (r *Registry) ListProviders(capability string) []Descriptor {
	out := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if d.HasCapability(capability) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PriorityRank != out[j].PriorityRank {
			return out[i].PriorityRank < out[j].PriorityRank
		}
		return out[i].CostPer1KTokens < out[j].CostPer1KTokens
	})
	return out
}

// Names returns all provider names in catalog order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// LoadCatalog reads provider descriptors from a YAML file.
func LoadCatalog(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var doc struct {
		Providers []Descriptor `yaml:"providers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}
	if len(doc.Providers) == 0 {
		return nil, eris.Errorf("catalog: %s declares no providers", path)
	}

	return doc.Providers, nil
}

// DefaultCatalog returns the built-in provider catalog: cheap fast models
// ranked first, premium reasoning models last.
func DefaultCatalog() []Descriptor {
	return []Descriptor{
		{
			Name:            "groq-llama-70b",
			Vendor:          VendorGroq,
			Model:           "llama-3.3-70b-versatile",
			CostPer1KTokens: 0.0007,
			QualityScore:    70,
			PriorityRank:    1,
			Capabilities:    []string{CapabilityTextGeneration, CapabilityFast},
			RatePerSecond:   4,
			Burst:           8,
		},
		{
			Name:            "openai-gpt4o-mini",
			Vendor:          VendorOpenAI,
			Model:           "gpt-4o-mini",
			CostPer1KTokens: 0.0004,
			QualityScore:    74,
			PriorityRank:    2,
			Capabilities:    []string{CapabilityTextGeneration, CapabilityFast},
			RatePerSecond:   8,
			Burst:           16,
		},
		{
			Name:            "anthropic-haiku",
			Vendor:          VendorAnthropic,
			Model:           "claude-haiku-4-5-20251001",
			CostPer1KTokens: 0.0024,
			QualityScore:    80,
			PriorityRank:    3,
			Capabilities:    []string{CapabilityTextGeneration, CapabilityFast},
			RatePerSecond:   4,
			Burst:           8,
		},
		{
			Name:            "openai-gpt4o",
			Vendor:          VendorOpenAI,
			Model:           "gpt-4o",
			CostPer1KTokens: 0.0075,
			QualityScore:    88,
			PriorityRank:    4,
			Capabilities:    []string{CapabilityTextGeneration, CapabilityReasoning},
			RatePerSecond:   4,
			Burst:           8,
		},
		{
			Name:            "anthropic-sonnet",
			Vendor:          VendorAnthropic,
			Model:           "claude-sonnet-4-5-20250929",
			CostPer1KTokens: 0.0105,
			QualityScore:    93,
			PriorityRank:    5,
			Capabilities:    []string{CapabilityTextGeneration, CapabilityReasoning},
			RatePerSecond:   2,
			Burst:           4,
		},
	}
}
