package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Registry provides access to prompt definitions.
type Registry interface {
	Get(slug string) (*Prompt, error)
	ForMode(mode string) (*Prompt, error)
	List() []*Prompt
}

// InMemoryRegistry stores prompts by slug.
type InMemoryRegistry struct {
	prompts map[string]*Prompt
}

// NewRegistry builds a registry from prompts.
func NewRegistry(prompts []*Prompt) (*InMemoryRegistry, error) {
	reg := &InMemoryRegistry{prompts: make(map[string]*Prompt)}
	for _, p := range prompts {
		if p == nil {
			continue
		}
		slug := strings.TrimSpace(p.Config.Slug)
		if slug == "" {
			return nil, fmt.Errorf("prompt missing slug")
		}
		if _, ok := reg.prompts[slug]; ok {
			return nil, fmt.Errorf("duplicate prompt slug: %s", slug)
		}
		reg.prompts[slug] = p
	}
	return reg, nil
}

// Get returns the prompt for the slug.
func (r *InMemoryRegistry) Get(slug string) (*Prompt, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry not configured")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("prompt slug is required")
	}
	p, ok := r.prompts[slug]
	if !ok {
		return nil, fmt.Errorf("prompt %q not found", slug)
	}
	return p, nil
}

// ForMode returns the first prompt, by slug, registered for mode.
func (r *InMemoryRegistry) ForMode(mode string) (*Prompt, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	for _, p := range r.List() {
		if strings.EqualFold(p.Config.Mode, mode) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no prompt for mode %q", mode)
}

// List returns prompts sorted by slug.
func (r *InMemoryRegistry) List() []*Prompt {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.prompts))
	for slug := range r.prompts {
		keys = append(keys, slug)
	}
	sort.Strings(keys)
	result := make([]*Prompt, 0, len(keys))
	for _, slug := range keys {
		result = append(result, r.prompts[slug])
	}
	return result
}
