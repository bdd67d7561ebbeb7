package npc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownEnemyType is returned when an enemy key is not in the registry.
var ErrUnknownEnemyType = errors.New("unknown enemy type")

// DefaultEnemy is the key callers fall back to after ErrUnknownEnemyType.
const DefaultEnemy = "goblin"

var builtin = []Template{
	{ID: "goblin", Name: "Goblin", Description: "A small, wiry creature with yellow eyes and a rusty blade.", MaxHP: 7, AC: 15, AttackBonus: 4, DamageDice: "1d6+2"},
	{ID: "bandit", Name: "Bandit", Description: "A desperate highwayman in a patched leather coat.", MaxHP: 11, AC: 12, AttackBonus: 3, DamageDice: "1d6+1"},
	{ID: "skeleton", Name: "Skeleton", Description: "Yellowed bones held together by old, spiteful magic.", MaxHP: 13, AC: 13, AttackBonus: 4, DamageDice: "1d6+2"},
	{ID: "wolf", Name: "Wolf", Description: "A gaunt grey wolf, hackles raised and teeth bared.", MaxHP: 11, AC: 13, AttackBonus: 4, DamageDice: "2d4+2"},
	{ID: "orc", Name: "Orc", Description: "A hulking brute hefting a notched greataxe.", MaxHP: 15, AC: 13, AttackBonus: 5, DamageDice: "1d12+3"},
}

// Registry maps enemy keys to templates.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// DefaultRegistry returns a Registry holding the built-in enemy table.
//
// Postcondition: Keys() contains bandit, goblin, orc, skeleton and wolf.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for i := range builtin {
		tmpl := builtin[i]
		if err := r.Register(&tmpl); err != nil {
			panic("npc: invalid built-in template: " + err.Error())
		}
	}
	return r
}

// Register adds or replaces a template under its lower-cased ID.
//
// Postcondition: Returns an error if the template fails Validate.
func (r *Registry) Register(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	cp := *t
	cp.ID = strings.ToLower(cp.ID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[cp.ID] = &cp
	return nil
}

// Lookup returns a copy of the template registered under key (case-insensitive).
//
// Postcondition: Returns the template, or an error wrapping ErrUnknownEnemyType
// whose message lists the valid keys.
func (r *Registry) Lookup(key string) (Template, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	r.mu.RLock()
	t, ok := r.templates[k]
	r.mu.RUnlock()
	if !ok {
		return Template{}, fmt.Errorf("%w %q: valid types are %s", ErrUnknownEnemyType, key, strings.Join(r.Keys(), ", "))
	}
	return *t, nil
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every template sorted by key.
func (r *Registry) All() []Template {
	keys := r.Keys()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(keys))
	for _, k := range keys {
		if t, ok := r.templates[k]; ok {
			out = append(out, *t)
		}
	}
	return out
}
