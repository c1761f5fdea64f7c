package logic

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrSportExists      = errors.New("sport already registered")
	ErrUnsupportedSport = errors.New("sport is not supported")
)

// SportRules holds the per-sport settings the predictor needs.
type SportRules struct {
	Name        string
	DisplayName string
	AllowsDraw  bool
}

// UnsupportedSportError reports a sport missing from the registry along with
// the sports that are available, in registration order.
type UnsupportedSportError struct {
	Sport     string
	Supported []string
}

func (e *UnsupportedSportError) Error() string {
	quoted := make([]string, len(e.Supported))
	for i, s := range e.Supported {
		quoted[i] = "'" + s + "'"
	}
	return fmt.Sprintf("Sport '%s' is not supported. Supported sports are: [%s]",
		e.Sport, strings.Join(quoted, ", "))
}

func (e *UnsupportedSportError) Is(target error) bool {
	return target == ErrUnsupportedSport
}

// SportRegistry manages the sports a prediction can be made for.
type SportRegistry struct {
	mu     sync.RWMutex
	sports map[string]SportRules
	order  []string
}

func NewSportRegistry() *SportRegistry {
	return &SportRegistry{
		sports: make(map[string]SportRules),
	}
}

// DefaultSportRegistry returns football, basketball and rugby. Only football allows draws.
func DefaultSportRegistry() *SportRegistry {
	r := NewSportRegistry()
	for _, s := range []SportRules{
		{Name: "football", DisplayName: "Football", AllowsDraw: true},
		{Name: "basketball", DisplayName: "Basketball"},
		{Name: "rugby", DisplayName: "Rugby"},
	} {
		// Names are distinct literals.
		_ = r.Register(s)
	}
	return r
}

// Register adds a sport. Names are stored lower-cased.
func (r *SportRegistry) Register(rules SportRules) error {
	key := normalizeSport(rules.Name)
	if strings.TrimSpace(key) == "" {
		return errors.New("sport name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sports[key]; exists {
		return fmt.Errorf("%w: %s", ErrSportExists, key)
	}

	rules.Name = key
	r.sports[key] = rules
	r.order = append(r.order, key)
	return nil
}

// Lookup finds a sport by name, ignoring case.
func (r *SportRegistry) Lookup(name string) (SportRules, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules, ok := r.sports[normalizeSport(name)]
	return rules, ok
}

// Resolve is Lookup with an *UnsupportedSportError for unknown sports.
func (r *SportRegistry) Resolve(name string) (SportRules, error) {
	if rules, ok := r.Lookup(name); ok {
		return rules, nil
	}
	return SportRules{}, &UnsupportedSportError{
		Sport:     normalizeSport(name),
		Supported: r.Names(),
	}
}

// Names returns sport names in registration order.
func (r *SportRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns every registered sport in registration order.
func (r *SportRegistry) All() []SportRules {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]SportRules, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.sports[name])
	}
	return all
}

func (r *SportRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sports)
}

func normalizeSport(name string) string {
	return strings.ToLower(name)
}
