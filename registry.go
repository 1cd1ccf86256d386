package collection

import (
	"fmt"
	"sync"
)

// QualifierFunc evaluates one qualifier against an input document and
// returns the textual result document. Implementations never return an
// error; failures are rendered into the result document itself.
type QualifierFunc func(doc []byte) []byte

// Qualifier pairs the manifest metadata of a named transformation with the
// function that evaluates it.
type Qualifier struct {
	Name        string
	InputTypes  []string
	Description string
	Fn          QualifierFunc
}

// Registry holds named qualifiers. Registration is explicit; nothing is
// added as an import side effect. Lookup is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Qualifier
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Qualifier)}
}

// Register adds a qualifier. The name must be non-empty and not already
// registered, and the function must be non-nil.
func (r *Registry) Register(q Qualifier) error {
	if q.Name == "" {
		return fmt.Errorf("qualifier with empty name")
	}
	if q.Fn == nil {
		return fmt.Errorf("qualifier %q has nil function", q.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[q.Name]; exists {
		return fmt.Errorf("qualifier %q already registered", q.Name)
	}
	r.entries[q.Name] = q
	r.order = append(r.order, q.Name)
	return nil
}

// MustRegister is Register that panics on error. Intended for wiring up
// built-in qualifiers at construction time.
func (r *Registry) MustRegister(q Qualifier) {
	if err := r.Register(q); err != nil {
		panic(err)
	}
}

// Lookup returns the qualifier registered under name.
func (r *Registry) Lookup(name string) (Qualifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.entries[name]
	return q, ok
}

// Qualifiers returns all registered qualifiers in registration order. The
// returned slice is a copy.
func (r *Registry) Qualifiers() []Qualifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Qualifier, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// NewDefaultRegistry returns a registry populated with every built-in
// collection qualifier, in the order they appear in the plugin manifest.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(Qualifier{
		Name:        "first",
		InputTypes:  []string{"List"},
		Description: "Returns the first element of a list",
		Fn:          qualFirst,
	})
	r.MustRegister(Qualifier{
		Name:        "last",
		InputTypes:  []string{"List"},
		Description: "Returns the last element of a list",
		Fn:          qualLast,
	})
	r.MustRegister(Qualifier{
		Name:        "size",
		InputTypes:  []string{"List", "String"},
		Description: "Returns the size/length",
		Fn:          qualSize,
	})
	r.MustRegister(Qualifier{
		Name:        "sort",
		InputTypes:  []string{"List"},
		Description: "Sorts a list in ascending order",
		Fn:          qualSort,
	})
	r.MustRegister(Qualifier{
		Name:        "unique",
		InputTypes:  []string{"List"},
		Description: "Returns unique elements from a list",
		Fn:          qualUnique,
	})
	r.MustRegister(Qualifier{
		Name:        "sum",
		InputTypes:  []string{"List"},
		Description: "Returns the sum of numeric list elements",
		Fn:          qualSum,
	})
	r.MustRegister(Qualifier{
		Name:        "avg",
		InputTypes:  []string{"List"},
		Description: "Returns the average of numeric list elements",
		Fn:          qualAvg,
	})
	r.MustRegister(Qualifier{
		Name:        "min",
		InputTypes:  []string{"List"},
		Description: "Returns the minimum element",
		Fn:          qualMin,
	})
	r.MustRegister(Qualifier{
		Name:        "max",
		InputTypes:  []string{"List"},
		Description: "Returns the maximum element",
		Fn:          qualMax,
	})
	return r
}

// DefaultRegistry backs Evaluate and PluginInfo.
var DefaultRegistry = NewDefaultRegistry()
