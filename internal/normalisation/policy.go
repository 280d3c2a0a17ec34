package normalisation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lethe222/lottie-preview-huanfu/internal/jsontree"
)

// Policy decides what happens to a target field that holds null.
type Policy interface {
	// Resolve returns the value to store under key and true, or false if the
	// field is to be dropped from its object.
	Resolve(key string) (any, bool)
}

// Delete drops the field.
type Delete struct{}

func (Delete) Resolve(string) (any, bool) { return nil, false }

func (Delete) String() string { return PolicyDelete }

// Replace stores a deep copy of Value instead of null.
type Replace struct {
	Value any
}

func (r Replace) Resolve(string) (any, bool) {
	return jsontree.DeepCopy(r.Value), true
}

func (r Replace) String() string {
	data, err := jsontree.Marshal(r.Value, "")
	if err != nil {
		return PolicyReplace
	}
	return fmt.Sprintf("%s(%s)", PolicyReplace, data)
}

// ZeroVector returns the three dimensional zero vector used for spatial tangents.
func ZeroVector() []any {
	return []any{json.Number("0"), json.Number("0"), json.Number("0")}
}

// Policy names as accepted by the registry.
const (
	PolicyDelete  = "delete"
	PolicyReplace = "replace"
)

var ErrUnknownPolicy = errors.New("unknown normalisation policy")

// PolicyFactory creates a policy. The replacement is only used by policies that
// store a value and is nil if none was configured.
type PolicyFactory func(replacement any) Policy

// PolicyRegistry maps policy names to factories.
type PolicyRegistry struct {
	sync.RWMutex
	factories map[string]PolicyFactory
}

func (r *PolicyRegistry) Register(name string, factory PolicyFactory) {
	r.Lock()
	defer r.Unlock()
	r.factories[name] = factory
}

func (r *PolicyRegistry) Get(name string) PolicyFactory {
	r.RLock()
	defer r.RUnlock()
	return r.factories[name]
}

func (r *PolicyRegistry) Names() []string {
	r.RLock()
	defer r.RUnlock()
	names := []string{}
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup creates the named policy.
func (r *PolicyRegistry) Lookup(name string, replacement any) (Policy, error) {
	factory := r.Get(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s (must be one of %v)", ErrUnknownPolicy, name, r.Names())
	}
	return factory(replacement), nil
}

// Policies holds the built-in policies.
var Policies = PolicyRegistry{factories: map[string]PolicyFactory{
	PolicyDelete: func(any) Policy { return Delete{} },
	PolicyReplace: func(replacement any) Policy {
		if replacement == nil {
			return Replace{Value: ZeroVector()}
		}
		return Replace{Value: replacement}
	},
}}

// LookupPolicy creates the named policy from the built-in registry.
func LookupPolicy(name string, replacement any) (Policy, error) {
	return Policies.Lookup(name, replacement)
}
