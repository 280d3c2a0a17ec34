package normalisation

import (
	"maps"
	"slices"

	"github.com/lethe222/lottie-preview-huanfu/internal/jsontree"
)

// DefaultTargetKeys are the keyframe tangent fields that compression tools
// tend to null out.
var DefaultTargetKeys = []string{"to", "ti"}

// Options configure a Normaliser.
type Options struct {
	TargetKeys []string
	Policy     Policy
}

// Option is a function that configures Options.
type Option func(*Options)

// WithTargetKeys sets the field names to look for. An empty list disables
// all rewrites.
func WithTargetKeys(keys ...string) Option {
	return func(o *Options) {
		o.TargetKeys = slices.Clone(keys)
	}
}

// WithPolicy sets the policy applied to null target fields.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		o.Policy = p
	}
}

// Stats counts the fields a normalisation touched, keyed by field name.
type Stats struct {
	Removed  map[string]int `json:"removed,omitempty"`
	Replaced map[string]int `json:"replaced,omitempty"`
}

// RemovedTotal is the number of dropped fields.
func (s Stats) RemovedTotal() int {
	return sum(s.Removed)
}

// ReplacedTotal is the number of fields whose null was replaced.
func (s Stats) ReplacedTotal() int {
	return sum(s.Replaced)
}

// Merge adds the counts of other to s.
func (s *Stats) Merge(other Stats) {
	for k, v := range other.Removed {
		s.count(&s.Removed, k, v)
	}
	for k, v := range other.Replaced {
		s.count(&s.Replaced, k, v)
	}
}

func (s *Stats) count(target *map[string]int, key string, n int) {
	if *target == nil {
		*target = map[string]int{}
	}
	(*target)[key] += n
}

func sum(counts map[string]int) int {
	total := 0
	for _, v := range counts {
		total += v
	}
	return total
}

// Normaliser rewrites null target fields in JSON trees. It is immutable after New.
type Normaliser struct {
	keys   map[string]struct{}
	policy Policy
}

// New creates a Normaliser. Without options it drops null "to" and "ti" fields.
func New(opts ...Option) *Normaliser {
	options := Options{
		TargetKeys: DefaultTargetKeys,
		Policy:     Delete{},
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Policy == nil {
		options.Policy = Delete{}
	}
	keys := make(map[string]struct{}, len(options.TargetKeys))
	for _, k := range options.TargetKeys {
		keys[k] = struct{}{}
	}
	return &Normaliser{keys: keys, policy: options.Policy}
}

// TargetKeys returns the configured field names, sorted.
func (n *Normaliser) TargetKeys() []string {
	return slices.Sorted(maps.Keys(n.keys))
}

// Policy returns the configured policy.
func (n *Normaliser) Policy() Policy {
	return n.policy
}

// Normalise returns a normalised copy of v.
func (n *Normaliser) Normalise(v any) any {
	return n.normalise(v, nil)
}

// NormaliseWithStats returns a normalised copy of v and counts what was changed.
func (n *Normaliser) NormaliseWithStats(v any) (any, Stats) {
	var stats Stats
	return n.normalise(v, &stats), stats
}

func (n *Normaliser) normalise(v any, stats *Stats) any {
	switch typed := v.(type) {
	case *jsontree.Object:
		if typed == nil {
			return v
		}
		return n.normaliseObject(typed, stats)
	case []any:
		if typed == nil {
			return v
		}
		result := make([]any, len(typed))
		for i, elem := range typed {
			result[i] = n.normalise(elem, stats)
		}
		return result
	default:
		return v
	}
}

func (n *Normaliser) normaliseObject(obj *jsontree.Object, stats *Stats) *jsontree.Object {
	result := jsontree.NewObject()
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil && n.isTarget(pair.Key) {
			replacement, keep := n.policy.Resolve(pair.Key)
			if !keep {
				if stats != nil {
					stats.count(&stats.Removed, pair.Key, 1)
				}
				continue
			}
			if stats != nil {
				stats.count(&stats.Replaced, pair.Key, 1)
			}
			result.Set(pair.Key, replacement)
			continue
		}
		result.Set(pair.Key, n.normalise(pair.Value, stats))
	}
	return result
}

func (n *Normaliser) isTarget(key string) bool {
	_, ok := n.keys[key]
	return ok
}

// Normalise returns a normalised copy of v using a Normaliser built from opts.
func Normalise(v any, opts ...Option) any {
	return New(opts...).Normalise(v)
}
