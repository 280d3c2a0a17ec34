package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"sigs.k8s.io/yaml"

	"github.com/lethe222/lottie-preview-huanfu/internal/jsontree"
	"github.com/lethe222/lottie-preview-huanfu/internal/normalisation"
)

// Config holds the normalisation settings loaded from a configuration file.
// Pointer fields distinguish "not set" from the zero value.
type Config struct {
	TargetKeys  []string        `json:"targetKeys,omitempty"`
	Policy      string          `json:"policy,omitempty"`
	Replacement json.RawMessage `json:"replacement,omitempty"`
	Indent      *string         `json:"indent,omitempty"`
	Canonical   *bool           `json:"canonical,omitempty"`
	Suffix      string          `json:"suffix,omitempty"`
}

// Decode reads a single configuration document from r.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration failed: %w", err)
	}
	return &cfg, nil
}

// Merge combines the configs in order. Fields set in a later config override
// the same fields of earlier ones. Nil configs are skipped.
func Merge(configs ...*Config) *Config {
	merged := new(Config)
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.TargetKeys != nil {
			merged.TargetKeys = slices.Clone(cfg.TargetKeys)
		}
		if cfg.Policy != "" {
			merged.Policy = cfg.Policy
		}
		if len(cfg.Replacement) > 0 {
			merged.Replacement = slices.Clone(cfg.Replacement)
		}
		if cfg.Indent != nil {
			indent := *cfg.Indent
			merged.Indent = &indent
		}
		if cfg.Canonical != nil {
			canonical := *cfg.Canonical
			merged.Canonical = &canonical
		}
		if cfg.Suffix != "" {
			merged.Suffix = cfg.Suffix
		}
	}
	return merged
}

// ReplacementValue parses the configured replacement, or returns nil if none is set.
func (c *Config) ReplacementValue() (any, error) {
	if c == nil || len(c.Replacement) == 0 {
		return nil, nil
	}
	v, err := jsontree.Parse(c.Replacement)
	if err != nil {
		return nil, fmt.Errorf("invalid replacement value: %w", err)
	}
	return v, nil
}

// NormaliserOptions converts the configuration into normaliser options.
// Unset fields produce no option, so the normaliser defaults apply.
func (c *Config) NormaliserOptions() ([]normalisation.Option, error) {
	if c == nil {
		return nil, nil
	}
	var opts []normalisation.Option
	if c.TargetKeys != nil {
		opts = append(opts, normalisation.WithTargetKeys(c.TargetKeys...))
	}
	name := c.Policy
	if name == "" && len(c.Replacement) > 0 {
		// a replacement on its own asks for the replace policy
		name = normalisation.PolicyReplace
	}
	if name != "" {
		replacement, err := c.ReplacementValue()
		if err != nil {
			return nil, err
		}
		policy, err := normalisation.LookupPolicy(name, replacement)
		if err != nil {
			return nil, err
		}
		opts = append(opts, normalisation.WithPolicy(policy))
	}
	return opts, nil
}
