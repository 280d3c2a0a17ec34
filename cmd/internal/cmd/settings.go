package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	v1 "github.com/lethe222/lottie-preview-huanfu/internal/config/v1"
	lfctx "github.com/lethe222/lottie-preview-huanfu/internal/context"
	"github.com/lethe222/lottie-preview-huanfu/internal/fixer"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/enum"
	"github.com/lethe222/lottie-preview-huanfu/internal/normalisation"
)

// Settings are the resolved options of a normalising command.
type Settings struct {
	Fixer  fixer.Options
	Suffix string
	Report string
	Quiet  bool
}

// SettingsFromCommand resolves the normalisation settings of cmd.
// Built-in defaults are overridden by the configuration in the command context,
// which in turn is overridden by flags set on the command line.
func SettingsFromCommand(cmd *cobra.Command) (*Settings, error) {
	flags := cmd.Flags()

	overrides, err := configFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg := v1.Merge(lfctx.FromContext(cmd.Context()).Configuration(), overrides)

	opts, err := cfg.NormaliserOptions()
	if err != nil {
		return nil, err
	}

	settings := &Settings{
		Fixer: fixer.Options{
			Normaliser: normalisation.New(opts...),
			Stdin:      cmd.InOrStdin(),
			Stdout:     cmd.OutOrStdout(),
		},
		Suffix: cfg.Suffix,
	}
	if cfg.Indent != nil {
		settings.Fixer.Indent = *cfg.Indent
	}
	if cfg.Canonical != nil {
		settings.Fixer.Canonical = *cfg.Canonical
	}
	if settings.Suffix == "" {
		settings.Suffix = fixer.DefaultSuffix
	}
	if settings.Report, err = enum.Get(flags, ReportFlag); err != nil {
		return nil, fmt.Errorf("getting report flag failed: %w", err)
	}
	if settings.Quiet, err = flags.GetBool(QuietFlag); err != nil {
		return nil, fmt.Errorf("getting quiet flag failed: %w", err)
	}
	return settings, nil
}

// configFromFlags collects the flags changed on the command line into a
// configuration that is merged on top of the loaded one.
func configFromFlags(cmd *cobra.Command) (*v1.Config, error) {
	flags := cmd.Flags()
	cfg := &v1.Config{}

	if flags.Changed(TargetKeyFlag) {
		keys, err := flags.GetStringSlice(TargetKeyFlag)
		if err != nil {
			return nil, fmt.Errorf("getting target key flag failed: %w", err)
		}
		cfg.TargetKeys = keys
	}
	if flags.Changed(PolicyFlag) {
		policy, err := enum.Get(flags, PolicyFlag)
		if err != nil {
			return nil, fmt.Errorf("getting policy flag failed: %w", err)
		}
		cfg.Policy = policy
	}
	if flags.Changed(ReplacementFlag) {
		replacement, err := flags.GetString(ReplacementFlag)
		if err != nil {
			return nil, fmt.Errorf("getting replacement flag failed: %w", err)
		}
		cfg.Replacement = json.RawMessage(replacement)
		switch {
		case !flags.Changed(PolicyFlag):
			cfg.Policy = normalisation.PolicyReplace
		case cfg.Policy != normalisation.PolicyReplace:
			return nil, fmt.Errorf("--%s requires --%s %s, got %q", ReplacementFlag, PolicyFlag, normalisation.PolicyReplace, cfg.Policy)
		}
	}
	if flags.Changed(IndentFlag) {
		indent, err := flags.GetString(IndentFlag)
		if err != nil {
			return nil, fmt.Errorf("getting indent flag failed: %w", err)
		}
		cfg.Indent = &indent
	}
	if flags.Changed(CanonicalFlag) {
		canonical, err := flags.GetBool(CanonicalFlag)
		if err != nil {
			return nil, fmt.Errorf("getting canonical flag failed: %w", err)
		}
		cfg.Canonical = &canonical
	}
	if flags.Changed(SuffixFlag) {
		suffix, err := flags.GetString(SuffixFlag)
		if err != nil {
			return nil, fmt.Errorf("getting suffix flag failed: %w", err)
		}
		cfg.Suffix = suffix
	}
	return cfg, nil
}
