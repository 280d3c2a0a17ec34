package hooks

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lethe222/lottie-preview-huanfu/cmd/configuration"
	v1 "github.com/lethe222/lottie-preview-huanfu/internal/config/v1"
	lfctx "github.com/lethe222/lottie-preview-huanfu/internal/context"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/log"
	"github.com/lethe222/lottie-preview-huanfu/internal/notify"
)

// Option is the single interface all options implement.
type Option interface {
	Apply(b *Builder) error
}

// optionFunc lets simple functions satisfy Option.
type optionFunc func(*Builder) error

func (f optionFunc) Apply(b *Builder) error { return f(b) }

// Builder accumulates the state that is stored in the command context.
type Builder struct {
	cmd *cobra.Command

	configs []*v1.Config
	toast   notify.Toast
	noToast bool
}

func newBuilder(cmd *cobra.Command) *Builder {
	return &Builder{cmd: cmd}
}

// WithConfiguration merges cfg on top of the configuration files.
func WithConfiguration(cfg *v1.Config) Option {
	return optionFunc(func(b *Builder) error {
		b.configs = append(b.configs, cfg)
		return nil
	})
}

// WithToast replaces the default console toast. A nil toast disables messages.
func WithToast(toast notify.Toast) Option {
	return optionFunc(func(b *Builder) error {
		b.toast = toast
		b.noToast = toast == nil
		return nil
	})
}

// PreRunE sets up the command with defaults (no extra options).
func PreRunE(cmd *cobra.Command, args []string) error {
	return PreRunEWithOptions(cmd, args)
}

// PreRunEWithOptions configures logging, loads the configuration files and
// applies opts on top.
func PreRunEWithOptions(cmd *cobra.Command, args []string, opts ...Option) error {
	// inherit IO from parent if exists
	if parent := cmd.Parent(); parent != nil {
		cmd.SetOut(parent.OutOrStdout())
		cmd.SetErr(parent.ErrOrStderr())
	}

	logger, err := log.GetBaseLogger(cmd, args)
	if err != nil {
		return fmt.Errorf("could not retrieve logger: %w", err)
	}
	slog.SetDefault(logger)

	cfg, err := configuration.GetConfigForCommand(cmd)
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}

	b := newBuilder(cmd)
	b.configs = append(b.configs, cfg)
	for _, opt := range opts {
		if err := opt.Apply(b); err != nil {
			return fmt.Errorf("apply option: %w", err)
		}
	}

	toast := b.toast
	if toast == nil && !b.noToast {
		toast = notify.NewConsole(cmd.ErrOrStderr(), true)
	}

	ctx := lfctx.WithConfiguration(cmd.Context(), v1.Merge(b.configs...))
	ctx = lfctx.WithToast(ctx, toast)
	cmd.SetContext(ctx)
	lfctx.Register(cmd)

	slog.DebugContext(cmd.Context(), "command prepared", slog.String("command", cmd.CommandPath()))
	return nil
}
