package hooks

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/lethe222/lottie-preview-huanfu/cmd/configuration"
	v1 "github.com/lethe222/lottie-preview-huanfu/internal/config/v1"
	lfctx "github.com/lethe222/lottie-preview-huanfu/internal/context"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/log"
	"github.com/lethe222/lottie-preview-huanfu/internal/notify"
)

func newCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(configuration.ConfigEnvironmentKey, "")
	t.Chdir(t.TempDir())

	errOut := new(bytes.Buffer)
	cmd := &cobra.Command{Use: "test"}
	configuration.RegisterConfigFlag(cmd)
	log.RegisterLoggingFlags(cmd.PersistentFlags())
	cmd.SetErr(errOut)
	cmd.SetContext(context.Background())
	// merges the persistent flags into the local flag set like Execute does
	require.NoError(t, cmd.ParseFlags(nil))
	return cmd, errOut
}

func TestPreRunE(t *testing.T) {
	r := require.New(t)
	cmd, errOut := newCommand(t)

	r.NoError(PreRunE(cmd, nil))

	ctx := lfctx.FromContext(cmd.Context())
	r.NotNil(ctx)
	r.NotNil(ctx.Configuration())
	r.IsType(&notify.Console{}, ctx.Toast())

	notify.Show(ctx.Toast(), "done")
	r.Contains(errOut.String(), "done")
}

func TestPreRunEWithOptions(t *testing.T) {
	t.Run("configuration is merged on top", func(t *testing.T) {
		r := require.New(t)
		cmd, _ := newCommand(t)

		r.NoError(PreRunEWithOptions(cmd, nil,
			WithConfiguration(&v1.Config{Policy: "replace"}),
			WithConfiguration(&v1.Config{TargetKeys: []string{"nm"}}),
		))

		cfg := lfctx.FromContext(cmd.Context()).Configuration()
		r.Equal("replace", cfg.Policy)
		r.Equal([]string{"nm"}, cfg.TargetKeys)
	})

	t.Run("toast can be disabled", func(t *testing.T) {
		r := require.New(t)
		cmd, _ := newCommand(t)

		r.NoError(PreRunEWithOptions(cmd, nil, WithToast(nil)))
		r.Nil(lfctx.FromContext(cmd.Context()).Toast())
	})

	t.Run("custom toast", func(t *testing.T) {
		r := require.New(t)
		cmd, _ := newCommand(t)
		out := new(bytes.Buffer)
		toast := notify.NewConsole(out, false)

		r.NoError(PreRunEWithOptions(cmd, nil, WithToast(toast)))
		notify.Show(lfctx.FromContext(cmd.Context()).Toast(), "custom")
		r.Equal("custom\n", out.String())
	})

	t.Run("missing config file fails", func(t *testing.T) {
		cmd, _ := newCommand(t)
		require.NoError(t, cmd.PersistentFlags().Set(configuration.ConfigCommandArgument, "/does/not/exist.yaml"))
		require.Error(t, PreRunE(cmd, nil))
	})
}
