package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lethe222/lottie-preview-huanfu/cmd/batch"
	"github.com/lethe222/lottie-preview-huanfu/cmd/configuration"
	"github.com/lethe222/lottie-preview-huanfu/cmd/normalise"
	"github.com/lethe222/lottie-preview-huanfu/cmd/setup/hooks"
	"github.com/lethe222/lottie-preview-huanfu/cmd/version"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/log"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	err := New().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lottiefix [sub-command]",
		Short: "Repair Lottie animation files that crash players",
		Long: `lottiefix removes keyframe fields that were written as null by
  compression tools (by default the spatial tangents "to" and "ti") from
  Lottie JSON animation files, so that iOS and Android players can load them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: hooks.PreRunE,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	configuration.RegisterConfigFlag(cmd)
	log.RegisterLoggingFlags(cmd.PersistentFlags())
	cmd.AddCommand(normalise.New())
	cmd.AddCommand(batch.New())
	cmd.AddCommand(version.New())
	return cmd
}
