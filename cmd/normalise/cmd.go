package normalise

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	lfcmd "github.com/lethe222/lottie-preview-huanfu/cmd/internal/cmd"
	lfctx "github.com/lethe222/lottie-preview-huanfu/internal/context"
	"github.com/lethe222/lottie-preview-huanfu/internal/fixer"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/file"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/log"
	"github.com/lethe222/lottie-preview-huanfu/internal/notify"
	"github.com/lethe222/lottie-preview-huanfu/internal/render"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "normalise {input-path} [output-path]",
		Aliases: []string{"normalize", "fix"},
		Short:   "Remove null keyframe fields from a Lottie file",
		Args:    cobra.MatchAll(cobra.RangeArgs(1, 2), InputPathAsFirstPositional),
		Long: fmt.Sprintf(`Remove null keyframe fields from a Lottie JSON file.

Some compression tools write the spatial tangents of position keyframes
("to" and "ti") as null instead of [0,0,0], which crashes the iOS and Android
players. This command walks the whole document and handles every object field
named by --%[1]s whose value is null:

- %[2]s:  the field is removed (the Lottie format allows it to be absent)
- %[3]s: the field is set to --%[4]s (default %[5]s)

All other values, null array elements included, are written unchanged and
objects keep their key order.

If no output path is given, the result is written next to the input with the
suffix %[6]q added to the file name. Use "-" to read from standard input or
write to standard output. Existing files are replaced atomically.`,
			lfcmd.TargetKeyFlag, "delete", "replace", lfcmd.ReplacementFlag, lfcmd.ReplacementDefault, fixer.DefaultSuffix),
		Example: strings.TrimSpace(`
# Fix a file, writing anim-fixed.json
lottiefix normalise anim.json

# Fix a file in place
lottiefix normalise anim.json anim.json

# Replace null tangents with the zero vector and pretty print
lottiefix normalise anim.json out.json --policy replace --indent "  "

# Use in a pipe
cat anim.json | lottiefix normalise - - --quiet > fixed.json
`),
		RunE:              NormaliseFile,
		Annotations:       map[string]string{log.DocumentStreamAnnotation: ""},
		DisableAutoGenTag: true,
	}

	lfcmd.RegisterNormalisationFlags(cmd.Flags())
	cmd.Flags().String(lfcmd.SuffixFlag, fixer.DefaultSuffix, "suffix added to the input file name if no output path is given")

	return cmd
}

func InputPathAsFirstPositional(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing input path as first positional argument")
	}
	input, err := file.Parse(args[0])
	if err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	return nil
}

func NormaliseFile(cmd *cobra.Command, args []string) error {
	settings, err := lfcmd.SettingsFromCommand(cmd)
	if err != nil {
		return err
	}

	input := args[0]
	var output string
	switch {
	case len(args) > 1:
		output = args[1]
	case input == fixer.StdStream:
		output = fixer.StdStream
	default:
		output = fixer.DefaultOutputPath(input, settings.Suffix)
	}

	report, err := fixer.File(cmd.Context(), input, output, settings.Fixer)
	if err != nil {
		return fmt.Errorf("normalising %q failed: %w", input, err)
	}

	if settings.Quiet {
		return nil
	}
	// a document on stdout must not be mixed with the summary
	if output != fixer.StdStream {
		if err := render.Reports(cmd.OutOrStdout(), settings.Report, []*fixer.Report{report}); err != nil {
			return err
		}
	}
	notify.Show(lfctx.FromContext(cmd.Context()).Toast(), completionMessage(report))
	return nil
}

func completionMessage(r *fixer.Report) string {
	return fmt.Sprintf("normalised %s: %d field(s) removed, %d replaced, %s saved",
		r.Input, r.Stats.RemovedTotal(), r.Stats.ReplacedTotal(), render.KiB(r.Reduction()))
}
