package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	lfcmd "github.com/lethe222/lottie-preview-huanfu/cmd/internal/cmd"
	lfctx "github.com/lethe222/lottie-preview-huanfu/internal/context"
	"github.com/lethe222/lottie-preview-huanfu/internal/fixer"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/file"
	"github.com/lethe222/lottie-preview-huanfu/internal/normalisation"
	"github.com/lethe222/lottie-preview-huanfu/internal/notify"
	"github.com/lethe222/lottie-preview-huanfu/internal/render"
)

const (
	FlagConcurrencyLimit = "concurrency-limit"
	FlagOutputDirectory  = "output-dir"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch {input-path}...",
		Short: "Remove null keyframe fields from many Lottie files at once",
		Args:  cobra.MatchAll(cobra.MinimumNArgs(1), InputPathsExist),
		Long: fmt.Sprintf(`Normalise several Lottie JSON files concurrently.

Every input is processed like the normalise command does it. The result of
input.json is written to input%[1]s.json next to the input, or into --%[2]s
if set. Up to --%[3]s files are processed at the same time; the first failure
stops the remaining work.`, fixer.DefaultSuffix, FlagOutputDirectory, FlagConcurrencyLimit),
		Example: strings.TrimSpace(`
# Fix all animations of a directory into a separate folder
lottiefix batch assets/*.json --output-dir assets/fixed --suffix ""

# Replace tangents instead of removing them
lottiefix batch a.json b.json --policy replace
`),
		RunE:              NormaliseFiles,
		DisableAutoGenTag: true,
	}

	lfcmd.RegisterNormalisationFlags(cmd.Flags())
	cmd.Flags().String(lfcmd.SuffixFlag, fixer.DefaultSuffix, "suffix added to the input file name to name the output file")
	cmd.Flags().String(FlagOutputDirectory, "", "directory to write the output files to instead of next to the inputs")
	cmd.Flags().Int(FlagConcurrencyLimit, 4, "maximum amount of files processed in parallel")

	return cmd
}

func InputPathsExist(_ *cobra.Command, args []string) error {
	seen := make(map[string]struct{}, len(args))
	for _, arg := range args {
		input, err := file.Parse(arg)
		if err != nil {
			return err
		}
		if input.IsStdStream() {
			return fmt.Errorf("standard input is not supported by batch, use normalise instead")
		}
		if err := input.Validate(); err != nil {
			return fmt.Errorf("invalid input path: %w", err)
		}
		if _, ok := seen[arg]; ok {
			return fmt.Errorf("input path %q given more than once", arg)
		}
		seen[arg] = struct{}{}
	}
	return nil
}

func NormaliseFiles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	settings, err := lfcmd.SettingsFromCommand(cmd)
	if err != nil {
		return err
	}

	// an explicitly empty suffix is allowed here when writing into another directory
	if cmd.Flags().Changed(lfcmd.SuffixFlag) {
		if settings.Suffix, err = cmd.Flags().GetString(lfcmd.SuffixFlag); err != nil {
			return fmt.Errorf("getting suffix flag failed: %w", err)
		}
	}

	concurrencyLimit, err := cmd.Flags().GetInt(FlagConcurrencyLimit)
	if err != nil {
		return fmt.Errorf("getting concurrency limit flag failed: %w", err)
	}
	if concurrencyLimit < 1 {
		return fmt.Errorf("concurrency limit must be at least 1, got %d", concurrencyLimit)
	}

	outputDir, err := cmd.Flags().GetString(FlagOutputDirectory)
	if err != nil {
		return fmt.Errorf("getting output directory flag failed: %w", err)
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %q failed: %w", outputDir, err)
		}
	}

	outputs, err := OutputPaths(args, outputDir, settings.Suffix)
	if err != nil {
		return err
	}

	reports := make([]*fixer.Report, len(args))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrencyLimit)
	for i, input := range args {
		eg.Go(func() error {
			report, err := fixer.File(egctx, input, outputs[i], settings.Fixer)
			if err != nil {
				return fmt.Errorf("normalising %q failed: %w", input, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	slog.DebugContext(ctx, "batch finished", slog.Int("files", len(reports)))

	if settings.Quiet {
		return nil
	}
	if err := render.Reports(cmd.OutOrStdout(), settings.Report, reports); err != nil {
		return err
	}

	var total normalisation.Stats
	var saved int64
	for _, r := range reports {
		total.Merge(r.Stats)
		saved += r.Reduction()
	}
	notify.Show(lfctx.FromContext(ctx).Toast(), fmt.Sprintf("normalised %d file(s): %d field(s) removed, %d replaced, %s saved",
		len(reports), total.RemovedTotal(), total.ReplacedTotal(), render.KiB(saved)))
	return nil
}

// OutputPaths derives the output path of every input. It fails if two inputs
// would be written to the same file or an output would overwrite another input.
func OutputPaths(inputs []string, outputDir, suffix string) ([]string, error) {
	outputs := make([]string, len(inputs))
	owners := make(map[string]string, len(inputs))
	for _, input := range inputs {
		owners[filepath.Clean(input)] = input
	}
	for i, input := range inputs {
		output := input
		if outputDir != "" {
			output = filepath.Join(outputDir, filepath.Base(input))
		}
		ext := filepath.Ext(output)
		output = strings.TrimSuffix(output, ext) + suffix + ext

		key := filepath.Clean(output)
		if owner, ok := owners[key]; ok {
			if owner == input {
				return nil, fmt.Errorf("output of %q would overwrite the input, set --%s or --%s", input, lfcmd.SuffixFlag, FlagOutputDirectory)
			}
			return nil, fmt.Errorf("output of %q would be written to %q, which is already used by %q", input, output, owner)
		}
		owners[key] = input
		outputs[i] = output
	}
	return outputs, nil
}
