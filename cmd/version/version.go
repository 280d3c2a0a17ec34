package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const (
	FlagFormat                = "format"
	FlagFormatShortHand       = "f"
	FlagFormatLegacyJSON      = "legacyjson"
	FlagFormatGoBuildInfo     = "gobuildinfo"
	FlagFormatGoBuildInfoJSON = "gobuildinfojson"
)

// BuildVersion is an external variable that can be set at build time to override the version.
// It is set to "n/a" by default, indicating that no version has been specified.
// The variable can be adjusted at build time with
//
//	-ldflags "-X github.com/lethe222/lottie-preview-huanfu/cmd/version.BuildVersion=1.2.3"
var BuildVersion = "n/a"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Retrieve the build version of lottiefix",
		Long: fmt.Sprintf(`The version command retrieves the build version of lottiefix.

The default format is %[2]q, which splits a semantic version into its parts.
"buildDate" and "gitCommit" are derived from the pre-release part of the version,
following the go module pseudo version layout.

When the format is set to %[3]q, it outputs the Go build information as a string.
When the format is set to %[4]q, it outputs the same information in JSON format.

Select the format with the %[1]s flag.`, FlagFormat, FlagFormatLegacyJSON, FlagFormatGoBuildInfo, FlagFormatGoBuildInfoJSON),
		Example: fmt.Sprintf(`lottiefix version --format %s`, FlagFormatGoBuildInfo),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString(FlagFormat)
			if err != nil {
				return err
			}
			ver, ok := readBuildInfo()
			if !ok {
				return fmt.Errorf("no build info available")
			}
			if BuildVersion != "n/a" {
				ver.Main.Version = BuildVersion
			}
			switch format {
			case FlagFormatLegacyJSON:
				ver, err := GetLegacyFormat(ver)
				if err != nil {
					return err
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(ver)
			case FlagFormatGoBuildInfo:
				_, err = io.Copy(cmd.OutOrStdout(), strings.NewReader(ver.String()))
				return err
			case FlagFormatGoBuildInfoJSON:
				return json.NewEncoder(cmd.OutOrStdout()).Encode(ver)
			default:
				return fmt.Errorf("unknown version format %q", format)
			}
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	cmd.Flags().StringP(FlagFormat, FlagFormatShortHand, FlagFormatLegacyJSON,
		fmt.Sprintf("format of the version output (one of %s, %s, %s)", FlagFormatLegacyJSON, FlagFormatGoBuildInfo, FlagFormatGoBuildInfoJSON))
	return cmd
}
