package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type LegacyVersionInfo struct {
	Major      string `json:"major"`
	Minor      string `json:"minor"`
	Patch      string `json:"patch"`
	PreRelease string `json:"prerelease,omitempty"`
	Meta       string `json:"meta,omitempty"`
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit,omitempty"`
	BuildDate  string `json:"buildDate,omitempty"`
	GoVersion  string `json:"goVersion"`
	Compiler   string `json:"compiler"`
	Platform   string `json:"platform"`
}

// GetLegacyFormat splits the main module version of bi into its semantic parts.
// A version that is not semantic is reported as is with 0.0.0 as parts.
func GetLegacyFormat(bi *debug.BuildInfo) (LegacyVersionInfo, error) {
	base := LegacyVersionInfo{
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	v, err := semver.NewVersion(bi.Main.Version)
	if err != nil {
		base.GitVersion = bi.Main.Version
		base.Major, base.Minor, base.Patch = "0", "0", "0"
		return base, nil
	}

	base.GitVersion = v.String()
	base.Meta = strings.TrimPrefix(v.Metadata(), "+")
	if pre := v.Prerelease(); pre != "" {
		base.PreRelease = pre
		// pseudo versions look like v0.0.0-20250101120000-abcdef123456
		base.BuildDate, base.GitCommit, _ = strings.Cut(pre, "-")
	}
	base.Major = strconv.FormatUint(v.Major(), 10)
	base.Minor = strconv.FormatUint(v.Minor(), 10)
	base.Patch = strconv.FormatUint(v.Patch(), 10)
	return base, nil
}
