package configuration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	v1 "github.com/lethe222/lottie-preview-huanfu/internal/config/v1"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/file"
)

// Configuration file and directory constants
const (
	ConfigDirectoryName   = "lottiefix"
	ConfigFileName        = ConfigDirectoryName + "/config.yaml"
	NestedConfigFileName  = ".lottiefix.yaml"
	ConfigEnvironmentKey  = "LOTTIEFIX_CONFIG"
	ConfigCommandArgument = "config"
)

func RegisterConfigFlag(cmd *cobra.Command) {
	file.Var(cmd.PersistentFlags(), ConfigCommandArgument, "", `supply configuration by a given configuration file.
By default (without specifying custom locations with this flag), the file will be read from all of the well known locations:
1. The XDG_CONFIG_HOME directory (if set), or the default XDG home ($HOME/.config), or the user's home directory
- $XDG_CONFIG_HOME/lottiefix/config.yaml
- $XDG_CONFIG_HOME/.lottiefix.yaml
- $HOME/.config/lottiefix/config.yaml
- $HOME/.config/.lottiefix.yaml
- $HOME/lottiefix/config.yaml
- $HOME/.lottiefix.yaml
2. The current working directory:
- $PWD/lottiefix/config.yaml
- $PWD/.lottiefix.yaml
3. The path specified in the LOTTIEFIX_CONFIG environment variable
Later files override values of earlier ones.
Using the option, this configuration file be used instead of the lookup above.`)
}

// GetConfigForCommand loads the configuration named by the config flag, or
// merges all configuration files found in the well known locations.
func GetConfigForCommand(cmd *cobra.Command) (*v1.Config, error) {
	flag := cmd.Flag(ConfigCommandArgument)
	if flag == nil || flag.Value.String() == "" {
		return GetConfig()
	}
	if path, ok := flag.Value.(*file.Flag); ok {
		if path.IsStdStream() {
			return nil, fmt.Errorf("configuration cannot be read from standard input")
		}
		if err := path.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration path: %w", err)
		}
	}
	return GetConfigFromPath(flag.Value.String())
}

// GetConfig loads and merges the configuration files found by GetConfigPaths and
// any additional paths. Files that fail to load are logged and skipped.
// Without any file an empty configuration is returned.
func GetConfig(additional ...string) (*v1.Config, error) {
	paths := append(GetConfigPaths(), additional...)
	cfgs := make([]*v1.Config, 0, len(paths))
	for _, path := range paths {
		cfg, err := GetConfigFromPath(path)
		if err != nil {
			slog.Error("config path was skipped due to an error loading it",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			continue
		}
		slog.Debug("config was loaded successfully", slog.String("path", path))
		cfgs = append(cfgs, cfg)
	}
	return v1.Merge(cfgs...), nil
}

// GetConfigFromPath reads and decodes the YAML configuration file from the specified path.
func GetConfigFromPath(path string) (_ *v1.Config, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	return v1.Decode(file)
}

// GetConfigPaths returns the existing configuration files, lowest precedence first:
// the user level file, then the working directory file, then the file named by
// LOTTIEFIX_CONFIG.
func GetConfigPaths() []string {
	var paths []string
	if path := getFromXDGOrHomeDir(); path != "" {
		paths = append(paths, path)
	}
	if path := getFromWorkingDir(); path != "" {
		paths = append(paths, path)
	}
	if path := getFromEnvironment(); path != "" {
		paths = append(paths, path)
	}
	return paths
}

func getFromEnvironment() string {
	if env := os.Getenv(ConfigEnvironmentKey); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
	}
	return ""
}

// getFromXDGOrHomeDir checks XDG_CONFIG_HOME first if set, followed by the
// default XDG home (~/.config) and finally the user's home directory.
func getFromXDGOrHomeDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		if path := checkConfigPaths(xdg); path != "" {
			return path
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if path := checkConfigPaths(filepath.Join(home, ".config")); path != "" {
			return path
		}
		if path := checkConfigPaths(home); path != "" {
			return path
		}
	}

	return ""
}

func getFromWorkingDir() string {
	if wd, err := os.Getwd(); err == nil {
		return checkConfigPaths(wd)
	}
	return ""
}

// checkConfigPaths returns the first config file variation present in base.
func checkConfigPaths(base string) string {
	for _, name := range []string{ConfigFileName, NestedConfigFileName} {
		path := filepath.Join(base, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
