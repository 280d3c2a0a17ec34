// Package log builds the slog logger of lottiefix from its command line flags.
//
// Logs go to standard error unless asked otherwise. Standard output can only
// carry logs if the command does not write its document there.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lethe222/lottie-preview-huanfu/internal/flags/enum"
)

const (
	FormatFlagName = "logformat"
	FormatText     = "text"
	FormatJSON     = "json"

	LevelFlagName = "loglevel"
	LevelWarn     = "warn"
	LevelInfo     = "info"
	LevelDebug    = "debug"
	LevelError    = "error"

	OutputFlagName = "logoutput"
	OutputStderr   = "stderr"
	OutputStdout   = "stdout"
)

// DocumentStreamAnnotation marks a command taking "{input} [output]" document
// paths, where "-" stands for the standard streams and a missing output
// follows the input.
const DocumentStreamAnnotation = "lottiefix/document-stream"

// ErrStdoutReserved is returned if logs would be mixed into a document written
// to standard output.
var ErrStdoutReserved = errors.New("standard output is reserved for the document")

var levels = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// RegisterLoggingFlags registers --logformat, --loglevel and --logoutput.
func RegisterLoggingFlags(fs *pflag.FlagSet) {
	enum.Var(fs, FormatFlagName, []enum.Option{
		{Name: FormatText, Help: "key=value lines for reading in a terminal"},
		{Name: FormatJSON, Help: "one JSON object per line for log processors"},
	}, "format of log lines")
	enum.Var(fs, LevelFlagName, []enum.Option{
		{Name: LevelWarn, Help: "problems that did not stop processing, and errors"},
		{Name: LevelInfo, Help: "every document read and written"},
		{Name: LevelDebug, Help: "sizes, counts and configuration lookups"},
		{Name: LevelError, Help: "errors only"},
	}, "minimum level of log lines")
	enum.Var(fs, OutputFlagName, []enum.Option{
		{Name: OutputStderr, Help: "standard error"},
		{Name: OutputStdout, Help: "standard output, unless the document is written there"},
	}, "destination of log lines")
}

// DocumentOnStdout reports whether cmd writes its document to standard output
// when run with args.
func DocumentOnStdout(cmd *cobra.Command, args []string) bool {
	if _, ok := cmd.Annotations[DocumentStreamAnnotation]; !ok {
		return false
	}
	switch len(args) {
	case 1:
		return args[0] == "-"
	case 2:
		return args[1] == "-"
	default:
		return false
	}
}

// GetBaseLogger creates the logger configured by the flags of cmd for a run with args.
func GetBaseLogger(cmd *cobra.Command, args []string) (*slog.Logger, error) {
	flags := cmd.Flags()
	levelName, err := enum.Get(flags, LevelFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get the log level: %w", err)
	}
	format, err := enum.Get(flags, FormatFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get the log format: %w", err)
	}
	output, err := enum.Get(flags, OutputFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get the log output: %w", err)
	}

	var w io.Writer = cmd.ErrOrStderr()
	if output == OutputStdout {
		if DocumentOnStdout(cmd, args) {
			return nil, fmt.Errorf("%w, use --%s %s", ErrStdoutReserved, OutputFlagName, OutputStderr)
		}
		w = cmd.OutOrStdout()
	}

	opts := &slog.HandlerOptions{Level: levels[levelName]}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
