// Package test provides utilities for testing the lottiefix commands.
// It includes helpers for executing commands and parsing JSON log output.
package test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/lethe222/lottie-preview-huanfu/cmd"
	"github.com/lethe222/lottie-preview-huanfu/cmd/configuration"
	"github.com/lethe222/lottie-preview-huanfu/internal/flags/log"
)

// Options holds configuration for executing lottiefix commands in tests
type Options struct {
	args   []string  // Command line arguments to pass to the CLI
	in     io.Reader // Standard input of the command
	out    io.Writer // Output writer to capture command output
	errOut io.Writer // Output writer to capture messages and logs
	format string    // Log format to use (e.g., json, text)
}

// Option is a function that configures Options
type Option func(*Options)

// WithArgs sets the command line arguments for the lottiefix command
func WithArgs(args ...string) Option {
	return func(o *Options) {
		o.args = args
	}
}

// WithInput sets the reader used as standard input
func WithInput(in io.Reader) Option {
	return func(o *Options) {
		o.in = in
	}
}

// WithOutput sets the output writer to capture command output
func WithOutput(out io.Writer) Option {
	return func(o *Options) {
		o.out = out
	}
}

// WithErrorOutput sets the writer that receives logs and completion messages
func WithErrorOutput(out io.Writer) Option {
	return func(o *Options) {
		o.errOut = out
	}
}

// WithLogFormat sets the log format for the lottiefix command
func WithLogFormat(format string) Option {
	return func(o *Options) {
		o.format = format
	}
}

// Isolate points every well known configuration location of lottiefix to empty
// temporary directories, so that tests do not pick up the configuration of the host.
func Isolate(tb testing.TB) {
	tb.Helper()
	tb.Setenv("HOME", tb.TempDir())
	tb.Setenv("XDG_CONFIG_HOME", tb.TempDir())
	tb.Setenv(configuration.ConfigEnvironmentKey, "")
	tb.Chdir(tb.TempDir())
}

// LottieFix executes a lottiefix command with the given options and returns the command and any error.
// Output that is not captured is discarded so the test log stays readable.
func LottieFix(tb testing.TB, opts ...Option) (*cobra.Command, error) {
	tb.Helper()

	opt := Options{}
	for _, o := range opts {
		o(&opt)
	}
	instance := cmd.New()
	if len(opt.args) == 0 {
		opt.args = []string{"help"}
	}

	if opt.in != nil {
		instance.SetIn(opt.in)
	}
	if opt.out == nil {
		opt.out = io.Discard
	}
	instance.SetOut(opt.out)
	if opt.errOut == nil {
		opt.errOut = io.Discard
	}
	instance.SetErr(opt.errOut)

	// by default lets test with the json format so its actually easier to read and test against
	if opt.format == "" {
		opt.format = log.FormatJSON
	}
	f := instance.PersistentFlags().Lookup(log.FormatFlagName)
	if err := f.Value.Set(opt.format); err != nil {
		return nil, fmt.Errorf("failed to set format: %w", err)
	}

	instance.SetArgs(opt.args)
	return instance.ExecuteContextC(tb.Context())
}

// JSONLogReader provides functionality to read and parse JSON-formatted log output
// It maintains both the main log buffer and a buffer for discarded (non-JSON) entries
type JSONLogReader struct {
	*bytes.Buffer
	Discarded *bytes.Buffer
}

// NewJSONLogReader creates a new JSONLogReader with initialized buffers
func NewJSONLogReader() *JSONLogReader {
	return &JSONLogReader{
		Buffer:    bytes.NewBuffer(make([]byte, 0, 1024)),
		Discarded: bytes.NewBuffer(make([]byte, 0, 1024)),
	}
}

// JSONLogEntry represents a single log entry in JSON format
type JSONLogEntry struct {
	Time  string `json:"time"`
	Level string `json:"level"`
	Msg   string `json:"msg"`

	Extras map[string]any `json:"-"`
}

// UnmarshalJSON keeps all fields besides time, level and msg in Extras.
func (l *JSONLogEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["time"].(string); ok {
		l.Time = v
	}
	if v, ok := raw["level"].(string); ok {
		l.Level = v
	}
	if v, ok := raw["msg"].(string); ok {
		l.Msg = v
	}

	delete(raw, "time")
	delete(raw, "level")
	delete(raw, "msg")
	l.Extras = raw

	return nil
}

// List parses the log buffer and returns all valid JSON log entries
// Non-JSON entries are written to the Discarded buffer
func (logs *JSONLogReader) List() ([]*JSONLogEntry, error) {
	scanner := bufio.NewScanner(logs.Buffer)
	var entries []*JSONLogEntry
	for scanner.Scan() {
		data := scanner.Bytes()
		entry := JSONLogEntry{}
		if err := json.Unmarshal(data, &entry); err == nil {
			entries = append(entries, &entry)
		} else if _, err := logs.Discarded.Write(append(data, '\n')); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// GetDiscarded returns the contents of the Discarded buffer as a string
func (logs *JSONLogReader) GetDiscarded() string {
	return logs.Discarded.String()
}
