package file

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
)

// Type is the type name for the path flag.
// It represents a flag that holds a file path.
const Type = "path"

// StdStream is the path value that stands for standard input or output.
const StdStream = "-"

// Flag defines a path flag that records whether the value is an existing file.
type Flag struct {
	path *string
	fs.FileInfo
}

func (f *Flag) String() string {
	if f.path == nil {
		return ""
	}
	return *f.path
}

func (f *Flag) Exists() bool {
	return f.FileInfo != nil
}

// IsStdStream reports whether the flag refers to standard input or output.
func (f *Flag) IsStdStream() bool {
	return f.String() == StdStream
}

func (f *Flag) Set(s string) error {
	if f.path == nil {
		f.path = new(string)
	}
	*f.path = s
	f.FileInfo = nil
	if s == "" || s == StdStream {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to stat path %q: %w", s, err)
	}
	f.FileInfo = info
	return nil
}

// Validate checks that the flag names an existing regular file or standard input.
func (f *Flag) Validate() error {
	switch {
	case f.IsStdStream():
		return nil
	case !f.Exists():
		return fmt.Errorf("file %q does not exist", f.String())
	case f.IsDir():
		return fmt.Errorf("path %q is a directory", f.String())
	}
	return nil
}

func (f *Flag) Type() string {
	return Type
}

// Parse creates a path flag value from s without registering it.
func Parse(s string) (*Flag, error) {
	flag := &Flag{}
	if err := flag.Set(s); err != nil {
		return nil, err
	}
	return flag, nil
}

func Var(f *pflag.FlagSet, name string, value string, usage string) {
	VarP(f, name, "", value, usage)
}

func VarP(f *pflag.FlagSet, name, shorthand string, value string, usage string) {
	flag := &Flag{}
	_ = flag.Set(value) // Set with the default value
	f.VarP(flag, name, shorthand, usage)
}
