// Package enum provides a flag value that only accepts one of a fixed set of
// named options, each documented in the flag usage.
package enum

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Option is a value accepted by an enum flag.
type Option struct {
	Name string
	Help string
}

// Flag holds the selected option. The first option is the default.
type Flag struct {
	value   string
	options []Option
}

// New creates a flag accepting options. It panics without options.
func New(options ...Option) *Flag {
	if len(options) == 0 {
		panic("enum flag needs at least one option")
	}
	return &Flag{value: options[0].Name, options: append([]Option(nil), options...)}
}

func (f *Flag) String() string {
	return f.value
}

// Type lists the accepted names, which pflag shows as the value placeholder.
func (f *Flag) Type() string {
	return strings.Join(f.Names(), "|")
}

func (f *Flag) Set(value string) error {
	for _, o := range f.options {
		if o.Name == value {
			f.value = value
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(f.Names(), ", "))
}

// Names returns the accepted names, default first.
func (f *Flag) Names() []string {
	names := make([]string, len(f.options))
	for i, o := range f.options {
		names[i] = o.Name
	}
	return names
}

// Usage appends one aligned line per option to summary.
func (f *Flag) Usage(summary string) string {
	width := 0
	for _, o := range f.options {
		width = max(width, len(o.Name))
	}
	var b strings.Builder
	b.WriteString(summary)
	for i, o := range f.options {
		fmt.Fprintf(&b, "\n   %-*s %s", width+1, o.Name+":", o.Help)
		if i == 0 {
			b.WriteString(" (default)")
		}
	}
	return b.String()
}

func Var(fs *pflag.FlagSet, name string, options []Option, summary string) {
	VarP(fs, name, "", options, summary)
}

func VarP(fs *pflag.FlagSet, name, shorthand string, options []Option, summary string) {
	flag := New(options...)
	fs.VarP(flag, name, shorthand, flag.Usage(summary))
}

// Get returns the selected option of the enum flag name.
func Get(fs *pflag.FlagSet, name string) (string, error) {
	flag := fs.Lookup(name)
	if flag == nil {
		return "", fmt.Errorf("flag accessed but not defined: %s", name)
	}
	value, ok := flag.Value.(*Flag)
	if !ok {
		return "", fmt.Errorf("flag %s is of type %s, not an enum", name, flag.Value.Type())
	}
	return value.String(), nil
}
