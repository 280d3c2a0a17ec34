// Package fixer reads animation files, normalises them and writes the result back.
package fixer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lethe222/lottie-preview-huanfu/internal/jsontree"
	"github.com/lethe222/lottie-preview-huanfu/internal/normalisation"
)

var (
	// ErrParse is returned if the input is not valid JSON. Nothing is written in that case.
	ErrParse = errors.New("cannot parse input")
	// ErrIO is returned if the input cannot be read or the output cannot be written.
	ErrIO = errors.New("i/o failure")
)

// StdStream is the path that refers to standard input or standard output.
const StdStream = "-"

// DefaultSuffix is appended to the input file name to derive an output path.
const DefaultSuffix = "-fixed"

// Options configure how a document is processed.
type Options struct {
	// Normaliser defaults to normalisation.New() if nil.
	Normaliser *normalisation.Normaliser
	// Indent switches to indented output if not empty.
	Indent string
	// Canonical writes RFC 8785 output. Takes precedence over Indent.
	Canonical bool
	// Stdin and Stdout back the StdStream path. They default to os.Stdin and os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer
}

func (o Options) stdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) normaliser() *normalisation.Normaliser {
	if o.Normaliser == nil {
		return normalisation.New()
	}
	return o.Normaliser
}

// Report describes a single processed document.
type Report struct {
	Input      string              `json:"input"`
	Output     string              `json:"output"`
	InputSize  int64               `json:"inputSize"`
	OutputSize int64               `json:"outputSize"`
	Stats      normalisation.Stats `json:"stats"`
	Duration   time.Duration       `json:"duration"`
}

// Reduction is the number of bytes saved.
func (r *Report) Reduction() int64 {
	return r.InputSize - r.OutputSize
}

// DefaultOutputPath derives an output path next to input by adding suffix to
// its base name, e.g. anim.json becomes anim-fixed.json.
func DefaultOutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// File normalises the document at input and writes it to output.
// Either path may be StdStream. Regular output files are replaced atomically.
func File(ctx context.Context, input, output string, opts Options) (*Report, error) {
	logger := slog.With(slog.String("input", input), slog.String("output", output))
	if input == StdStream && output == StdStream {
		logger.InfoContext(ctx, "normalising standard streams")
		return Stream(ctx, opts.stdin(), opts.stdout(), opts)
	}
	start := time.Now()

	logger.InfoContext(ctx, "reading document")
	data, err := readInput(input, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "normalising document", slog.Int("bytes", len(data)))
	fixed, stats, err := Bytes(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	logger.InfoContext(ctx, "writing document", slog.Int("bytes", len(fixed)))
	if err := writeOutput(output, fixed, opts); err != nil {
		return nil, err
	}

	report := &Report{
		Input:      input,
		Output:     output,
		InputSize:  int64(len(data)),
		OutputSize: int64(len(fixed)),
		Stats:      stats,
		Duration:   time.Since(start),
	}
	logger.DebugContext(ctx, "document normalised",
		slog.Int("removed", stats.RemovedTotal()),
		slog.Int("replaced", stats.ReplacedTotal()),
		slog.Int64("reduction", report.Reduction()),
	)
	return report, nil
}

// Stream normalises the document read from r and writes it to w.
func Stream(ctx context.Context, r io.Reader, w io.Writer, opts Options) (*Report, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading input: %w", ErrIO, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fixed, stats, err := Bytes(data, opts)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(w, bytes.NewReader(fixed)); err != nil {
		return nil, fmt.Errorf("%w: writing output: %w", ErrIO, err)
	}
	return &Report{
		Input:      StdStream,
		Output:     StdStream,
		InputSize:  int64(len(data)),
		OutputSize: int64(len(fixed)),
		Stats:      stats,
		Duration:   time.Since(start),
	}, nil
}

// Bytes normalises a single JSON document held in memory.
func Bytes(data []byte, opts Options) ([]byte, normalisation.Stats, error) {
	tree, err := jsontree.Parse(data)
	if err != nil {
		return nil, normalisation.Stats{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	fixed, stats := opts.normaliser().NormaliseWithStats(tree)

	var out []byte
	if opts.Canonical {
		out, err = jsontree.Canonicalize(fixed)
	} else {
		out, err = jsontree.Marshal(fixed, opts.Indent)
	}
	if err != nil {
		return nil, normalisation.Stats{}, fmt.Errorf("encoding normalised document failed: %w", err)
	}
	return out, stats, nil
}

func readInput(input string, opts Options) ([]byte, error) {
	if input == StdStream {
		data, err := io.ReadAll(opts.stdin())
		if err != nil {
			return nil, fmt.Errorf("%w: reading standard input: %w", ErrIO, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return data, nil
}

func writeOutput(output string, data []byte, opts Options) error {
	if output == StdStream {
		if _, err := opts.stdout().Write(data); err != nil {
			return fmt.Errorf("%w: writing standard output: %w", ErrIO, err)
		}
		return nil
	}
	if err := writeFileAtomic(output, data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so path either keeps its old content or holds all of data.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err = tmp.Sync(); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
