package batch_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethe222/lottie-preview-huanfu/cmd/batch"
	"github.com/lethe222/lottie-preview-huanfu/cmd/internal/test"
)

func writeFiles(t *testing.T, dir string, count int) []string {
	t.Helper()
	paths := make([]string, 0, count)
	for i := range count {
		path := filepath.Join(dir, fmt.Sprintf("anim%d.json", i))
		content := fmt.Sprintf(`{"id":%d,"k":[{"t":0,"to":null,"ti":null},{"t":%d,"to":[1,0,0],"ti":null}]}`, i, i+1)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func expected(i int) string {
	return fmt.Sprintf(`{"id":%d,"k":[{"t":0},{"t":%d,"to":[1,0,0]}]}`, i, i+1)
}

func TestBatch(t *testing.T) {
	t.Run("next to the inputs", func(t *testing.T) {
		test.Isolate(t)
		r := require.New(t)
		inputs := writeFiles(t, t.TempDir(), 8)

		args := append([]string{"batch", "--concurrency-limit", "3", "-o", "none"}, inputs...)
		_, err := test.LottieFix(t, test.WithArgs(args...))
		r.NoError(err)

		for i, input := range inputs {
			data, err := os.ReadFile(filepath.Join(filepath.Dir(input), fmt.Sprintf("anim%d-fixed.json", i)))
			r.NoError(err)
			r.Equal(expected(i), string(data))
		}
	})

	t.Run("into an output directory without suffix", func(t *testing.T) {
		test.Isolate(t)
		r := require.New(t)
		inputs := writeFiles(t, t.TempDir(), 3)
		outputDir := filepath.Join(t.TempDir(), "nested", "fixed")

		args := append([]string{"batch", "--output-dir", outputDir, "--suffix", "", "-q"}, inputs...)
		_, err := test.LottieFix(t, test.WithArgs(args...))
		r.NoError(err)

		for i := range inputs {
			data, err := os.ReadFile(filepath.Join(outputDir, fmt.Sprintf("anim%d.json", i)))
			r.NoError(err)
			r.Equal(expected(i), string(data))
		}
	})

	t.Run("summary and message", func(t *testing.T) {
		test.Isolate(t)
		r := require.New(t)
		inputs := writeFiles(t, t.TempDir(), 2)
		out := new(bytes.Buffer)
		errOut := new(bytes.Buffer)

		args := append([]string{"batch"}, inputs...)
		_, err := test.LottieFix(t, test.WithArgs(args...), test.WithOutput(out), test.WithErrorOutput(errOut))
		r.NoError(err)

		r.Contains(out.String(), inputs[0])
		r.Contains(out.String(), inputs[1])
		r.Contains(out.String(), "ti=2 to=1")
		r.Contains(errOut.String(), "normalised 2 file(s): 6 field(s) removed, 0 replaced")
	})
}

func TestBatchErrors(t *testing.T) {
	t.Run("invalid document", func(t *testing.T) {
		test.Isolate(t)
		dir := t.TempDir()
		inputs := writeFiles(t, dir, 2)
		broken := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(broken, []byte(`{"to":`), 0o644))

		args := append([]string{"batch", "-q", "--concurrency-limit", "1"}, append(inputs, broken)...)
		_, err := test.LottieFix(t, test.WithArgs(args...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.json")
		assert.NoFileExists(t, filepath.Join(dir, "broken-fixed.json"))
	})

	t.Run("missing input", func(t *testing.T) {
		test.Isolate(t)
		inputs := writeFiles(t, t.TempDir(), 1)
		args := append([]string{"batch"}, inputs[0], filepath.Join(t.TempDir(), "missing.json"))
		_, err := test.LottieFix(t, test.WithArgs(args...))
		assert.Error(t, err)
	})

	t.Run("standard input", func(t *testing.T) {
		test.Isolate(t)
		_, err := test.LottieFix(t, test.WithArgs("batch", "-"))
		assert.ErrorContains(t, err, "standard input")
	})

	t.Run("duplicate input", func(t *testing.T) {
		test.Isolate(t)
		inputs := writeFiles(t, t.TempDir(), 1)
		_, err := test.LottieFix(t, test.WithArgs("batch", inputs[0], inputs[0]))
		assert.ErrorContains(t, err, "more than once")
	})

	t.Run("concurrency limit", func(t *testing.T) {
		test.Isolate(t)
		inputs := writeFiles(t, t.TempDir(), 1)
		_, err := test.LottieFix(t, test.WithArgs("batch", "--concurrency-limit", "0", inputs[0]))
		assert.ErrorContains(t, err, "concurrency limit")
	})

	t.Run("output overwrites input", func(t *testing.T) {
		test.Isolate(t)
		inputs := writeFiles(t, t.TempDir(), 1)
		_, err := test.LottieFix(t, test.WithArgs("batch", "--suffix", "", inputs[0]))
		assert.ErrorContains(t, err, "would overwrite the input")
	})
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name      string
		inputs    []string
		outputDir string
		suffix    string
		expected  []string
		err       string
	}{
		{
			name:     "suffix next to input",
			inputs:   []string{"a/x.json", "b/x.json", "y"},
			suffix:   "-fixed",
			expected: []string{"a/x-fixed.json", "b/x-fixed.json", "y-fixed"},
		},
		{
			name:      "output directory",
			inputs:    []string{"a/x.json", "b/y.json"},
			outputDir: "out",
			expected:  []string{filepath.Join("out", "x.json"), filepath.Join("out", "y.json")},
		},
		{
			name:      "same base name in output directory",
			inputs:    []string{"a/x.json", "b/x.json"},
			outputDir: "out",
			err:       "already used by",
		},
		{
			name:   "output is another input",
			inputs: []string{"x.json", "x-fixed.json"},
			suffix: "-fixed",
			err:    "already used by",
		},
		{
			name:   "output is the input",
			inputs: []string{"x.json"},
			err:    "would overwrite the input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := batch.OutputPaths(tt.inputs, tt.outputDir, tt.suffix)
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, outputs)
		})
	}
}
