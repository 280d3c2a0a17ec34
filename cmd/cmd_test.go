package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lethe222/lottie-preview-huanfu/cmd/internal/test"
	"github.com/lethe222/lottie-preview-huanfu/cmd/version"
)

func TestHelp(t *testing.T) {
	test.Isolate(t)
	r := require.New(t)
	out := new(bytes.Buffer)

	_, err := test.LottieFix(t, test.WithOutput(out))
	r.NoError(err)
	for _, sub := range []string{"normalise", "batch", "version"} {
		r.Contains(out.String(), sub)
	}
}

func TestVersion(t *testing.T) {
	test.Isolate(t)
	r := require.New(t)
	out := new(bytes.Buffer)

	_, err := test.LottieFix(t, test.WithArgs("version"), test.WithOutput(out))
	r.NoError(err)

	var info version.LegacyVersionInfo
	r.NoError(json.Unmarshal(out.Bytes(), &info))
	r.NotEmpty(info.GoVersion)
}

func TestDebugLogs(t *testing.T) {
	test.Isolate(t)
	r := require.New(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "anim.json")
	r.NoError(os.WriteFile(input, []byte(`{"to":null}`), 0o644))
	logs := test.NewJSONLogReader()

	_, err := test.LottieFix(t,
		test.WithArgs("normalise", input, "-q", "--loglevel", "debug"),
		test.WithErrorOutput(logs),
	)
	r.NoError(err)

	entries, err := logs.List()
	r.NoError(err)
	r.Empty(logs.GetDiscarded())

	var prepared, normalised bool
	for _, entry := range entries {
		switch entry.Msg {
		case "command prepared":
			prepared = true
			r.Equal("lottiefix normalise", entry.Extras["command"])
		case "document normalised":
			normalised = true
			r.EqualValues(1, entry.Extras["removed"])
		}
	}
	r.True(prepared, "expected the command preparation to be logged")
	r.True(normalised, "expected the normalisation result to be logged")
}

func TestTextLogs(t *testing.T) {
	test.Isolate(t)
	r := require.New(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "anim.json")
	r.NoError(os.WriteFile(input, []byte(`{"ti":null}`), 0o644))
	errOut := new(bytes.Buffer)

	_, err := test.LottieFix(t,
		test.WithArgs("normalise", input, "-q", "--loglevel", "info"),
		test.WithLogFormat("text"),
		test.WithErrorOutput(errOut),
	)
	r.NoError(err)
	r.Contains(errOut.String(), "msg=\"reading document\"")
}
