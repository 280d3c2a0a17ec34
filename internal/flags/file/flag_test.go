package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag(t *testing.T) {
	tempDir := t.TempDir()
	regularFile := filepath.Join(tempDir, "anim.json")
	require.NoError(t, os.WriteFile(regularFile, []byte("{}"), 0o644))

	tests := []struct {
		name            string
		path            string
		exists          bool
		expectDirectory bool
		validateErr     bool
	}{
		{
			name:   "valid regular file",
			path:   regularFile,
			exists: true,
		},
		{
			name:        "non-existent file",
			path:        filepath.Join(tempDir, "nonexistent.json"),
			validateErr: true,
		},
		{
			name:            "directory",
			path:            tempDir,
			exists:          true,
			expectDirectory: true,
			validateErr:     true,
		},
		{
			name: "standard stream",
			path: StdStream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.path, flag.String())
			assert.Equal(t, tt.exists, flag.Exists())
			if tt.expectDirectory {
				assert.Truef(t, flag.IsDir(), "Expected flag to be a directory")
			} else if flag.Exists() {
				assert.Truef(t, flag.Mode().IsRegular(), "Expected flag to be a regular file")
			}
			if tt.validateErr {
				assert.Error(t, flag.Validate())
			} else {
				assert.NoError(t, flag.Validate())
			}
		})
	}
}

func TestFlagResetOnSet(t *testing.T) {
	tempDir := t.TempDir()
	flag, err := Parse(tempDir)
	require.NoError(t, err)
	require.True(t, flag.Exists())

	require.NoError(t, flag.Set(StdStream))
	assert.False(t, flag.Exists())
	assert.True(t, flag.IsStdStream())
}

func TestFlagVar(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	Var(fs, "test-var", "default.json", "test usage")
	flag := fs.Lookup("test-var")
	require.NotNil(t, flag)
	assert.Equal(t, Type, flag.Value.Type())
	assert.Equal(t, "default.json", flag.Value.String())

	VarP(fs, "test-var-p", "t", "default-p.json", "test usage with shorthand")
	require.NoError(t, fs.Parse([]string{"-t", StdStream}))
	path, ok := fs.Lookup("test-var-p").Value.(*Flag)
	require.True(t, ok)
	assert.True(t, path.IsStdStream())
}

func TestFlagType(t *testing.T) {
	flag := &Flag{}
	assert.Equal(t, Type, flag.Type())
}
