package v1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethe222/lottie-preview-huanfu/internal/jsontree"
	"github.com/lethe222/lottie-preview-huanfu/internal/normalisation"
)

func ptr[T any](v T) *T { return &v }

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
targetKeys: [to, ti, ix]
policy: replace
replacement: [1, 2, 3]
indent: "  "
canonical: true
suffix: -clean
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"to", "ti", "ix"}, cfg.TargetKeys)
	assert.Equal(t, "replace", cfg.Policy)
	assert.JSONEq(t, `[1,2,3]`, string(cfg.Replacement))
	assert.Equal(t, "  ", *cfg.Indent)
	assert.True(t, *cfg.Canonical)
	assert.Equal(t, "-clean", cfg.Suffix)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("targetKeys: [to\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("unknownField: 1\n"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	first := &Config{
		TargetKeys: []string{"to"},
		Policy:     "replace",
		Indent:     ptr("\t"),
		Suffix:     "-a",
	}
	second := &Config{
		TargetKeys: []string{"ti"},
		Canonical:  ptr(true),
	}
	third := &Config{
		Policy: "delete",
		Indent: ptr(""),
	}

	merged := Merge(first, nil, second, third)
	assert.Equal(t, []string{"ti"}, merged.TargetKeys)
	assert.Equal(t, "delete", merged.Policy)
	assert.Equal(t, "", *merged.Indent)
	assert.True(t, *merged.Canonical)
	assert.Equal(t, "-a", merged.Suffix)

	// merged config owns its values
	*third.Indent = "changed"
	assert.Equal(t, "", *merged.Indent)

	empty := Merge()
	assert.Nil(t, empty.TargetKeys)
	assert.Nil(t, empty.Indent)
}

func TestNormaliserOptions(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		var cfg *Config
		opts, err := cfg.NormaliserOptions()
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("replace with configured value", func(t *testing.T) {
		cfg := &Config{TargetKeys: []string{"ix"}, Policy: "replace", Replacement: []byte(`[9]`)}
		opts, err := cfg.NormaliserOptions()
		require.NoError(t, err)

		tree, err := jsontree.Parse([]byte(`{"ix":null,"to":null}`))
		require.NoError(t, err)
		out, err := jsontree.Marshal(normalisation.Normalise(tree, opts...), "")
		require.NoError(t, err)
		assert.Equal(t, `{"ix":[9],"to":null}`, string(out))
	})

	t.Run("replacement alone selects replace", func(t *testing.T) {
		opts, err := (&Config{Replacement: []byte(`[1,1,1]`)}).NormaliserOptions()
		require.NoError(t, err)

		tree, err := jsontree.Parse([]byte(`{"to":null}`))
		require.NoError(t, err)
		out, err := jsontree.Marshal(normalisation.Normalise(tree, opts...), "")
		require.NoError(t, err)
		assert.Equal(t, `{"to":[1,1,1]}`, string(out))
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := (&Config{Policy: "zero"}).NormaliserOptions()
		assert.ErrorIs(t, err, normalisation.ErrUnknownPolicy)
	})

	t.Run("invalid replacement", func(t *testing.T) {
		_, err := (&Config{Policy: "replace", Replacement: []byte(`[1,`)}).NormaliserOptions()
		assert.ErrorIs(t, err, jsontree.ErrInvalidJSON)
	})
}
