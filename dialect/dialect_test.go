package dialect

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesKeywordsAndFunctions(t *testing.T) {
	doc := `
keywords:
  - MATCH_RECOGNIZE
  - QUALIFY
functions:
  - approx_count_distinct
`
	ext, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, ext.IsKeyword("match_recognize"))
	assert.True(t, ext.IsKeyword("QUALIFY"))
	assert.True(t, ext.IsFunction("APPROX_COUNT_DISTINCT"))
	assert.False(t, ext.IsFunction("date_trunc"))
}

func TestLoadInvalidYAMLErrors(t *testing.T) {
	_, err := Load(strings.NewReader("keywords: [unterminated"))
	require.Error(t, err)
}

func TestMergeCombinesWithoutMutatingReceiver(t *testing.T) {
	base, err := Load(strings.NewReader("keywords:\n  - FOO\n"))
	require.NoError(t, err)
	extra, err := Load(strings.NewReader("keywords:\n  - BAR\n"))
	require.NoError(t, err)

	merged := base.Merge(extra)
	assert.True(t, merged.IsKeyword("foo"))
	assert.True(t, merged.IsKeyword("bar"))
	assert.False(t, base.IsKeyword("bar"))
}

func TestMergeSkipsNilExtensions(t *testing.T) {
	base, err := Load(strings.NewReader("keywords:\n  - FOO\n"))
	require.NoError(t, err)

	merged := base.Merge(nil)
	assert.True(t, merged.IsKeyword("foo"))
}

func TestNilExtensionIsKeywordFalse(t *testing.T) {
	var ext *Extension
	assert.False(t, ext.IsKeyword("foo"))
	assert.False(t, ext.IsFunction("foo"))
}

func TestSetLoggerReplacesPackageLogger(t *testing.T) {
	custom := logrus.New()
	SetLogger(custom)
	assert.Same(t, custom, log)
	SetLogger(nil) // no-op, keeps previous logger
	assert.Same(t, custom, log)
}
