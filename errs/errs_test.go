package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relquery/relquery/token"
)

func TestTokenizerErrorCarriesPosition(t *testing.T) {
	pos := token.Pos{Line: 3, Column: 7, Offset: 42}
	err := TokenizerError(pos, "unterminated string literal")

	assert.Equal(t, KindTokenizer, GetKind(err))
	gotPos, ok := Pos(err)
	require.True(t, ok)
	assert.Equal(t, pos, gotPos)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "column 7")
}

func TestResolveErrorReason(t *testing.T) {
	err := ResolveError(ReasonEmptyWildcard, map[string]any{"table": "users"}, "wildcard resolved empty")

	assert.Equal(t, KindResolve, GetKind(err))
	assert.Equal(t, ReasonEmptyWildcard, GetReason(err))
	assert.Equal(t, "users", Context(err)["table"])
}

func TestCycleErrorListsMembers(t *testing.T) {
	err := CycleError([]string{"a", "b"})

	assert.Equal(t, KindCycle, GetKind(err))
	members, ok := Context(err)["members"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, members)
}

func TestGetKindOnForeignError(t *testing.T) {
	plain := assert.AnError
	assert.Equal(t, Kind(""), GetKind(plain))
	assert.Equal(t, Reason(""), GetReason(plain))
}

func TestWrapPreservesNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "anything"))
}

func TestWrapAttachesMessage(t *testing.T) {
	wrapped := Wrap(assert.AnError, "loading dialect file %s", "foo.yaml")
	assert.Contains(t, wrapped.Error(), "foo.yaml")
	assert.Contains(t, wrapped.Error(), assert.AnError.Error())
}
