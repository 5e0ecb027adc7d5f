package rubima

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Labels(t *testing.T) {
	var ls Labels
	assert.Equal(t, 0, ls.Len())
	assert.Nil(t, ls.Lookup("a"))
	assert.Nil(t, ls.Label(0))
	assert.Nil(t, ls.Label(1))

	a := ls.Define("a")
	b := ls.Define("b")
	assert.Equal(t, uint32(1), a.ID)
	assert.Equal(t, uint32(2), b.ID)
	assert.Same(t, a, ls.Define("a"), "expected stable identity")
	assert.Same(t, a, ls.Lookup("a"))
	assert.Same(t, b, ls.Label(2))
	assert.Equal(t, 2, ls.Len())

	assert.False(t, a.Resolved())
	assert.Equal(t, int32(-1), a.Pos())
	assert.Equal(t, ":a@?", a.String())
	assert.Equal(t, []*Label{a, b}, ls.Unresolved())

	require.NoError(t, ls.Resolve(b, 4))
	assert.True(t, b.Resolved())
	assert.Equal(t, int32(4), b.Pos())
	assert.Equal(t, ":b@4", b.String())
	assert.Equal(t, []*Label{a}, ls.Unresolved())

	err := ls.Resolve(b, 7)
	assert.ErrorIs(t, err, ErrDuplicateLabel)
	assert.EqualError(t, err, "label :b already defined @4")
	assert.Equal(t, int32(4), b.Pos(), "expected first resolution to stick")

	require.NoError(t, ls.Resolve(a, 0))
	assert.Empty(t, ls.Unresolved())
}
