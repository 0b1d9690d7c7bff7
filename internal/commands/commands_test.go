package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	r := NewRegistry()
	ran := 0
	r.Register("toggle-mode", "rebuild the grid", func() error { ran++; return nil })
	boom := errors.New("boom")
	r.Register("fail", "", func() error { return boom })

	require.NoError(t, r.Execute("toggle-mode"))
	assert.Equal(t, 1, ran)
	assert.ErrorIs(t, r.Execute("fail"), boom)
	assert.ErrorIs(t, r.Execute("nope"), ErrUnknownCommand)
	assert.ErrorIs(t, r.Execute(""), ErrMissingCommand)
}

func TestKeyBindings(t *testing.T) {
	r := NewRegistry()
	var got []string
	for _, name := range []string{"deselect", "top-view"} {
		name := name
		r.Register(name, "", func() error { got = append(got, name); return nil })
	}
	require.NoError(t, r.Bind(256, "deselect"))
	require.NoError(t, r.Bind('T', "top-view"))
	assert.ErrorIs(t, r.Bind('X', "missing"), ErrUnknownCommand)

	handled, err := r.HandleKey(256)
	assert.True(t, handled)
	assert.NoError(t, err)
	handled, err = r.HandleKey('Q')
	assert.False(t, handled)
	assert.NoError(t, err)
	_, _ = r.HandleKey('T')

	assert.Equal(t, []string{"deselect", "top-view"}, got)
}

func TestCommandsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("b", "", func() error { return nil })
	r.Register("a", "", func() error { return nil })
	cmds := r.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "a", cmds[0].Name)
	_, ok := r.Lookup("b")
	assert.True(t, ok)
}
