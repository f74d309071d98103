package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["hdl"])
	assert.True(t, names["edge3"])
	assert.True(t, names["all"])
}

func TestNewHDLCmd_RequiresInFlag(t *testing.T) {
	cmd := newHDLCmd()
	f := cmd.Flags().Lookup("in")
	require.NotNil(t, f)
	assert.Equal(t, "", f.DefValue)

	out := cmd.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "/dev/stdout", out.DefValue)
}

func TestNewAllCmd_RequiresThreeFlags(t *testing.T) {
	cmd := newAllCmd()
	for _, name := range []string{"in", "hdl-out", "edge3-out"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected flag %s", name)
	}
}

func TestFileOrStdout_WriteAccumulatesBytes(t *testing.T) {
	w := &fileOrStdout{}
	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(w.Bytes()))
}
