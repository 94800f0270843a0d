package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"ui", "scan", "fix", "ports", "show-config", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, cmd.Name())
	}

	ui, _, _ := root.Find([]string{"ui"})
	scan, _, _ := root.Find([]string{"scan"})
	require.True(t, isUICommand(root))
	require.True(t, isUICommand(ui))
	require.False(t, isUICommand(scan))

	for _, flag := range []string{"config", "locale", "report", "verbose"} {
		require.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	require.Equal(t, "v", root.PersistentFlags().Lookup("verbose").Shorthand)
}
