package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/windowsadmins/wampdoctor/pkg/utils"
)

func TestVerifySHA256(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vc_redist.x64.exe")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	const sum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got, err := utils.FileSHA256(path)
	require.NoError(t, err)
	require.Equal(t, sum, got)

	require.NoError(t, utils.VerifySHA256(path, "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824"))
	require.ErrorIs(t, utils.VerifySHA256(path, "00"), utils.ErrHashMismatch)
	require.Error(t, utils.VerifySHA256(filepath.Join(t.TempDir(), "absent.exe"), sum))
}

func TestLiteralString(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(map[string]utils.LiteralString{"log": "line one\nline two"})
	require.NoError(t, err)
	require.Equal(t, "log: |\n    line one\n    line two\n", string(out))
}

func TestCommandLineArgs(t *testing.T) {
	args := utils.CommandLineArgs()
	require.NotNil(t, args)
	require.LessOrEqual(t, len(args), len(os.Args))
}
