package launcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))
	executable := filepath.Join(dir, "launcher")

	src, err := SourceDir(executable, "src")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "src"), src)

	// Resolution follows the executable's location, not the caller's working
	// directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	other := t.TempDir()
	require.NoError(t, os.Chdir(other))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	src2, err := SourceDir(executable, "src")
	require.NoError(t, err)
	require.Equal(t, src, src2)
}

func TestSourceDir_missing(t *testing.T) {
	dir := t.TempDir()
	executable := filepath.Join(dir, "launcher")
	_, err := SourceDir(executable, "src")
	require.Error(t, err)
	require.Contains(t, err.Error(), filepath.Join(dir, "src"))
}

func TestCommand_forwardsArgs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))

	cmd, err := Command(context.Background(), Options{
		Executable:  filepath.Join(dir, "launcher"),
		SrcDirName:  "src",
		Interpreter: "python3",
		Module:      "monitor",
		Args:        []string{"--plan", "pro", "--timezone", "UTC"},
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "src"), cmd.Dir)
	require.Equal(t, []string{
		"python3", "-m", "monitor", "--plan", "pro", "--timezone", "UTC",
	}, cmd.Args)
}
