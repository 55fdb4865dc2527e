package execx_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/shipstep/pkg/execx"
)

func TestRun_CapturesOutput(t *testing.T) {
	res, err := execx.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"})
	require.NoError(t, err)

	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRun_NonZeroExit(t *testing.T) {
	res, err := execx.Run(context.Background(), []string{"sh", "-c", "echo findings; exit 3"})
	require.Error(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "findings\n", res.Stdout)
}

func TestRun_MissingCommand(t *testing.T) {
	_, err := execx.Run(context.Background(), []string{"shipstep-no-such-binary"})
	assert.Error(t, err)
}

func TestRun_EmptyArgv(t *testing.T) {
	_, err := execx.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestRun_WithDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte("here"), 0644))

	res, err := execx.Run(context.Background(), []string{"sh", "-c", "cat marker"}, execx.WithDir(dir))
	require.NoError(t, err)
	assert.Equal(t, "here", res.Stdout)
}

func TestRun_WithEnv(t *testing.T) {
	res, err := execx.Run(context.Background(), []string{"sh", "-c", "printf %s \"$SHIPSTEP_TEST_VAR\""},
		execx.WithEnv(map[string]string{"SHIPSTEP_TEST_VAR": "wired"}))
	require.NoError(t, err)
	assert.Equal(t, "wired", res.Stdout)
}
