package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clierrors "github.com/zfogg/swipefeed/pkg/errors"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/output"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	oldOut, oldNoColor := output.Out, color.NoColor
	output.Out, color.NoColor = &buf, true
	t.Cleanup(func() {
		output.Out, color.NoColor = oldOut, oldNoColor
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	base := []string{"--config", filepath.Join(t.TempDir(), "config.toml"), "--output", "text"}
	rootCmd.SetArgs(append(base, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "swipefeed v"+Version+"\n", out)
}

func TestPageCommand_Offline(t *testing.T) {
	out, err := execute(t, "page", "--offline", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 2 (10 videos)")
	assert.Contains(t, out, "demo-0011")
}

func TestVideoCommand_Offline(t *testing.T) {
	out, err := execute(t, "video", "--offline", "demo-0002")
	require.NoError(t, err)
	assert.Contains(t, out, "demo-0002")

	_, err = execute(t, "video", "--offline", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, feed.ErrNotFound)
	assert.Equal(t, clierrors.ErrorTypeNotFound, clierrors.CategorizeError(err).Type)
}

func TestInteractionCommands_Offline(t *testing.T) {
	for _, kind := range []string{"like", "unlike", "share", "comment"} {
		t.Run(kind, func(t *testing.T) {
			out, err := execute(t, kind, "--offline", "demo-0001")
			require.NoError(t, err)
			assert.Contains(t, out, "recorded for demo-0001")
		})
	}
}

func TestRootCommand_RejectsOutputFormat(t *testing.T) {
	_, err := execute(t, "--output", "yaml", "version")
	require.Error(t, err)
	assert.Equal(t, clierrors.ErrorTypeValidation, clierrors.CategorizeError(err).Type)
}

func TestWatchCommand_NeedsTerminal(t *testing.T) {
	_, err := execute(t, "watch", "--offline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
