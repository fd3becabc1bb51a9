package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chessArena/bots"
	"chessArena/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, bots.Names(), strings.Split(strings.TrimSuffix(out, "\n"), "\n"))
}

func TestMoveCommand(t *testing.T) {
	out, err := run(t, "move", "--preset", "First")
	require.NoError(t, err)
	assert.Equal(t, "Na3 (b1a3)\n", out)

	out, err = run(t, "move", "--preset", "Matching", "--fen", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "--seed", "1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMoveCommandErrors(t *testing.T) {
	_, err := run(t, "move", "--preset", "Human")
	assert.ErrorContains(t, err, `unknown preset "Human"`)

	_, err = run(t, "move", "--fen", "not a position")
	assert.Error(t, err)

	_, err = run(t, "move", "--fen", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.ErrorContains(t, err, "checkmate")

	for _, args := range [][]string{
		{"move", "--preset", "Random", "--fen", "4k3/8/8/8/8/8/8/8 w - - 0 1"},
		{"move", "--preset", "Random", "--fen", "8/8/8/8/8/8/8/8 w - - 0 1"},
		{"play", "--fen", "4k3/8/8/8/8/8/8/8 w - - 0 1"},
	} {
		require.NotPanics(t, func() { _, err = run(t, args...) }, "%v", args)
		assert.ErrorIs(t, err, rules.ErrKingCount, "%v", args)
	}

	_, err = run(t, "--log-level", "loud", "list")
	assert.Error(t, err)
}

func TestPlayCommand(t *testing.T) {
	out, err := run(t, "play", "--white", "First", "--black", "Alphabetical", "--games", "2", "--max-plies", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "game 1: First - Alphabetical")
	assert.Contains(t, out, "game 2: Alphabetical - First")
	assert.Contains(t, out, "First vs Alphabetical: +0 =0 -0 (unfinished 2)")
}

func TestPlayFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("white: Random\nblack: First\ngames: 3\nmax_plies: 2\nseed: 5\n"), 0o600))

	out, err := run(t, "play", "--config", path, "--white", "Alphabetical", "--games", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "game 1: Alphabetical - First")
	assert.NotContains(t, out, "game 2:")
	assert.Contains(t, out, "Alphabetical vs First")
}
