package builtin

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/necroforge/necroshell/internal/config"
	"github.com/necroforge/necroshell/internal/game/state"
	"github.com/necroforge/necroshell/internal/shell/command"
	"github.com/necroforge/necroshell/internal/shell/session"
)

func newShell(t *testing.T) (*session.Session, *Context) {
	t.Helper()
	cfg := config.ShellConfig{
		Prompt:          "necro> ",
		HistoryPath:     filepath.Join(t.TempDir(), "history"),
		HistoryCapacity: 100,
	}
	sess, err := session.New(cfg, zap.NewNop(), strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)

	ctx := &Context{
		State:    state.New(100, 0),
		Registry: sess.Registry(),
		History:  sess.History(),
		SavePath: filepath.Join(t.TempDir(), "save.yaml"),
		Logger:   zap.NewNop(),
	}
	require.Equal(t, len(descriptors(ctx)), Register(sess, ctx))
	return sess, ctx
}

func TestRegisterInstallsAllCommands(t *testing.T) {
	sess, _ := newShell(t)
	for _, name := range []string{"help", "status", "quit", "exit", "clear", "echo", "history", "raise", "minions", "banish", "harvest", "save", "load", "corrupt"} {
		_, ok := sess.Registry().Get(name)
		assert.True(t, ok, "command %q should be registered", name)
	}
}

func TestHelpListsVisibleCommands(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("help")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "help")
	assert.Contains(t, result.Output, "raise")
	assert.NotContains(t, result.Output, "corrupt")
}

func TestHelpForSpecificCommand(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("help harvest")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "Usage: harvest")
	assert.Contains(t, result.Output, "--count")
}

func TestHelpUnknownCommandFails(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("help summon")
	assert.False(t, result.Success)
	assert.Equal(t, command.ErrorCommandFailed, result.ErrorKind)
}

func TestHelpHiddenCommandFails(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("help corrupt")
	assert.False(t, result.Success)
}

func TestStatusShowsResources(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("status")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "Mana:        100")
	assert.Contains(t, result.Output, "Day 1")
	assert.NotContains(t, result.Output, "Commands registered")
}

func TestStatusVerboseShowsShellInternals(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("status -v")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "Commands registered")
	assert.Contains(t, result.Output, "History")
}

func TestQuitAndExitRequestShutdown(t *testing.T) {
	sess, _ := newShell(t)

	for _, line := range []string{"quit", "exit"} {
		result := sess.Execute(line)
		assert.True(t, result.Success, line)
		assert.True(t, result.ShouldExit, line)
	}
}

func TestEchoJoinsArguments(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute(`echo the dead "walk again"`)
	require.True(t, result.Success)
	assert.Equal(t, "the dead walk again", result.Output)
}

func TestHistoryListsNewestFirst(t *testing.T) {
	sess, ctx := newShell(t)
	ctx.History.Add("status")
	ctx.History.Add("harvest")

	result := sess.Execute("history")
	require.True(t, result.Success)
	first := strings.Index(result.Output, "harvest")
	second := strings.Index(result.Output, "status")
	assert.Less(t, first, second)
}

func TestHistorySearchFilters(t *testing.T) {
	sess, ctx := newShell(t)
	ctx.History.Add("raise --type wraith")
	ctx.History.Add("status")

	result := sess.Execute("history --search raise")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "raise --type wraith")
	assert.NotContains(t, result.Output, "status")
}

func TestHistoryLimit(t *testing.T) {
	sess, ctx := newShell(t)
	ctx.History.Add("one")
	ctx.History.Add("two")
	ctx.History.Add("three")

	result := sess.Execute("history -n 2")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "three")
	assert.Contains(t, result.Output, "two")
	assert.NotContains(t, result.Output, "one")
}

func TestRaiseDefaultsToZombie(t *testing.T) {
	sess, ctx := newShell(t)

	result := sess.Execute("raise")
	require.True(t, result.Success)
	require.Len(t, ctx.State.Minions, 1)
	assert.Equal(t, state.MinionZombie, ctx.State.Minions[0].Type)
	assert.Equal(t, 90, ctx.State.Resources.Mana)
}

func TestRaiseNamedWraith(t *testing.T) {
	sess, ctx := newShell(t)

	result := sess.Execute("raise -t wraith --name Vex")
	require.True(t, result.Success)
	require.Len(t, ctx.State.Minions, 1)
	assert.Equal(t, "Vex", ctx.State.Minions[0].Name)
	assert.Equal(t, 60, ctx.State.Resources.Mana)
}

func TestRaiseUnknownTypeFails(t *testing.T) {
	sess, ctx := newShell(t)

	result := sess.Execute("raise --type lich")
	assert.False(t, result.Success)
	assert.Empty(t, ctx.State.Minions)
	assert.Equal(t, 100, ctx.State.Resources.Mana)
}

func TestRaiseWithoutManaFails(t *testing.T) {
	sess, ctx := newShell(t)
	ctx.State.Resources.Mana = 5

	result := sess.Execute("raise")
	assert.False(t, result.Success)
	assert.Empty(t, ctx.State.Minions)
}

func TestMinionsListsRaised(t *testing.T) {
	sess, _ := newShell(t)
	require.True(t, sess.Execute("raise --name Gnash").Success)

	result := sess.Execute("minions")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "Gnash")
}

func TestMinionsEmpty(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("minions")
	require.True(t, result.Success)
	assert.Contains(t, result.Output, "no minions")
}

func TestBanishByName(t *testing.T) {
	sess, ctx := newShell(t)
	require.True(t, sess.Execute("raise --name Gnash").Success)

	result := sess.Execute("banish Gnash")
	require.True(t, result.Success)
	assert.Empty(t, ctx.State.Minions)
}

func TestBanishUnknownFails(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("banish nobody")
	assert.False(t, result.Success)
}

func TestHarvestGainsSouls(t *testing.T) {
	sess, ctx := newShell(t)

	result := sess.Execute("harvest --count 3")
	require.True(t, result.Success)
	assert.Equal(t, 15, ctx.State.Resources.SoulEnergy)
	assert.InDelta(t, 0.3, ctx.State.Resources.Corruption, 1e-9)
}

func TestHarvestRejectsNonPositiveCount(t *testing.T) {
	sess, ctx := newShell(t)

	result := sess.Execute("harvest -c 0")
	assert.False(t, result.Success)
	assert.Zero(t, ctx.State.Resources.SoulEnergy)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	sess, ctx := newShell(t)
	require.True(t, sess.Execute("raise --name Gnash").Success)
	require.True(t, sess.Execute("harvest -c 2").Success)

	require.True(t, sess.Execute("save").Success)

	// Mutate, then load should restore the saved snapshot.
	require.True(t, sess.Execute("harvest -c 4").Success)
	result := sess.Execute("load")
	require.True(t, result.Success)
	assert.Equal(t, 10, ctx.State.Resources.SoulEnergy)
	require.Len(t, ctx.State.Minions, 1)
	assert.Equal(t, "Gnash", ctx.State.Minions[0].Name)
}

func TestLoadMissingFileFails(t *testing.T) {
	sess, _ := newShell(t)

	result := sess.Execute("load /nonexistent/save.yaml")
	assert.False(t, result.Success)
}

func TestCorruptRequiresAmount(t *testing.T) {
	sess, ctx := newShell(t)

	result := sess.Execute("corrupt")
	assert.False(t, result.Success)

	result = sess.Execute("corrupt --amount 2.5")
	require.True(t, result.Success)
	assert.InDelta(t, 2.5, ctx.State.Resources.Corruption, 1e-9)
}
