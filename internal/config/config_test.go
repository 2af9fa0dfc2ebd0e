package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Shell: ShellConfig{
			Prompt:          "necro> ",
			HistoryCapacity: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Game: GameConfig{
			SavePath:      "necroshell_save.yaml",
			StartingMana:  100,
			StartingSouls: 0,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadShell(t *testing.T) {
	cfg := validConfig()
	cfg.Shell.Prompt = ""
	cfg.Shell.HistoryCapacity = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shell.prompt")
	assert.Contains(t, err.Error(), "shell.history_capacity")
}

func TestValidate_RejectsBadLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNegativeStartingResources(t *testing.T) {
	cfg := validConfig()
	cfg.Game.StartingMana = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Game.StartingSouls = -5
	assert.Error(t, cfg.Validate())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "necro> ", cfg.Shell.Prompt)
	assert.Equal(t, 100, cfg.Shell.HistoryCapacity)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Game.StartingMana)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
shell:
  prompt: "bones> "
  history_capacity: 25
logging:
  level: debug
  format: json
game:
  starting_mana: 250
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bones> ", cfg.Shell.Prompt)
	assert.Equal(t, 25, cfg.Shell.HistoryCapacity)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 250, cfg.Game.StartingMana)
	// Untouched keys keep defaults.
	assert.Equal(t, 0, cfg.Game.StartingSouls)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFileContentFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shell:
  history_capacity: -2
`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
