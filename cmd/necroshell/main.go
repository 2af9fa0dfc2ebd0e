// Package main provides the necroshell binary, an interactive shell for
// commanding the dead.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/necroforge/necroshell/internal/config"
	"github.com/necroforge/necroshell/internal/game/state"
	"github.com/necroforge/necroshell/internal/observability"
	"github.com/necroforge/necroshell/internal/shell/builtin"
	"github.com/necroforge/necroshell/internal/shell/command"
	"github.com/necroforge/necroshell/internal/shell/session"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults")
	savePath := flag.String("save", "", "path to the save file, overriding the configured one")
	historyPath := flag.String("history", "", "path to the history file, overriding the configured one")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *savePath != "" {
		cfg.Game.SavePath = *savePath
	}
	if *historyPath != "" {
		cfg.Shell.HistoryPath = *historyPath
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	gameState := loadOrNewState(cfg.Game, logger)

	sess, err := session.New(cfg.Shell, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}

	ctx := &builtin.Context{
		State:    gameState,
		Registry: sess.Registry(),
		History:  sess.History(),
		SavePath: cfg.Game.SavePath,
		Logger:   logger,
	}
	registered := builtin.Register(sess, ctx)
	logger.Info("shell ready",
		zap.Int("commands", registered),
		zap.String("save_path", cfg.Game.SavePath),
	)

	if liner.TerminalSupported() {
		runInteractive(sess, cfg.Shell.Prompt, logger)
	} else {
		runPiped(sess, cfg.Shell.Prompt)
	}

	if err := gameState.Save(cfg.Game.SavePath); err != nil {
		logger.Warn("saving game on exit", zap.Error(err))
	}
	if err := sess.Close(); err != nil {
		logger.Warn("closing session", zap.Error(err))
	}
}

// loadOrNewState resumes from the save file when one exists and starts a
// fresh game otherwise.
func loadOrNewState(cfg config.GameConfig, logger *zap.Logger) *state.GameState {
	if _, err := os.Stat(cfg.SavePath); err == nil {
		loaded, err := state.Load(cfg.SavePath)
		if err != nil {
			logger.Warn("save file unreadable, starting fresh",
				zap.String("path", cfg.SavePath), zap.Error(err))
			return state.New(cfg.StartingMana, cfg.StartingSouls)
		}
		logger.Info("game resumed",
			zap.String("path", cfg.SavePath),
			zap.Int("day", loaded.Resources.Day),
		)
		return loaded
	}
	return state.New(cfg.StartingMana, cfg.StartingSouls)
}

// runInteractive drives the shell with liner, wiring its completer and
// in-memory history to the session's.
func runInteractive(sess *session.Session, prompt string, logger *zap.Logger) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return completeLine(sess, partial)
	})

	// Seed liner's arrow-key history from the persisted log, oldest first.
	hist := sess.History()
	for i := hist.Size() - 1; i >= 0; i-- {
		line.AppendHistory(hist.Get(i))
	}

	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
				continue
			}
			// EOF or terminal failure ends the session.
			fmt.Println()
			return
		}
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		hist.Add(input)

		result := sess.Execute(input)
		printResult(result)
		if result.ShouldExit {
			return
		}
	}
}

// runPiped reads lines from stdin without terminal features, for scripted
// use such as `echo status | necroshell`.
func runPiped(sess *session.Session, prompt string) {
	for {
		result := sess.ReadAndExecute(prompt)
		printResult(result)
		if result.ShouldExit {
			return
		}
	}
}

// completeLine rebuilds the full line for liner, which replaces the whole
// input with the chosen candidate.
func completeLine(sess *session.Session, partial string) []string {
	matches := sess.CompleteLine(partial)
	if len(matches) == 0 {
		return nil
	}

	// Keep everything up to the start of the trailing token and append each
	// completed form of it.
	cut := len(partial)
	for cut > 0 && partial[cut-1] != ' ' && partial[cut-1] != '\t' {
		cut--
	}
	prefix := partial[:cut]

	completions := make([]string, len(matches))
	for i, m := range matches {
		completions[i] = prefix + m
	}
	return completions
}

func printResult(result command.Result) {
	if result.Output != "" {
		fmt.Println(result.Output)
	}
	if !result.Success && result.ErrorMessage != "" {
		fmt.Fprintf(os.Stderr, "error: %s\n", result.ErrorMessage)
	}
}
