// Package session wires the command registry, history log, and autocomplete
// index into the shell's "read one line and execute" entry points.
package session

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/necroforge/necroshell/internal/config"
	"github.com/necroforge/necroshell/internal/shell/command"
	"github.com/necroforge/necroshell/internal/shell/complete"
	"github.com/necroforge/necroshell/internal/shell/history"
)

// Session owns exactly one Registry, one History, and one autocomplete
// Index. It is the only mutable shared state in the shell and is accessed
// from a single goroutine; the one suspension point is the blocking line
// read inside ReadAndExecute.
type Session struct {
	registry    *command.Registry
	history     *history.History
	index       *complete.Index
	in          *bufio.Scanner
	out         io.Writer
	logger      *zap.Logger
	historyPath string
	initialized bool
}

// New builds a Session reading lines from in and writing prompts to out,
// and loads any existing history from the configured path.
//
// Precondition: logger, in, and out must not be nil.
// Postcondition: Returns an initialized Session or a non-nil error.
func New(cfg config.ShellConfig, logger *zap.Logger, in io.Reader, out io.Writer) (*Session, error) {
	hist, err := history.New(cfg.HistoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("creating history: %w", err)
	}

	historyPath := cfg.HistoryPath
	if historyPath == "" {
		historyPath = history.DefaultPath()
	}
	if err := hist.Load(historyPath); err != nil {
		// A corrupt or unreadable history file should not block the session.
		logger.Warn("loading history", zap.String("path", historyPath), zap.Error(err))
	}

	reg := command.NewRegistry()
	return &Session{
		registry:    reg,
		history:     hist,
		index:       complete.NewIndex(reg),
		in:          bufio.NewScanner(in),
		out:         out,
		logger:      logger,
		historyPath: historyPath,
		initialized: true,
	}, nil
}

// Close persists the history and marks the session unusable.
func (s *Session) Close() error {
	if !s.initialized {
		return nil
	}
	s.initialized = false
	if err := s.history.Save(s.historyPath); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// Registry returns the session's command registry. Callers must mutate it
// only through RegisterCommand/UnregisterCommand so the autocomplete index
// stays fresh.
func (s *Session) Registry() *command.Registry { return s.registry }

// History returns the session's history log.
func (s *Session) History() *history.History { return s.history }

// RegisterCommand adds a descriptor and synchronously rebuilds the
// autocomplete index before returning. Stale completions are a correctness
// bug, not a performance one, so the rebuild is never deferred.
func (s *Session) RegisterCommand(d *command.Descriptor) bool {
	if !s.initialized {
		return false
	}
	ok := s.registry.Register(d)
	if ok {
		s.index.Rebuild(s.registry)
		s.logger.Debug("registered command", zap.String("name", d.Name))
	}
	return ok
}

// UnregisterCommand removes a command and synchronously rebuilds the
// autocomplete index before returning.
func (s *Session) UnregisterCommand(name string) bool {
	if !s.initialized {
		return false
	}
	ok := s.registry.Unregister(name)
	if ok {
		s.index.Rebuild(s.registry)
		s.logger.Debug("unregistered command", zap.String("name", name))
	}
	return ok
}

// Complete returns registered visible command names starting with prefix.
func (s *Session) Complete(prefix string) []string {
	if !s.initialized {
		return nil
	}
	return s.index.Complete(prefix)
}

// CompleteLine completes the trailing token of a partial input line.
func (s *Session) CompleteLine(line string) []string {
	if !s.initialized {
		return nil
	}
	return s.index.CompleteLine(line, s.registry)
}

// ReadAndExecute blocks reading one line, records it in history, and runs
// it through the tokenize/parse/dispatch pipeline.
//
// Postcondition: End of input yields a Result with ShouldExit set; an empty
// line yields a successful no-op; everything else yields the command's
// Result.
func (s *Session) ReadAndExecute(prompt string) command.Result {
	if !s.initialized {
		return command.Fail(command.ErrorNotInitialized, "session not initialized")
	}

	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			s.logger.Warn("reading input", zap.Error(err))
		}
		return command.Exit("end of input")
	}

	line := s.in.Text()
	if line == "" {
		return command.Ok("")
	}

	s.history.Add(line)
	return s.Execute(line)
}

// Execute runs a raw string through the tokenize/parse/dispatch pipeline
// without touching history or blocking on input.
//
// Postcondition: Lexical and parse failures come back as failed Results
// with a human-readable message; no handler runs for a failed parse.
func (s *Session) Execute(raw string) command.Result {
	if !s.initialized {
		return command.Fail(command.ErrorNotInitialized, "session not initialized")
	}

	cmd, err := command.ParseString(raw, s.registry)
	if err != nil {
		s.logger.Debug("parse failed", zap.String("input", raw), zap.Error(err))
		return command.Fail(command.ErrorCommandFailed, fmt.Sprintf("parse error: %v", err))
	}

	s.logger.Debug("dispatching command", zap.String("name", cmd.Name))
	return command.Execute(cmd)
}
