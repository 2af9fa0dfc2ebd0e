// Package history implements the bounded, persisted log of raw command
// lines typed into the shell.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultFileName is the history file created under the user's home
// directory.
const defaultFileName = ".necroshell_history"

// History is a fixed-capacity FIFO log of raw input lines. Once capacity is
// exceeded the oldest entry is evicted. Not safe for concurrent use; the
// session owns exactly one and accesses it from a single goroutine.
type History struct {
	entries  []string
	capacity int
	head     int
	size     int
}

// New creates a History with the given fixed capacity.
//
// Precondition: capacity must be >= 1.
func New(capacity int) (*History, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("history capacity must be >= 1, got %d", capacity)
	}
	return &History{
		entries:  make([]string, capacity),
		capacity: capacity,
	}, nil
}

// Add appends a raw line. Empty lines and consecutive duplicates are
// ignored so arrow-key replay stays useful.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	if h.size > 0 && h.Get(0) == line {
		return
	}

	h.head = (h.head + 1) % h.capacity
	h.entries[h.head] = line
	if h.size < h.capacity {
		h.size++
	}
}

// Get returns the entry at the given recency index: 0 is the most recent,
// Size()-1 the oldest. Out-of-range indices return "".
func (h *History) Get(index int) string {
	if index < 0 || index >= h.size {
		return ""
	}
	pos := h.head - index
	if pos < 0 {
		pos += h.capacity
	}
	return h.entries[pos]
}

// Size returns the number of retained entries.
func (h *History) Size() int { return h.size }

// Capacity returns the fixed capacity set at construction.
func (h *History) Capacity() int { return h.capacity }

// Clear removes all entries without changing capacity.
func (h *History) Clear() {
	for i := range h.entries {
		h.entries[i] = ""
	}
	h.size = 0
	h.head = 0
}

// Search returns all entries containing the substring, newest first.
func (h *History) Search(substr string) []string {
	var matches []string
	for i := 0; i < h.size; i++ {
		if entry := h.Get(i); strings.Contains(entry, substr) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Save writes the log to a plain-text file, one raw line per record, oldest
// first so the file reads top-to-bottom in typing order.
//
// Postcondition: On success the file exists with mode 0600 and holds
// exactly Size() records.
func (h *History) Save(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i := h.size - 1; i >= 0; i-- {
		if _, err := fmt.Fprintln(w, h.Get(i)); err != nil {
			f.Close()
			return fmt.Errorf("writing history file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing history file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing history file: %w", err)
	}
	return nil
}

// Load replays a previously saved file into the log, applying the usual Add
// rules. A missing file is not an error; it just means an empty initial
// history.
func (h *History) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading history file: %w", err)
	}
	return nil
}

// DefaultPath returns the session-default history file location under the
// user's home directory, falling back to the working directory when no home
// is resolvable.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultFileName
	}
	return filepath.Join(home, defaultFileName)
}
