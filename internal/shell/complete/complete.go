// Package complete implements the prefix-completion index over registered
// command names.
package complete

import (
	"strings"
	"unicode"

	"github.com/necroforge/necroshell/internal/shell/command"
)

// Index is the read-mostly completion structure derived from a Registry.
// It holds no live reference to the registry: Rebuild must be called
// synchronously after every registry mutation, at the same call site, or
// completions go stale. The session couples the two.
type Index struct {
	candidates []string
}

// NewIndex creates an Index populated from the registry's current contents.
func NewIndex(reg *command.Registry) *Index {
	idx := &Index{}
	idx.Rebuild(reg)
	return idx
}

// Rebuild recomputes the candidate set wholesale from visible (non-hidden)
// command names, preserving registry enumeration order so completions stay
// stable across rebuilds.
func (idx *Index) Rebuild(reg *command.Registry) {
	idx.candidates = idx.candidates[:0]
	for _, name := range reg.Names() {
		desc, ok := reg.Get(name)
		if !ok || desc.Hidden {
			continue
		}
		idx.candidates = append(idx.candidates, name)
	}
}

// Complete returns the candidates starting with prefix, in enumeration
// order. Matching is case-sensitive; an empty prefix matches everything.
func (idx *Index) Complete(prefix string) []string {
	var matches []string
	for _, name := range idx.candidates {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// CompleteLine completes the token under the cursor at the end of a partial
// input line. The first word completes against command names; a trailing
// token beginning with "-" completes against the resolved command's long
// flags (rendered as "--name"); anything else yields no candidates,
// since positional arguments are game content this index knows nothing
// about.
func (idx *Index) CompleteLine(line string, reg *command.Registry) []string {
	fields := strings.Fields(line)
	endsWithSpace := line != "" && unicode.IsSpace(rune(line[len(line)-1]))

	// Nothing typed yet, or still typing the command word.
	if len(fields) == 0 {
		return idx.Complete("")
	}
	if len(fields) == 1 && !endsWithSpace {
		return idx.Complete(fields[0])
	}

	desc, ok := reg.Get(fields[0])
	if !ok {
		return nil
	}

	last := ""
	if !endsWithSpace {
		last = fields[len(fields)-1]
	}
	if !strings.HasPrefix(last, "-") {
		return nil
	}

	prefix := strings.TrimLeft(last, "-")
	var matches []string
	for _, def := range desc.Flags {
		if strings.HasPrefix(def.Name, prefix) {
			matches = append(matches, "--"+def.Name)
		}
	}
	return matches
}
