package command

import (
	"fmt"
	"strings"
)

// ParseErrorKind classifies parser failures.
type ParseErrorKind int

const (
	ParseErrEmptyCommand ParseErrorKind = iota
	ParseErrUnknownCommand
	ParseErrInvalidFlag
	ParseErrMissingFlagValue
	ParseErrInvalidFlagValue
	ParseErrTooFewArgs
	ParseErrTooManyArgs
	ParseErrRequiredFlagMissing
)

// String returns the human-readable form of the kind.
func (k ParseErrorKind) String() string {
	switch k {
	case ParseErrEmptyCommand:
		return "empty command"
	case ParseErrUnknownCommand:
		return "unknown command"
	case ParseErrInvalidFlag:
		return "invalid flag"
	case ParseErrMissingFlagValue:
		return "missing flag value"
	case ParseErrInvalidFlagValue:
		return "invalid flag value"
	case ParseErrTooFewArgs:
		return "too few arguments"
	case ParseErrTooManyArgs:
		return "too many arguments"
	case ParseErrRequiredFlagMissing:
		return "required flag missing"
	default:
		return "unknown parse error"
	}
}

// ParseError reports why a line failed to parse. Detail carries the
// offending token or flag name when one exists.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func parseErr(kind ParseErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// ParsedCommand is one structurally valid invocation: all flags coerced to
// their declared types, positional count within bounds, required flags
// present. It borrows its Descriptor from the registry for the duration of
// the call that produced it and must not outlive it.
type ParsedCommand struct {
	// Name is the command name as typed.
	Name string
	// Descriptor is the resolved registry entry.
	Descriptor *Descriptor
	// Flags maps flag long names to coerced values.
	Flags map[string]Value
	// Args are the positional arguments in encounter order.
	Args []string
	// Raw is the original input line, when parsed from one.
	Raw string
}

// Flag returns the coerced value for a long flag name.
func (p *ParsedCommand) Flag(name string) (Value, bool) {
	v, ok := p.Flags[name]
	return v, ok
}

// HasFlag reports whether the flag was present on the line.
func (p *ParsedCommand) HasFlag(name string) bool {
	_, ok := p.Flags[name]
	return ok
}

// Arg returns the positional argument at index i, or "" if out of range.
func (p *ParsedCommand) Arg(i int) string {
	if i < 0 || i >= len(p.Args) {
		return ""
	}
	return p.Args[i]
}

// isFlagToken reports whether a token introduces a flag: a leading dash with
// at least one more character. A bare "-" is positional.
func isFlagToken(t Token) bool {
	return len(t.Text) >= 2 && t.Text[0] == '-'
}

// Parse resolves tokens against the registry into a ParsedCommand.
//
// Parsing is total and side-effect-free: every failure is reported before
// any handler runs, and a failed parse mutates nothing.
//
// Precondition: reg must not be nil.
// Postcondition: Returns a ParsedCommand satisfying the descriptor's flag
// and arity schema, or a *ParseError.
func Parse(tokens []Token, reg *Registry) (*ParsedCommand, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Kind: ParseErrEmptyCommand}
	}

	name := tokens[0].Text
	desc, ok := reg.Get(name)
	if !ok {
		return nil, parseErr(ParseErrUnknownCommand, "%q", name)
	}

	cmd := &ParsedCommand{
		Name:       name,
		Descriptor: desc,
		Flags:      make(map[string]Value),
	}

	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]

		if !isFlagToken(tok) {
			cmd.Args = append(cmd.Args, tok.Text)
			continue
		}

		def, err := resolveFlag(desc, tok.Text)
		if err != nil {
			return nil, err
		}

		// Presence alone sets a boolean flag; it never consumes the next
		// token.
		if def.Kind == KindBool {
			cmd.Flags[def.Name] = BoolValue(true)
			continue
		}

		i++
		if i >= len(tokens) {
			return nil, parseErr(ParseErrMissingFlagValue, "--%s", def.Name)
		}
		val, cerr := Coerce(tokens[i].Text, def.Kind)
		if cerr != nil {
			return nil, parseErr(ParseErrInvalidFlagValue, "--%s: %v", def.Name, cerr)
		}
		cmd.Flags[def.Name] = val
	}

	if uint(len(cmd.Args)) < desc.MinArgs {
		return nil, parseErr(ParseErrTooFewArgs, "%s expects at least %d", name, desc.MinArgs)
	}
	if desc.MaxArgs > 0 && uint(len(cmd.Args)) > desc.MaxArgs {
		return nil, parseErr(ParseErrTooManyArgs, "%s expects at most %d", name, desc.MaxArgs)
	}

	for i := range desc.Flags {
		def := &desc.Flags[i]
		if def.Required && !cmd.HasFlag(def.Name) {
			return nil, parseErr(ParseErrRequiredFlagMissing, "--%s", def.Name)
		}
	}

	return cmd, nil
}

// resolveFlag matches a flag token against the descriptor's schema.
// "--name" matches long names; "-x" matches a single-character short name.
func resolveFlag(desc *Descriptor, text string) (*FlagDef, *ParseError) {
	if strings.HasPrefix(text, "--") {
		name := text[2:]
		if name == "" {
			return nil, parseErr(ParseErrInvalidFlag, "%q", text)
		}
		def, ok := desc.flagByName(name)
		if !ok {
			return nil, parseErr(ParseErrInvalidFlag, "--%s", name)
		}
		return def, nil
	}

	short := text[1:]
	if len(short) != 1 {
		return nil, parseErr(ParseErrInvalidFlag, "%q", text)
	}
	def, ok := desc.flagByShort(short[0])
	if !ok {
		return nil, parseErr(ParseErrInvalidFlag, "-%s", short)
	}
	return def, nil
}

// ParseString tokenizes and parses a raw line in one step, recording the
// line in the result's Raw field.
func ParseString(line string, reg *Registry) (*ParsedCommand, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	cmd, err := Parse(tokens, reg)
	if err != nil {
		return nil, err
	}
	cmd.Raw = line
	return cmd, nil
}
