// Package command implements the shell's command interpreter: quote-aware
// tokenization, typed flag coercion, the command registry, the schema-driven
// parser, and handler dispatch.
package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Token is a single lexical unit produced by Tokenize.
type Token struct {
	// Text is the token content with quotes stripped and escapes resolved.
	Text string
	// Quoted is true if any part of the token was inside quotes.
	Quoted bool
}

// Tokenization errors.
var (
	// ErrEmptyInput is returned for empty or all-whitespace lines, so callers
	// can tell "nothing typed" apart from a real lexical failure.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnclosedQuote is returned when a quote is still open at end of line.
	ErrUnclosedQuote = errors.New("unclosed quote")
	// ErrInvalidEscape is returned for an unrecognized or dangling backslash
	// escape inside double quotes.
	ErrInvalidEscape = errors.New("invalid escape sequence")
)

// tokenizer states. Escapes are only processed inside double quotes; single
// quotes are fully literal.
type lexState int

const (
	stateInitial lexState = iota
	stateInToken
	stateInSingleQuote
	stateInDoubleQuote
	stateEscapeInDoubleQuote
)

// Tokenize splits a raw input line into quote-aware tokens.
//
// Precondition: line is a single input line without a trailing newline.
// Postcondition: Returns the tokens in input order, or ErrEmptyInput,
// ErrUnclosedQuote, or ErrInvalidEscape. On error no tokens are returned.
func Tokenize(line string) ([]Token, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmptyInput
	}

	var (
		tokens  []Token
		sb      strings.Builder
		state   = stateInitial
		quoted  bool
		started bool
	)

	emit := func() {
		// A token with no content is only kept when it was explicitly quoted
		// ("" or '').
		if sb.Len() > 0 || quoted {
			tokens = append(tokens, Token{Text: sb.String(), Quoted: quoted})
		}
		sb.Reset()
		quoted = false
		started = false
	}

	for _, r := range line {
		switch state {
		case stateInitial:
			switch {
			case unicode.IsSpace(r):
				// skip
			case r == '"':
				state = stateInDoubleQuote
				quoted = true
				started = true
			case r == '\'':
				state = stateInSingleQuote
				quoted = true
				started = true
			default:
				sb.WriteRune(r)
				state = stateInToken
				started = true
			}

		case stateInToken:
			switch {
			case unicode.IsSpace(r):
				emit()
				state = stateInitial
			case r == '"':
				state = stateInDoubleQuote
				quoted = true
			case r == '\'':
				state = stateInSingleQuote
				quoted = true
			default:
				sb.WriteRune(r)
			}

		case stateInSingleQuote:
			if r == '\'' {
				state = stateInToken
			} else {
				sb.WriteRune(r)
			}

		case stateInDoubleQuote:
			switch r {
			case '"':
				state = stateInToken
			case '\\':
				state = stateEscapeInDoubleQuote
			default:
				sb.WriteRune(r)
			}

		case stateEscapeInDoubleQuote:
			esc, ok := resolveEscape(r)
			if !ok {
				return nil, fmt.Errorf("%w: \\%c", ErrInvalidEscape, r)
			}
			sb.WriteRune(esc)
			state = stateInDoubleQuote
		}
	}

	switch state {
	case stateInSingleQuote, stateInDoubleQuote:
		return nil, ErrUnclosedQuote
	case stateEscapeInDoubleQuote:
		return nil, fmt.Errorf("%w: dangling backslash", ErrInvalidEscape)
	}

	if started {
		emit()
	}

	return tokens, nil
}

// resolveEscape maps an escape character inside double quotes to its literal
// value. The accepted set is closed; anything else is a lexical error.
func resolveEscape(r rune) (rune, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	default:
		return 0, false
	}
}
