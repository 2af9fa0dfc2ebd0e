package command

// ErrorKind classifies failed Results so callers can tell user-input
// mistakes apart from programmer errors.
type ErrorKind int

const (
	// ErrorNone is the kind carried by successful results.
	ErrorNone ErrorKind = iota
	// ErrorCommandFailed covers parse failures and handler-reported errors.
	ErrorCommandFailed
	// ErrorInvalidCommand means dispatch was handed a command with no
	// runnable handler.
	ErrorInvalidCommand
	// ErrorNotInitialized means the session was used before setup or after
	// Close. A programmer error, not a user-input one.
	ErrorNotInitialized
	// ErrorInternal covers everything that should never happen.
	ErrorInternal
)

// String returns the kind name for diagnostics.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorCommandFailed:
		return "command failed"
	case ErrorInvalidCommand:
		return "invalid command"
	case ErrorNotInitialized:
		return "not initialized"
	case ErrorInternal:
		return "internal error"
	default:
		return "unknown"
	}
}

// Result is the uniform outcome of every command invocation, successful or
// not. Success implies ErrorKind == ErrorNone and an empty ErrorMessage.
type Result struct {
	// Success reports whether the command completed normally.
	Success bool
	// Output is the text to show the player; may be empty.
	Output string
	// ErrorKind classifies the failure; ErrorNone on success.
	ErrorKind ErrorKind
	// ErrorMessage is the human-readable failure description.
	ErrorMessage string
	// ShouldExit asks the surrounding loop to terminate the session.
	ShouldExit bool
}

// Ok builds a successful Result with the given output.
func Ok(output string) Result {
	return Result{Success: true, Output: output}
}

// Fail builds a failed Result with the given kind and message.
func Fail(kind ErrorKind, message string) Result {
	return Result{ErrorKind: kind, ErrorMessage: message}
}

// Exit builds a successful Result that requests session termination.
func Exit(output string) Result {
	return Result{Success: true, Output: output, ShouldExit: true}
}

// Execute invokes the parsed command's handler and passes its Result
// through unchanged.
//
// Precondition: cmd must have been produced by a successful Parse; a failed
// parse must be converted to a Result by the caller and never dispatched.
// Postcondition: Returns the handler's Result, or a failed Result if the
// command has no runnable handler.
func Execute(cmd *ParsedCommand) Result {
	if cmd == nil || cmd.Descriptor == nil || cmd.Descriptor.Handler == nil {
		return Fail(ErrorInvalidCommand, "command has no handler")
	}
	return cmd.Descriptor.Handler(cmd)
}
