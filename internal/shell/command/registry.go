package command

// FlagDef declares one flag accepted by a command. Immutable once attached
// to a Descriptor.
type FlagDef struct {
	// Name is the long flag name, matched after "--".
	Name string
	// Short is the optional single-character short name, matched after "-".
	// Zero means no short form.
	Short byte
	// Kind is the declared value type. Bool flags take no value token.
	Kind Kind
	// Required marks the flag as mandatory for a successful parse.
	Required bool
	// Description is shown in help output.
	Description string
}

// Handler executes a successfully parsed command and reports its outcome.
// A handler must not retain the ParsedCommand past its own return.
type Handler func(*ParsedCommand) Result

// Descriptor is the registered schema and handler for one command name.
type Descriptor struct {
	// Name is the unique command name players type.
	Name string
	// Description is the one-line summary for command listings.
	Description string
	// Usage shows the invocation syntax (e.g. "harvest [--count <n>]").
	Usage string
	// HelpText is the long-form help shown by "help <name>".
	HelpText string
	// Flags is the ordered flag schema.
	Flags []FlagDef
	// MinArgs is the minimum number of positional arguments.
	MinArgs uint
	// MaxArgs is the maximum number of positional arguments; 0 = unbounded.
	MaxArgs uint
	// Handler is invoked with the parsed command.
	Handler Handler
	// Hidden commands are excluded from help listings and completion.
	Hidden bool
}

// flagByName returns the definition for a long flag name.
func (d *Descriptor) flagByName(name string) (*FlagDef, bool) {
	for i := range d.Flags {
		if d.Flags[i].Name == name {
			return &d.Flags[i], true
		}
	}
	return nil, false
}

// flagByShort returns the definition for a single-character short name.
func (d *Descriptor) flagByShort(short byte) (*FlagDef, bool) {
	for i := range d.Flags {
		if d.Flags[i].Short != 0 && d.Flags[i].Short == short {
			return &d.Flags[i], true
		}
	}
	return nil, false
}

// Registry stores command descriptors keyed by unique name. Registration
// order is preserved so enumeration (and therefore completion candidates)
// stays stable across rebuilds.
//
// The registry does not validate a descriptor's internal consistency (such
// as MinArgs > MaxArgs); descriptors are registered once at startup by
// trusted code and such mistakes belong to tests, not runtime guards.
type Registry struct {
	byName map[string]*Descriptor
	order  []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register adds a descriptor under its name.
//
// Postcondition: Returns false iff the name is already taken; the registry
// is unchanged in that case.
func (r *Registry) Register(d *Descriptor) bool {
	if d == nil || d.Name == "" {
		return false
	}
	if _, exists := r.byName[d.Name]; exists {
		return false
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return true
}

// Unregister removes the descriptor with the given name.
//
// Postcondition: Returns false iff no such command was registered.
func (r *Registry) Unregister(name string) bool {
	if _, exists := r.byName[name]; !exists {
		return false
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get looks up a descriptor by exact, case-sensitive name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns all registered command names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	return len(r.byName)
}
