// Package builtin defines the shell's built-in command set and its
// handlers. Handlers receive their collaborators through an explicit
// Context; there are no package-level globals.
package builtin

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/necroforge/necroshell/internal/game/state"
	"github.com/necroforge/necroshell/internal/shell/command"
	"github.com/necroforge/necroshell/internal/shell/history"
	"github.com/necroforge/necroshell/internal/shell/session"
)

// Context carries the collaborators handlers need. All fields must be
// non-nil when Register is called.
type Context struct {
	// State is the mutable game state.
	State *state.GameState
	// Registry is read by help for command listings.
	Registry *command.Registry
	// History is read by the history command.
	History *history.History
	// SavePath is the default save-file location.
	SavePath string
	// Logger records handler-level events.
	Logger *zap.Logger
}

// Register installs all built-in commands on the session.
//
// Precondition: sess and every Context field must be non-nil.
// Postcondition: Returns the number of commands registered.
func Register(sess *session.Session, ctx *Context) int {
	registered := 0
	for _, d := range descriptors(ctx) {
		if sess.RegisterCommand(d) {
			registered++
		}
	}
	return registered
}

func descriptors(ctx *Context) []*command.Descriptor {
	return []*command.Descriptor{
		{
			Name:        "help",
			Description: "Display help information",
			Usage:       "help [command]",
			HelpText: "Shows help for all commands or a specific command.\n" +
				"Without arguments, lists all available commands.\n" +
				"With a command name, shows detailed help for that command.",
			MaxArgs: 1,
			Handler: ctx.handleHelp,
		},
		{
			Name:        "status",
			Description: "Show the necromancer's condition",
			Usage:       "status [--verbose]",
			HelpText: "Displays resources, corruption, and minion strength.\n" +
				"Use --verbose or -v for shell internals as well.",
			Flags: []command.FlagDef{
				{Name: "verbose", Short: 'v', Kind: command.KindBool, Description: "Show detailed status information"},
			},
			MaxArgs: 0,
			Handler: ctx.handleStatus,
		},
		{
			Name:        "quit",
			Description: "Leave the shell",
			Usage:       "quit",
			HelpText:    "Exits the game gracefully.",
			MaxArgs:     0,
			Handler:     ctx.handleQuit,
		},
		{
			Name:        "exit",
			Description: "Leave the shell",
			Usage:       "exit",
			HelpText:    "Exits the game gracefully.",
			MaxArgs:     0,
			Handler:     ctx.handleQuit,
		},
		{
			Name:        "clear",
			Description: "Clear the terminal screen",
			Usage:       "clear",
			MaxArgs:     0,
			Handler:     ctx.handleClear,
		},
		{
			Name:        "echo",
			Description: "Echo arguments back",
			Usage:       "echo [words...]",
			Handler:     ctx.handleEcho,
		},
		{
			Name:        "history",
			Description: "Show recent commands",
			Usage:       "history [--search <substr>] [--limit <n>]",
			HelpText: "Lists the most recent commands, newest first.\n" +
				"--search filters to lines containing a substring.",
			Flags: []command.FlagDef{
				{Name: "search", Short: 's', Kind: command.KindString, Description: "Substring to filter by"},
				{Name: "limit", Short: 'n', Kind: command.KindInt, Description: "Maximum entries to show"},
			},
			MaxArgs: 0,
			Handler: ctx.handleHistory,
		},
		{
			Name:        "raise",
			Description: "Raise a minion from the grave",
			Usage:       "raise [--type <zombie|skeleton|wraith>] [--name <name>]",
			HelpText: "Spends mana to raise a new minion.\n" +
				"The default type is zombie; unnamed minions get a generated name.",
			Flags: []command.FlagDef{
				{Name: "type", Short: 't', Kind: command.KindString, Description: "Minion type to raise"},
				{Name: "name", Kind: command.KindString, Description: "Name for the minion"},
			},
			MaxArgs: 0,
			Handler: ctx.handleRaise,
		},
		{
			Name:        "minions",
			Description: "List raised minions",
			Usage:       "minions [--verbose]",
			Flags: []command.FlagDef{
				{Name: "verbose", Short: 'v', Kind: command.KindBool, Description: "Include IDs and loyalty"},
			},
			MaxArgs: 0,
			Handler: ctx.handleMinions,
		},
		{
			Name:        "banish",
			Description: "Release a minion back to death",
			Usage:       "banish <name-or-id>",
			MinArgs:     1,
			MaxArgs:     1,
			Handler:     ctx.handleBanish,
		},
		{
			Name:        "harvest",
			Description: "Harvest soul energy from graves",
			Usage:       "harvest [--count <n>]",
			HelpText: "Tears soul energy from fresh graves.\n" +
				"Each grave yields energy and a little corruption.",
			Flags: []command.FlagDef{
				{Name: "count", Short: 'c', Kind: command.KindInt, Description: "Number of graves to harvest"},
			},
			MaxArgs: 0,
			Handler: ctx.handleHarvest,
		},
		{
			Name:        "save",
			Description: "Save the game",
			Usage:       "save [path]",
			MaxArgs:     1,
			Handler:     ctx.handleSave,
		},
		{
			Name:        "load",
			Description: "Load a saved game",
			Usage:       "load [path]",
			MaxArgs:     1,
			Handler:     ctx.handleLoad,
		},
		{
			// Debug hook; kept out of help and completion.
			Name:   "corrupt",
			Usage:  "corrupt --amount <x>",
			Hidden: true,
			Flags: []command.FlagDef{
				{Name: "amount", Short: 'a', Kind: command.KindFloat, Required: true, Description: "Corruption to add"},
			},
			MaxArgs: 0,
			Handler: ctx.handleCorrupt,
		},
	}
}

func (ctx *Context) handleHelp(cmd *command.ParsedCommand) command.Result {
	if len(cmd.Args) == 0 {
		var b strings.Builder
		b.WriteString("Available commands:\n")
		for _, name := range ctx.Registry.Names() {
			desc, ok := ctx.Registry.Get(name)
			if !ok || desc.Hidden {
				continue
			}
			fmt.Fprintf(&b, "  %-10s %s\n", desc.Name, desc.Description)
		}
		b.WriteString("Type 'help <command>' for details.")
		return command.Ok(b.String())
	}

	name := cmd.Arg(0)
	desc, ok := ctx.Registry.Get(name)
	if !ok || desc.Hidden {
		return command.Fail(command.ErrorCommandFailed, fmt.Sprintf("no help for unknown command %q", name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", desc.Name, desc.Description)
	fmt.Fprintf(&b, "Usage: %s\n", desc.Usage)
	if desc.HelpText != "" {
		b.WriteString(desc.HelpText)
		b.WriteString("\n")
	}
	if len(desc.Flags) > 0 {
		b.WriteString("Flags:\n")
		for _, f := range desc.Flags {
			short := "    "
			if f.Short != 0 {
				short = fmt.Sprintf("-%c, ", f.Short)
			}
			fmt.Fprintf(&b, "  %s--%s (%s) %s\n", short, f.Name, f.Kind, f.Description)
		}
	}
	return command.Ok(strings.TrimRight(b.String(), "\n"))
}

func (ctx *Context) handleStatus(cmd *command.ParsedCommand) command.Result {
	res := ctx.State.Resources

	var b strings.Builder
	b.WriteString("=== Necromancer's Shell ===\n")
	fmt.Fprintf(&b, "Day %d\n", res.Day)
	fmt.Fprintf(&b, "Mana:        %d\n", res.Mana)
	fmt.Fprintf(&b, "Soul energy: %d\n", res.SoulEnergy)
	fmt.Fprintf(&b, "Corruption:  %.1f\n", res.Corruption)
	fmt.Fprintf(&b, "Minions:     %d", len(ctx.State.Minions))

	if cmd.HasFlag("verbose") {
		fmt.Fprintf(&b, "\n--- Shell ---\n")
		fmt.Fprintf(&b, "Commands registered: %d\n", ctx.Registry.Count())
		fmt.Fprintf(&b, "History: %d/%d", ctx.History.Size(), ctx.History.Capacity())
	}
	return command.Ok(b.String())
}

func (ctx *Context) handleQuit(*command.ParsedCommand) command.Result {
	return command.Exit("The darkness releases you. For now.")
}

func (ctx *Context) handleClear(*command.ParsedCommand) command.Result {
	return command.Ok("\033[2J\033[H")
}

func (ctx *Context) handleEcho(cmd *command.ParsedCommand) command.Result {
	return command.Ok(strings.Join(cmd.Args, " "))
}

func (ctx *Context) handleHistory(cmd *command.ParsedCommand) command.Result {
	limit := 10
	if v, ok := cmd.Flag("limit"); ok {
		if n, ok := v.Int(); ok && n > 0 {
			limit = int(n)
		}
	}

	var entries []string
	if v, ok := cmd.Flag("search"); ok {
		substr, _ := v.Str()
		entries = ctx.History.Search(substr)
	} else {
		for i := 0; i < ctx.History.Size(); i++ {
			entries = append(entries, ctx.History.Get(i))
		}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	if len(entries) == 0 {
		return command.Ok("history is empty")
	}

	var b strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&b, "%3d  %s\n", i+1, entry)
	}
	return command.Ok(strings.TrimRight(b.String(), "\n"))
}

func (ctx *Context) handleRaise(cmd *command.ParsedCommand) command.Result {
	minionType := state.MinionZombie
	if v, ok := cmd.Flag("type"); ok {
		s, _ := v.Str()
		minionType = state.MinionType(s)
		if !state.ValidMinionType(minionType) {
			return command.Fail(command.ErrorCommandFailed,
				fmt.Sprintf("unknown minion type %q (zombie, skeleton, wraith)", s))
		}
	}

	name := ""
	if v, ok := cmd.Flag("name"); ok {
		name, _ = v.Str()
	}

	m, err := ctx.State.RaiseMinion(minionType, name)
	if err != nil {
		return command.Fail(command.ErrorCommandFailed, err.Error())
	}
	ctx.Logger.Debug("raised minion", zap.String("id", m.ID), zap.String("type", string(m.Type)))
	return command.Ok(fmt.Sprintf("%s claws free of the earth. (%d mana remains)",
		m.Name, ctx.State.Resources.Mana))
}

func (ctx *Context) handleMinions(cmd *command.ParsedCommand) command.Result {
	if len(ctx.State.Minions) == 0 {
		return command.Ok("no minions serve you")
	}

	verbose := cmd.HasFlag("verbose")
	var b strings.Builder
	for _, m := range ctx.State.Minions {
		if verbose {
			fmt.Fprintf(&b, "%s  %-10s %-8s power=%d loyalty=%d\n", m.ID, m.Name, m.Type, m.Power, m.Loyalty)
		} else {
			fmt.Fprintf(&b, "%-10s %s\n", m.Name, m.Type)
		}
	}
	return command.Ok(strings.TrimRight(b.String(), "\n"))
}

func (ctx *Context) handleBanish(cmd *command.ParsedCommand) command.Result {
	key := cmd.Arg(0)
	if !ctx.State.BanishMinion(key) {
		return command.Fail(command.ErrorCommandFailed, fmt.Sprintf("no minion %q serves you", key))
	}
	return command.Ok(fmt.Sprintf("%s crumbles to dust.", key))
}

func (ctx *Context) handleHarvest(cmd *command.ParsedCommand) command.Result {
	count := 1
	if v, ok := cmd.Flag("count"); ok {
		n, _ := v.Int()
		count = int(n)
	}

	gained, err := ctx.State.Harvest(count)
	if err != nil {
		return command.Fail(command.ErrorCommandFailed, err.Error())
	}
	return command.Ok(fmt.Sprintf("You tear %d soul energy from %d graves. Corruption: %.1f",
		gained, count, ctx.State.Resources.Corruption))
}

func (ctx *Context) handleSave(cmd *command.ParsedCommand) command.Result {
	path := ctx.SavePath
	if cmd.Arg(0) != "" {
		path = cmd.Arg(0)
	}
	if err := ctx.State.Save(path); err != nil {
		return command.Fail(command.ErrorCommandFailed, err.Error())
	}
	return command.Ok(fmt.Sprintf("Game saved to %s", path))
}

func (ctx *Context) handleLoad(cmd *command.ParsedCommand) command.Result {
	path := ctx.SavePath
	if cmd.Arg(0) != "" {
		path = cmd.Arg(0)
	}
	loaded, err := state.Load(path)
	if err != nil {
		return command.Fail(command.ErrorCommandFailed, err.Error())
	}
	// Replace contents in place so every handler's pointer stays valid.
	*ctx.State = *loaded
	return command.Ok(fmt.Sprintf("Game loaded from %s (day %d)", path, ctx.State.Resources.Day))
}

func (ctx *Context) handleCorrupt(cmd *command.ParsedCommand) command.Result {
	v, _ := cmd.Flag("amount")
	amount, _ := v.Float()
	ctx.State.AddCorruption(amount)
	return command.Ok(fmt.Sprintf("Corruption: %.1f", ctx.State.Resources.Corruption))
}
