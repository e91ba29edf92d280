package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-telegram/bot/models"
)

const commandMarker = '/'

var (
	ErrDuplicateCommand   = errors.New("command already registered")
	ErrInvalidCommandName = errors.New("invalid command name")
)

// CommandContext carries what a handler may look at for one command.
type CommandContext struct {
	ChatID  int64
	Text    string // full message text, as received
	Command string
	Args    string
	Sender  *models.User
}

// Handler produces the reply for a command. An empty reply sends nothing.
type Handler func(c *CommandContext) string

type Command struct {
	Name        string
	Description string
	Handler     Handler
	// Hidden commands still dispatch but are left out of help and the Telegram menu.
	Hidden bool
}

// CommandTable maps command names to handlers. It is filled once at start-up
// and only read afterwards, so it carries no lock.
type CommandTable struct {
	commands map[string]Command
	order    []string
}

func NewCommandTable() *CommandTable {
	return &CommandTable{commands: make(map[string]Command)}
}

// Register adds cmd to the table. Names follow Telegram's rules for bot
// commands and must be unique.
func (t *CommandTable) Register(cmd Command) error {
	if !validCommandName(cmd.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidCommandName, cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %q has no handler", cmd.Name)
	}
	if _, exists := t.commands[cmd.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name)
	}

	t.commands[cmd.Name] = cmd
	t.order = append(t.order, cmd.Name)
	return nil
}

func (t *CommandTable) Lookup(name string) (Command, bool) {
	cmd, ok := t.commands[name]
	return cmd, ok
}

// Visible returns the non-hidden commands in registration order.
func (t *CommandTable) Visible() []Command {
	var visible []Command
	for _, name := range t.order {
		if cmd := t.commands[name]; !cmd.Hidden {
			visible = append(visible, cmd)
		}
	}
	return visible
}

// BotCommands converts the visible commands for SetMyCommands.
func (t *CommandTable) BotCommands() []models.BotCommand {
	visible := t.Visible()
	botCommands := make([]models.BotCommand, 0, len(visible))
	for _, cmd := range visible {
		botCommands = append(botCommands, models.BotCommand{
			Command:     cmd.Name,
			Description: FormatMessage(cmd.Description),
		})
	}
	return botCommands
}

// HelpText lists the visible commands, one per line.
func (t *CommandTable) HelpText() string {
	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, cmd := range t.Visible() {
		fmt.Fprintf(&sb, "\n%c%s - %s", commandMarker, cmd.Name, FormatMessage(cmd.Description))
	}
	return sb.String()
}

func validCommandName(name string) bool {
	if name == "" || len(name) > 32 {
		return false
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}

// parsedCommand is the result of parseCommand.
type parsedCommand struct {
	Name    string
	Mention string // bot username after '@', if any
	Args    string
}

// parseCommand recognises "/name", "/name args" and "/name@botname args".
// The marker must be followed immediately by the name.
func parseCommand(text string) (parsedCommand, bool) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || text[0] != commandMarker {
		return parsedCommand{}, false
	}

	head, args := text[1:], ""
	if i := strings.IndexFunc(head, unicode.IsSpace); i >= 0 {
		head, args = head[:i], strings.TrimLeftFunc(head[i:], unicode.IsSpace)
	}
	name, mention, _ := strings.Cut(head, "@")

	if name == "" {
		return parsedCommand{}, false
	}
	for _, r := range name {
		if !isWordRune(r) {
			return parsedCommand{}, false
		}
	}

	return parsedCommand{
		Name:    name,
		Mention: mention,
		Args:    strings.TrimSpace(args),
	}, true
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
}

const startReply = "Welcome to the bot! Use /help to see available commands."

// defaultCommands builds the table served by the bot.
func defaultCommands() (*CommandTable, error) {
	table := NewCommandTable()

	commands := []Command{
		{
			Name:        "start",
			Description: "start the bot",
			Handler: func(*CommandContext) string {
				return startReply
			},
		},
		{
			Name:        "help",
			Description: "show this help message",
			Handler: func(*CommandContext) string {
				return table.HelpText()
			},
		},
		{
			Name:        "echo",
			Description: "repeat your message",
			Hidden:      true,
			Handler: func(c *CommandContext) string {
				return c.Text
			},
		},
	}

	for _, cmd := range commands {
		if err := table.Register(cmd); err != nil {
			return nil, err
		}
	}
	return table, nil
}
