package services

import (
	"errors"
	"fmt"

	"gridcrawl/server/models"
)

// ErrUnknownCommand is returned for input that is not a known directive.
var ErrUnknownCommand = errors.New("unknown command")

// CommandType selects what a Command does.
type CommandType int

const (
	CommandMove CommandType = iota
	CommandPass
	CommandQuit
)

// Command is one turn's directive.
type Command struct {
	Type      CommandType
	Direction Direction
	Key       byte
}

// ParseCommand reads a directive from the first byte of line.
// An empty line is treated as quit.
func ParseCommand(line string) (Command, error) {
	if len(line) == 0 {
		return Command{Type: CommandQuit}, nil
	}

	c := line[0]
	switch c {
	case 'h':
		return Command{Type: CommandMove, Direction: Left, Key: c}, nil
	case 'l':
		return Command{Type: CommandMove, Direction: Right, Key: c}, nil
	case 'k':
		return Command{Type: CommandMove, Direction: Up, Key: c}, nil
	case 'j':
		return Command{Type: CommandMove, Direction: Down, Key: c}, nil
	case ',':
		return Command{Type: CommandPass, Key: c}, nil
	case 'q':
		return Command{Type: CommandQuit, Key: c}, nil
	}
	return Command{Key: c}, fmt.Errorf("%q: %w", c, ErrUnknownCommand)
}

// Outcome is what happened on a turn.
type Outcome struct {
	Quit   bool
	Player models.Position
	Turn   int
}

// Execute applies cmd to the game. Rejected moves return the error and
// leave the turn counter alone.
func (g *Game) Execute(cmd Command) (Outcome, error) {
	switch cmd.Type {
	case CommandQuit:
		return Outcome{Quit: true, Player: g.Player().Pos, Turn: g.Turn}, nil
	case CommandPass:
	case CommandMove:
		if _, err := g.MovePlayer(cmd.Direction); err != nil {
			return Outcome{Player: g.Player().Pos, Turn: g.Turn}, err
		}
	default:
		return Outcome{Player: g.Player().Pos, Turn: g.Turn}, ErrUnknownCommand
	}

	g.Turn++
	return Outcome{Player: g.Player().Pos, Turn: g.Turn}, nil
}

// Step parses and executes one line of input.
func (g *Game) Step(line string) (Outcome, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return Outcome{Player: g.Player().Pos, Turn: g.Turn}, err
	}
	return g.Execute(cmd)
}
