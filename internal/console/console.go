// Package console is the terminal front end: it asks the human player for
// decisions and renders game events as text.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jason-s-yu/uno/internal/models"
)

// Console reads answers from in and writes prompts and events to out.
// It implements game.HumanInput.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	palette map[models.Color]*color.Color
	accent  *color.Color
	warn    *color.Color
}

// Option configures a Console.
type Option func(*Console)

// WithoutColor disables ANSI colors, e.g. when out is not a terminal.
func WithoutColor() Option {
	return func(c *Console) {
		for _, col := range c.palette {
			col.DisableColor()
		}
		c.accent.DisableColor()
		c.warn.DisableColor()
	}
}

func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		in:  bufio.NewReader(in),
		out: out,
		palette: map[models.Color]*color.Color{
			models.Red:    color.New(color.FgRed, color.Bold),
			models.Blue:   color.New(color.FgBlue, color.Bold),
			models.Green:  color.New(color.FgGreen, color.Bold),
			models.Yellow: color.New(color.FgYellow, color.Bold),
			models.Wild:   color.New(color.FgWhite, color.Bold),
		},
		accent: color.New(color.FgCyan),
		warn:   color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// readLine returns the next trimmed line. io.EOF is returned once input is closed.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// NextAction prompts until the player enters a draw, a hand position or a command.
// Legality of the chosen card is left to the game.
func (c *Console) NextAction(ctx context.Context, p *models.Player, top *models.Card) (models.Action, error) {
	for {
		c.printf("\n%s\n", c.accent.Sprint("Your cards:"))
		for i, card := range p.Hand {
			marker := " "
			if models.CanPlay(card, top) {
				marker = "*"
			}
			c.printf("%s %2d. %s\n", marker, i+1, c.Card(card))
		}
		c.printf("Top card: %s\n", c.Card(top))
		if !p.HasPlayableCard(top) {
			c.printf("%s\n", c.warn.Sprint("No playable card, enter 0 to draw."))
		}
		c.printf("Choose 1-%d to play, 0 to draw, or !help: ", p.HandSize())

		line, err := c.readLine(ctx)
		if err != nil {
			return models.Action{}, err
		}

		switch strings.ToLower(line) {
		case "!save":
			return models.Action{Type: models.ActionSave}, nil
		case "!stats":
			return models.Action{Type: models.ActionStats}, nil
		case "!help":
			c.help(p)
			continue
		case "!quit":
			ok, err := c.Confirm(ctx, "Quit the game? Unsaved progress is lost")
			if err != nil {
				return models.Action{}, err
			}
			if ok {
				return models.Action{Type: models.ActionQuit}, nil
			}
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > p.HandSize() {
			c.printf("%s\n", c.warn.Sprintf("Invalid choice %q.", line))
			continue
		}
		if n == 0 {
			return models.Action{Type: models.ActionDraw}, nil
		}
		return models.PlayAction(n - 1), nil
	}
}

func (c *Console) help(p *models.Player) {
	c.printf("\n%s\n", c.accent.Sprint("Commands:"))
	c.printf("  0        draw a card\n")
	c.printf("  1-%-6d play that card (* marks playable cards)\n", p.HandSize())
	c.printf("  !save    save the game\n")
	c.printf("  !stats   show statistics\n")
	c.printf("  !help    show this help\n")
	c.printf("  !quit    leave the game\n")
}

// ChooseColor asks for the color of a played wild.
func (c *Console) ChooseColor(ctx context.Context, _ *models.Player) (models.Color, error) {
	for {
		c.printf("\nChoose a color:\n")
		for i, col := range models.Colors {
			c.printf("  %d. %s\n", i+1, c.palette[col].Sprint(col))
		}
		c.printf("Color (1-%d): ", len(models.Colors))

		line, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		if col, ok := parseColor(line); ok {
			return col, nil
		}
		c.printf("%s\n", c.warn.Sprintf("Invalid color %q.", line))
	}
}

func parseColor(s string) (models.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(models.Colors) {
			return models.Colors[n-1], true
		}
		return "", false
	}
	for _, col := range models.Colors {
		if string(col) == s {
			return col, true
		}
	}
	return "", false
}

// ConfirmPlayDrawn offers to play a legal card that was just drawn.
func (c *Console) ConfirmPlayDrawn(ctx context.Context, _ *models.Player, card *models.Card) (bool, error) {
	return c.Confirm(ctx, fmt.Sprintf("You drew %s. Play it", c.Card(card)))
}

// Confirm asks a yes/no question until it gets an answer.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		c.printf("%s? (y/n): ", question)
		line, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.printf("%s\n", c.warn.Sprint("Please answer y or n."))
	}
}

// Card formats a card in its color.
func (c *Console) Card(card *models.Card) string {
	if card == nil {
		return "-"
	}
	col, ok := c.palette[card.Color]
	if !ok {
		return "[" + card.String() + "]"
	}
	return col.Sprint("[" + card.String() + "]")
}
