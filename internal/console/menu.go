package console

import (
	"context"
	"strconv"

	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/save"
)

// ChooseDifficulty asks for easy, medium or hard.
func (c *Console) ChooseDifficulty(ctx context.Context) (models.Difficulty, error) {
	for {
		c.printf("\n%s\n", c.accent.Sprint("=== UNO - Difficulty ==="))
		c.printf("1. Easy\n2. Medium\n3. Hard\n")
		c.printf("Choose difficulty (1-3): ")

		line, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		if d, err := models.ParseDifficulty(line); err == nil {
			return d, nil
		}
		c.printf("%s\n", c.warn.Sprint("Invalid choice, try again."))
	}
}

// ChooseSave offers the listed snapshots. It returns "" when the player wants
// a new game or there is nothing to load.
func (c *Console) ChooseSave(ctx context.Context, entries []save.Entry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	ok, err := c.Confirm(ctx, "Load a saved game")
	if err != nil || !ok {
		return "", err
	}
	for {
		c.printf("\n%s\n", c.accent.Sprint("Saved games:"))
		for i, e := range entries {
			c.printf("%2d. %s\n", i+1, e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		}
		c.printf("Choose a save (1-%d) or 0 for a new game: ", len(entries))

		line, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 0 && n <= len(entries) {
			if n == 0 {
				return "", nil
			}
			return entries[n-1].ID, nil
		}
		c.printf("%s\n", c.warn.Sprint("Invalid choice, try again."))
	}
}

// Message prints a line of plain text.
func (c *Console) Message(msg string) {
	c.printf("%s\n", msg)
}
