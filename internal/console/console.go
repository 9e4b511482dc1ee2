// Package console is the line-based front end used with --plain.
package console

import (
	"bufio"
	"context"
	errs "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DaanHessen/castaway/internal/command"
	"github.com/DaanHessen/castaway/internal/engine"
	"github.com/DaanHessen/castaway/internal/game"
	"github.com/DaanHessen/castaway/internal/text"
)

var errInputClosed = errs.New("input closed")

// Console reads answers line by line and prints the game as plain text.
type Console struct {
	runner   *game.Runner
	narrator text.Narrator
	in       *bufio.Scanner
	out      io.Writer
}

func New(r *game.Runner, in io.Reader, out io.Writer) *Console {
	return &Console{
		runner:   r,
		narrator: text.NewPlainNarrator(r.Engine().Actions()),
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run plays games until the player declines a replay, quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		again, err := c.playOnce(ctx)
		if errs.Is(err, errInputClosed) {
			c.println("\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (c *Console) playOnce(ctx context.Context) (bool, error) {
	banner := strings.Repeat("=", 50)
	c.println("\n" + banner)
	c.println("WELCOME TO SURVIVE ISLAND")
	c.println(banner)

	load, err := c.ask("\nDo you want to load a saved game? (y/n): ")
	if err != nil {
		return false, err
	}
	var resumed game.Resumed
	if strings.EqualFold(load, "y") {
		resumed, err = c.runner.Resume(ctx)
		if err != nil {
			return false, err
		}
		c.println("\n" + resumed.Notice)
	}
	player := resumed.Player
	if !resumed.Found {
		name, err := c.ask("\nEnter your name: ")
		if err != nil {
			return false, err
		}
		player = engine.NewPlayer(strings.TrimSpace(name))
		c.printf("\nWelcome, %s! Good luck!\n\n", player.Name)
	}
	target := resumed.DayTarget
	if target == 0 {
		if target, err = c.askTarget(); err != nil {
			return false, err
		}
	}
	s, err := c.runner.Restore(player, target)
	if err != nil {
		return false, err
	}
	c.println("\n" + text.Goal(target))
	c.println(banner + "\n")

	if s.Status.Terminal() {
		c.finish(ctx, s)
		return c.askReplay()
	}
	for {
		c.println(c.narrator.Status(s.Player, s.DayTarget))
		sel, err := c.askAction()
		if errs.Is(err, errInputClosed) {
			if res, _ := c.runner.Play(ctx, command.SaveAndQuit); res.Err != nil {
				c.printf("\nError saving game: %v\n", res.Err)
			}
			return false, err
		}
		if err != nil {
			return false, err
		}
		res, err := c.runner.Play(ctx, sel)
		if err != nil {
			return false, err
		}
		if res.Quit {
			if !res.Saved {
				c.printf("\nError saving game: %v\n", res.Err)
				return false, nil
			}
			c.println("\nGame saved! See you next time!")
			return false, nil
		}
		c.println("\n" + c.narrator.Turn(*res.Report))
		if res.Err != nil {
			c.printf("Error saving game: %v\n", res.Err)
		}
		if res.Over() {
			c.println(c.narrator.Ending(s))
			return c.askReplay()
		}
	}
}

func (c *Console) finish(ctx context.Context, s *engine.Session) {
	c.println(c.narrator.Ending(s))
	if err := c.runner.Finish(ctx); err != nil {
		c.printf("Error deleting save file: %v\n", err)
	}
}

func (c *Console) askTarget() (int, error) {
	for {
		raw, err := c.ask("How many days do you think you can survive? (10-50): ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			c.println("Please enter a valid number.")
			continue
		}
		if engine.ValidateDayTarget(n) != nil {
			c.println("Please enter a number between 10 and 50.")
			continue
		}
		return n, nil
	}
}

func (c *Console) askAction() (command.Selector, error) {
	c.println("What do you want to do?")
	for _, e := range command.Menu() {
		c.printf("%s - %s\n", e.Key, e.Label)
	}
	for {
		raw, err := c.ask("\nYour choice (1-5): ")
		if err != nil {
			return command.Selector{}, err
		}
		sel, err := command.Parse(raw)
		if err == nil {
			return sel, nil
		}
		c.println("Invalid choice. Please enter 1, 2, 3, 4, or 5.")
	}
}

func (c *Console) askReplay() (bool, error) {
	ans, err := c.ask("\nDo you want to play again? (y/n): ")
	if err != nil {
		return false, err
	}
	if strings.EqualFold(ans, "y") {
		return true, nil
	}
	c.println("\nThanks for playing! See you next time!")
	return false, nil
}

func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) println(s string) { fmt.Fprintln(c.out, s) }
func (c *Console) printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }
