package converse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vitaehq/converse/pkg/domain"
)

// Runner drives an Engine through an interactive line-based loop using the
// provided IO. This allows for easy testing and integration with different
// frontends (plain CLI, TUI, scripted sessions).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms message content before it is written, e.g.
// markdown to ANSI for a TUI. Render errors fall back to the raw content.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run
// (typically os.Stdin and os.Stdout).
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the conversation loop until the flow completes, the user
// types exit/quit, or input reaches EOF.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	res, err := engine.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("initialize error: %w", err)
	}
	r.printMessages(res.Messages)

	for !res.IsComplete {
		fmt.Fprint(r.Output, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Graceful exit on EOF
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		answer := strings.TrimSpace(text)

		if answer == "exit" || answer == "quit" {
			fmt.Fprintln(r.Output, "Bye!")
			return nil
		}

		res, err = engine.ProcessUserResponse(ctx, res.State, answer)
		if err != nil {
			return fmt.Errorf("conversation error: %w", err)
		}
		r.printMessages(res.Messages)
	}
	return nil
}

// printMessages writes the walk segment's output, skipping the echo of the
// user's own answer.
func (r *Runner) printMessages(msgs []domain.Message) {
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleUser:
			continue
		case domain.RoleSystem:
			if !r.Headless {
				fmt.Fprintln(r.Output, "! "+m.Content)
			}
		default:
			output := m.Content
			if r.Renderer != nil {
				if rendered, err := r.Renderer(m.Content); err == nil {
					output = rendered
				}
			}
			fmt.Fprintln(r.Output, strings.TrimSpace(output))
		}
	}
}
