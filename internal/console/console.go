// Package console is the line-oriented terminal front end: it reads
// answers from an input stream and writes prompts and feedback to an
// output stream.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/prompt"
	"github.com/abhisek/drill/internal/ui/theme"
)

// clearScreen moves the cursor home and clears the display.
const clearScreen = "\033[H\033[2J"

// AskFunc reads one answer interactively. It is prompt.Ask in TUI mode.
type AskFunc func(ctx context.Context, in io.Reader, out io.Writer, req prompt.Request) (string, error)

// Options configures a Console.
type Options struct {
	In    io.Reader
	Out   io.Writer
	Clear bool // clear the screen before menus and questions
	TUI   bool // read answers through the Bubble Tea prompt
	Ask   AskFunc
}

// Console reads lines from In and writes to Out.
type Console struct {
	src   io.Reader
	in    *bufio.Reader
	out   io.Writer
	clear bool
	tui   bool
	ask   AskFunc
}

// New returns a Console for opts.
func New(opts Options) *Console {
	ask := opts.Ask
	if ask == nil {
		ask = prompt.Ask
	}
	return &Console{
		src:   opts.In,
		in:    bufio.NewReader(opts.In),
		out:   opts.Out,
		clear: opts.Clear,
		tui:   opts.TUI,
		ask:   ask,
	}
}

// Out returns the output stream.
func (c *Console) Out() io.Writer {
	return c.out
}

// Clear clears the screen when enabled.
func (c *Console) Clear() {
	if c.clear {
		fmt.Fprint(c.out, clearScreen)
	}
}

// Println writes a line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted text.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Line writes a pre-rendered line, downsampling colors to what Out supports.
func (c *Console) Line(s string) {
	lipgloss.Fprintln(c.out, s)
}

// Styled writes s rendered with style, followed by a newline.
func (c *Console) Styled(style lipgloss.Style, s string) {
	c.Line(style.Render(s))
}

// Error writes err as a highlighted line.
func (c *Console) Error(err error) {
	c.Styled(theme.Incorrect, "Error: "+err.Error())
}

// ReadLine reads one line without its trailing newline. It returns io.EOF
// when the input is exhausted.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
		// last line without a newline
	case errors.Is(err, io.EOF):
		return "", io.EOF
	default:
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptInput is the reader handed to the TUI prompt. Input already
// buffered by ReadLine must be consumed first; otherwise the prompt gets
// the original stream so a terminal can be put in raw mode.
func (c *Console) promptInput() io.Reader {
	if c.in.Buffered() > 0 {
		return c.in
	}
	return c.src
}

// Prompt writes text and reads the reply.
func (c *Console) Prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(c.out, text)
	return c.ReadLine(ctx)
}

// Confirm asks a yes/no question. Only "y" or "yes" confirm.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	reply, err := c.Prompt(ctx, question+" (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Pause waits for Enter. End of input counts as Enter.
func (c *Console) Pause(ctx context.Context) error {
	_, err := c.Prompt(ctx, "Press Enter to continue...")
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		return nil
	}
	return err
}
