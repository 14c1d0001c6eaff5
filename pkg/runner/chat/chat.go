package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/chat"
)

// Chat talks with Clara. With Message set it answers once; otherwise it
// reads lines from In until EOF, "quit" or "exit".
type Chat struct {
	Companion *chat.Companion
	Message   string
	In        io.Reader
	Out       io.Writer
}

func (n *Chat) Do(ctx context.Context) error {
	if n.Companion == nil {
		n.Companion = chat.New()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	name := color.New(color.FgCyan, color.Bold)

	say := func(text string) {
		reply, ok := n.Companion.Send(text)
		if !ok {
			return
		}
		_, _ = name.Fprintf(out, "%s: ", chat.Name)
		_, _ = fmt.Fprintln(out, reply)
	}

	if strings.TrimSpace(n.Message) != "" {
		say(n.Message)
		return nil
	}
	if n.In == nil {
		return errors.New("chat needs a message or an input stream")
	}

	_, _ = name.Fprintf(out, "%s: ", chat.Name)
	_, _ = fmt.Fprintln(out, "Hi, I'm Clara. Type quit to leave.")

	lines := bufio.NewScanner(n.In)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		_, _ = fmt.Fprint(out, "> ")
		if !lines.Scan() {
			_, _ = fmt.Fprintln(out, "")
			return lines.Err()
		}
		text := strings.TrimSpace(lines.Text())
		switch strings.ToLower(text) {
		case "quit", "exit":
			return nil
		}
		say(text)
	}
}
