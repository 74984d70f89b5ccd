package client

import (
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"chat-go/protocol"
)

// Renderer prints server commands for a terminal reader. Safe for use from
// the receive goroutine while the prompt writes elsewhere.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Render(cmd protocol.ServerCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case cmd.UserMessage != nil:
		sender := color.New(color.FgCyan).Render(fmt.Sprintf("[%s]", cmd.UserMessage.User))
		fmt.Fprintf(r.out, "%s %s\n", sender, cmd.UserMessage.Msg.String())

	case cmd.ServerMessage != nil:
		notice := color.New(color.FgGreen).Render("<SERVER>")
		fmt.Fprintf(r.out, "%s %s\n", notice, cmd.ServerMessage.String())

	case cmd.ServerName != nil:
		fmt.Fprintf(r.out, "%s connected to %q\n", color.New(color.FgGreen).Render("<SERVER>"), *cmd.ServerName)

	case cmd.UserList != nil:
		table := tablewriter.NewWriter(r.out)
		table.SetHeader([]string{"User", "Address"})
		table.SetAutoWrapText(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetBorder(false)
		for _, entry := range *cmd.UserList {
			table.Append([]string{entry.Name, entry.Addr})
		}
		table.Render()

	case cmd.Error != nil:
		fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgRed).Render("<ERROR>"), *cmd.Error)
	}
}
