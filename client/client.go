// Package client implements the thin chat client: dial the server, name
// ourselves, pump input lines as messages, and render pushed commands.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"

	"chat-go/domain"
	"chat-go/protocol"
)

type Client struct {
	name     string
	addr     string
	log      *slog.Logger
	renderer *Renderer
}

func New(log *slog.Logger, name, server string, port int, out io.Writer) *Client {
	return &Client{
		name:     name,
		addr:     fmt.Sprintf("%s:%d", server, port),
		log:      log,
		renderer: NewRenderer(out),
	}
}

// Run connects, sends the naming command first, then relays input lines as
// chat messages until input ends or the transport fails. Server pushes are
// rendered from a separate goroutine in receipt order.
func (c *Client) Run(ctx context.Context, input io.Reader) error {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.receiveLoop(conn)
	}()

	if err := c.send(conn, protocol.SetName(c.name)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		if err := c.send(conn, protocol.SendMessage(domain.NewText(text))); err != nil {
			return err
		}
	}

	_ = conn.Close()
	<-done
	return scanner.Err()
}

// receiveLoop decodes server pushes until the transport closes. Unknown
// lines are logged and skipped; the server is trusted but future-proofing
// costs nothing here.
func (c *Client) receiveLoop(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		cmd, err := protocol.DecodeServer(scanner.Text())
		if err != nil {
			c.log.Warn("unknown server command", "line", scanner.Text())
			continue
		}
		c.renderer.Render(cmd)
	}
}

func (c *Client) send(conn net.Conn, cmd protocol.ClientCommand) error {
	line, err := protocol.EncodeClient(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(conn, line)
	return err
}
