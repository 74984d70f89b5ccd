package runtime

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"chat-go/errors"
	"chat-go/protocol"
)

// Lines longer than this are a protocol violation; the scanner reports
// them as a transport error and the session tears down.
const maxLineBytes = 1 << 20

type inboundResult struct {
	cmd protocol.ClientCommand
	err error
}

// Session owns one client's transport and merges two independent sources
// into a single ordered event stream: commands decoded from the network
// and events pushed into its mailbox by other sessions or the server.
type Session struct {
	conn    net.Conn
	addr    string
	writer  *bufio.Writer
	inbox   *Mailbox
	inbound chan inboundResult
	done    chan struct{}
	closed  sync.Once
	log     *slog.Logger
}

// NewSession registers a fresh mailbox for conn in the registry and starts
// the transport reader. Registration happens before any event is consumed,
// so a broadcast racing with session startup is never lost.
func NewSession(conn net.Conn, registry *Registry, log *slog.Logger) *Session {
	addr := conn.RemoteAddr().String()
	s := &Session{
		conn:    conn,
		addr:    addr,
		writer:  bufio.NewWriter(conn),
		inbox:   NewMailbox(),
		inbound: make(chan inboundResult),
		done:    make(chan struct{}),
		log:     log.With("addr", addr),
	}
	registry.Register(addr, s.inbox)
	go s.readLoop()
	return s
}

// Addr is the remote socket address, the session's identity for the whole
// connection lifetime.
func (s *Session) Addr() string {
	return s.addr
}

// readLoop decodes transport lines into inbound results. It closes the
// inbound channel on EOF or transport error, which NextEvent surfaces as
// the terminal condition. The handler may stop consuming at any moment,
// so every send races against done; a decoded line parked on the channel
// when the session closes is discarded.
func (s *Session) readLoop() {
	defer close(s.inbound)

	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		cmd, err := protocol.DecodeClient(scanner.Text())
		select {
		case s.inbound <- inboundResult{cmd: cmd, err: err}:
		case <-s.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Debug("transport closed", "err", err)
	}
}

// NextEvent blocks until either source has data and returns the next event
// in order. Mailbox items are returned with priority over pending network
// lines so internal notices are never starved by a chatty remote peer.
//
// A decode error is returned as a recoverable errors.ErrMalformedCommand;
// transport end-of-stream or failure is errors.ErrSessionClosed.
func (s *Session) NextEvent(ctx context.Context) (Event, error) {
	for {
		if ev, ok := s.inbox.TryPop(); ok {
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.inbox.Wake():
			// Re-check the mailbox from the top of the loop.
		case result, ok := <-s.inbound:
			if !ok {
				return nil, errors.ErrSessionClosed
			}
			if result.err != nil {
				return nil, result.err
			}
			return ClientEvent{Command: result.cmd}, nil
		}
	}
}

// Send encodes one server command and writes it as a single line. Only the
// owning handler goroutine writes to the transport.
func (s *Session) Send(cmd protocol.ServerCommand) error {
	line, err := protocol.EncodeServer(cmd)
	if err != nil {
		// Encoding a well-formed internal value cannot fail; this is a
		// codec/schema mismatch, not a runtime condition.
		panic(fmt.Sprintf("encode server command: %v", err))
	}
	if _, err := s.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return s.writer.Flush()
}

// Close detaches the mailbox, releases the reader, and closes the
// transport. Idempotent; safe to call after the transport already failed.
func (s *Session) Close() {
	s.closed.Do(func() {
		s.inbox.Close()
		close(s.done)
		_ = s.conn.Close()
	})
}
