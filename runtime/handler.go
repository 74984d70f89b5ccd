package runtime

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"

	"chat-go/domain"
	"chat-go/errors"
	"chat-go/protocol"
)

// Reply sent to a client whose line failed to decode.
const unknownCommandReply = "What's that?"

// handle drives one connection through the Unnamed -> Named -> Closed
// state machine. It is the only goroutine that writes to the transport.
//
// Teardown runs exactly once regardless of how the loop exits: the address
// is deregistered, a departure notice and a fresh user list are broadcast.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	session := NewSession(conn, s.registry, s.log)
	defer session.Close()

	addr := session.Addr()
	log := s.log.With("addr", addr)
	name := domain.User("")

	defer func() {
		s.registry.Deregister(addr)
		s.registry.Broadcast(ServerEvent{Command: protocol.NewServerMessage(fmt.Sprintf("%s left.", name))})
		s.registry.BroadcastUserList()
		log.Info("left", "name", name)
	}()

	log.Info("joined")

	for {
		ev, err := session.NextEvent(ctx)
		if err != nil {
			if goerrors.Is(err, errors.ErrMalformedCommand) {
				// Recoverable: answer the offender only, keep the session.
				log.Warn("malformed command", "err", err)
				if session.Send(protocol.NewError(unknownCommandReply)) != nil {
					return
				}
				continue
			}
			// Transport closed, transport failure, or shutdown.
			return
		}

		switch ev := ev.(type) {
		case ClientEvent:
			switch {
			case ev.Command.SetName != nil:
				newName := *ev.Command.SetName
				if newName == "" {
					continue
				}
				s.registry.SetName(addr, newName)
				if name == "" {
					// First successful naming: welcome everyone, introduce
					// the server to this client only.
					s.registry.Broadcast(ServerEvent{
						Command: protocol.NewServerMessage(fmt.Sprintf("Welcome, %s!", newName)),
					})
					if session.Send(protocol.NewServerName(s.registry.ServerName())) != nil {
						return
					}
				}
				s.registry.BroadcastUserList()
				name = newName
				log.Info("set name", "name", name)

			case name == "":
				// Naming gate: anything else from an unnamed client is
				// dropped without a reply.
				continue

			case ev.Command.SendMessage != nil:
				msg := *ev.Command.SendMessage
				if s.moderator != nil {
					msg = domain.NewText(s.moderator.Censor(msg.Text))
				}
				s.registry.Append(name, msg)
				s.registry.Broadcast(PeerEvent{User: name, Msg: msg}, addr)
				log.Info("message", "name", name, "text", msg.String())
			}

		case PeerEvent:
			if session.Send(protocol.NewUserMessage(ev.User, ev.Msg)) != nil {
				return
			}

		case ServerEvent:
			if session.Send(ev.Command) != nil {
				return
			}
		}
	}
}
