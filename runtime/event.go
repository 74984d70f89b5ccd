// Package runtime implements the server side of the chat service: the
// shared registry of peers, per-connection sessions, and the connection
// handler that drives the protocol state machine.
package runtime

import (
	"chat-go/domain"
	"chat-go/protocol"
)

// Event is one unit of work delivered to a session's event loop. The three
// implementations mirror the three origins a session reacts to: its own
// client, another peer, and the server itself.
type Event interface {
	sessionEvent()
}

// ClientEvent carries a command decoded from this session's transport.
type ClientEvent struct {
	Command protocol.ClientCommand
}

// PeerEvent carries a chat message broadcast by another session.
type PeerEvent struct {
	User domain.User
	Msg  domain.Message
}

// ServerEvent carries a server command to forward to the client verbatim.
type ServerEvent struct {
	Command protocol.ServerCommand
}

func (ClientEvent) sessionEvent() {}
func (PeerEvent) sessionEvent()   {}
func (ServerEvent) sessionEvent() {}
