// Package protocol defines the wire commands exchanged between client and
// server and the line codec that frames them.
//
// Every command travels as a single line of UTF-8 text holding one JSON
// value. The value is externally tagged: an object with exactly one key,
// the variant name, mapping to the variant payload.
package protocol

import (
	"encoding/json"
	"fmt"

	"chat-go/domain"
)

// ClientCommand is a request from a client. Exactly one field is non-nil.
type ClientCommand struct {
	SetName     *string         `json:"SetName,omitempty"`
	SendMessage *domain.Message `json:"SendMessage,omitempty"`
}

// SetName builds the naming command.
func SetName(name string) ClientCommand {
	return ClientCommand{SetName: &name}
}

// SendMessage builds the chat command.
func SendMessage(msg domain.Message) ClientCommand {
	return ClientCommand{SendMessage: &msg}
}

// ServerCommand is a push from the server. Exactly one field is non-nil.
type ServerCommand struct {
	UserMessage   *UserMessage    `json:"UserMessage,omitempty"`
	ServerMessage *domain.Message `json:"ServerMessage,omitempty"`
	UserList      *UserList       `json:"UserList,omitempty"`
	Error         *string         `json:"Error,omitempty"`
	ServerName    *string         `json:"ServerName,omitempty"`
}

// NewUserMessage wraps a relayed peer message.
func NewUserMessage(user domain.User, msg domain.Message) ServerCommand {
	return ServerCommand{UserMessage: &UserMessage{User: user, Msg: msg}}
}

// NewServerMessage wraps a system notice.
func NewServerMessage(text string) ServerCommand {
	msg := domain.NewText(text)
	return ServerCommand{ServerMessage: &msg}
}

// NewUserList wraps a presence snapshot. An empty snapshot stays a list
// on the wire, never null.
func NewUserList(entries []UserEntry) ServerCommand {
	list := UserList(entries)
	if list == nil {
		list = UserList{}
	}
	return ServerCommand{UserList: &list}
}

// NewError wraps an error reply.
func NewError(text string) ServerCommand {
	return ServerCommand{Error: &text}
}

// NewServerName wraps the server display name notice.
func NewServerName(name string) ServerCommand {
	return ServerCommand{ServerName: &name}
}

// UserMessage is a relayed chat message. On the wire it is the two element
// array ["<user>", {"Text": "<content>"}].
type UserMessage struct {
	User domain.User
	Msg  domain.Message
}

func (u UserMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{u.User, u.Msg})
}

func (u *UserMessage) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw[0] == nil || raw[1] == nil {
		return fmt.Errorf("user message needs two elements")
	}
	if err := json.Unmarshal(raw[0], &u.User); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &u.Msg)
}

// UserEntry is one presence row. On the wire it is ["<name>", "<addr>"].
type UserEntry struct {
	Name domain.User
	Addr string
}

func (e UserEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Name, e.Addr})
}

func (e *UserEntry) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	e.Name, e.Addr = pair[0], pair[1]
	return nil
}

// UserList is the full presence snapshot, filtered to named users.
type UserList []UserEntry
