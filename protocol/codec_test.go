package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat-go/domain"
	"chat-go/errors"
)

func TestEncodeClient(t *testing.T) {
	req := require.New(t)

	line, err := EncodeClient(SetName("alice"))
	req.NoError(err)
	req.Equal(`{"SetName":"alice"}`, line)

	line, err = EncodeClient(SendMessage(domain.NewText("hi")))
	req.NoError(err)
	req.Equal(`{"SendMessage":{"Text":"hi"}}`, line)
}

func TestEncodeServer(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		cmd      ServerCommand
		expected string
	}{
		{
			name:     "user message is a two element array",
			cmd:      NewUserMessage("bob", domain.NewText("hello")),
			expected: `{"UserMessage":["bob",{"Text":"hello"}]}`,
		},
		{
			name:     "server message",
			cmd:      NewServerMessage("Welcome, bob!"),
			expected: `{"ServerMessage":{"Text":"Welcome, bob!"}}`,
		},
		{
			name: "user list entries are pairs",
			cmd: NewUserList([]UserEntry{
				{Name: "alice", Addr: "127.0.0.1:50001"},
				{Name: "bob", Addr: "127.0.0.1:50002"},
			}),
			expected: `{"UserList":[["alice","127.0.0.1:50001"],["bob","127.0.0.1:50002"]]}`,
		},
		{
			name:     "empty user list stays a list",
			cmd:      NewUserList(nil),
			expected: `{"UserList":[]}`,
		},
		{
			name:     "error reply",
			cmd:      NewError("What's that?"),
			expected: `{"Error":"What's that?"}`,
		},
		{
			name:     "server name",
			cmd:      NewServerName("devserver"),
			expected: `{"ServerName":"devserver"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := EncodeServer(tt.cmd)
			req.NoError(err)
			req.Equal(tt.expected, line)
		})
	}
}

func TestDecodeClient(t *testing.T) {
	req := require.New(t)

	cmd, err := DecodeClient(`{"SetName":"alice"}`)
	req.NoError(err)
	req.NotNil(cmd.SetName)
	req.Equal("alice", *cmd.SetName)
	req.Nil(cmd.SendMessage)

	cmd, err = DecodeClient(`{"SendMessage":{"Text":"hi"}}`)
	req.NoError(err)
	req.NotNil(cmd.SendMessage)
	req.Equal("hi", cmd.SendMessage.Text)

	// Present but empty name decodes fine; ignoring it is the handler's job.
	cmd, err = DecodeClient(`{"SetName":""}`)
	req.NoError(err)
	req.NotNil(cmd.SetName)
	req.Empty(*cmd.SetName)
}

func TestDecodeClient_Malformed(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		line string
	}{
		{name: "not json", line: "hello there"},
		{name: "wrong payload type", line: `{"SetName":42}`},
		{name: "unknown variant", line: `{"Shout":"hi"}`},
		{name: "no variant", line: `{}`},
		{name: "two variants", line: `{"SetName":"a","SendMessage":{"Text":"x"}}`},
		{name: "null variant", line: `{"SetName":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClient(tt.line)
			req.ErrorIs(err, errors.ErrMalformedCommand)
		})
	}
}

func TestDecodeServer(t *testing.T) {
	req := require.New(t)

	cmd, err := DecodeServer(`{"UserMessage":["alice",{"Text":"hi"}]}`)
	req.NoError(err)
	req.NotNil(cmd.UserMessage)
	req.Equal("alice", cmd.UserMessage.User)
	req.Equal("hi", cmd.UserMessage.Msg.Text)

	cmd, err = DecodeServer(`{"UserList":[["alice","127.0.0.1:50001"]]}`)
	req.NoError(err)
	req.NotNil(cmd.UserList)
	req.Len(*cmd.UserList, 1)
	req.Equal(UserEntry{Name: "alice", Addr: "127.0.0.1:50001"}, (*cmd.UserList)[0])

	_, err = DecodeServer(`{"UserMessage":["alice"]}`)
	req.ErrorIs(err, errors.ErrMalformedCommand)
}

func TestEncodeRejectsMultipleVariants(t *testing.T) {
	req := require.New(t)

	name := "a"
	msg := domain.NewText("x")
	_, err := EncodeClient(ClientCommand{SetName: &name, SendMessage: &msg})
	req.Error(err)

	_, err = EncodeServer(ServerCommand{})
	req.Error(err)
}
