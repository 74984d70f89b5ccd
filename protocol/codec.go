package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"chat-go/errors"
)

// EncodeClient serializes a client command to one wire line (without the
// trailing newline). A serialization failure here means the command value
// itself is broken, which callers treat as a programming error.
func EncodeClient(cmd ClientCommand) (string, error) {
	return encode(cmd, countClientVariants(cmd))
}

// EncodeServer serializes a server command to one wire line.
func EncodeServer(cmd ServerCommand) (string, error) {
	return encode(cmd, countServerVariants(cmd))
}

// DecodeClient parses one line into a client command. Malformed input is
// reported as errors.ErrMalformedCommand so sessions can answer the client
// instead of dying.
func DecodeClient(line string) (ClientCommand, error) {
	var cmd ClientCommand
	if err := json.Unmarshal([]byte(line), &cmd); err != nil {
		return ClientCommand{}, fmt.Errorf("%w: %v", errors.ErrMalformedCommand, err)
	}
	if countClientVariants(cmd) != 1 {
		return ClientCommand{}, fmt.Errorf("%w: expected exactly one command variant", errors.ErrMalformedCommand)
	}
	return cmd, nil
}

// DecodeServer parses one line into a server command.
func DecodeServer(line string) (ServerCommand, error) {
	var cmd ServerCommand
	if err := json.Unmarshal([]byte(line), &cmd); err != nil {
		return ServerCommand{}, fmt.Errorf("%w: %v", errors.ErrMalformedCommand, err)
	}
	if countServerVariants(cmd) != 1 {
		return ServerCommand{}, fmt.Errorf("%w: expected exactly one command variant", errors.ErrMalformedCommand)
	}
	return cmd, nil
}

func encode(cmd any, variants int) (string, error) {
	if variants != 1 {
		return "", fmt.Errorf("command must carry exactly one variant, got %d", variants)
	}
	bytes, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	line := string(bytes)
	// encoding/json escapes control characters inside strings, so an
	// embedded newline can only come from a broken custom marshaler.
	if strings.ContainsAny(line, "\r\n") {
		return "", errors.ErrEmbeddedNewline
	}
	return line, nil
}

func countClientVariants(cmd ClientCommand) int {
	count := 0
	if cmd.SetName != nil {
		count++
	}
	if cmd.SendMessage != nil {
		count++
	}
	return count
}

func countServerVariants(cmd ServerCommand) int {
	count := 0
	if cmd.UserMessage != nil {
		count++
	}
	if cmd.ServerMessage != nil {
		count++
	}
	if cmd.UserList != nil {
		count++
	}
	if cmd.Error != nil {
		count++
	}
	if cmd.ServerName != nil {
		count++
	}
	return count
}
