package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessage_StringTrimsWhitespace(t *testing.T) {
	req := require.New(t)

	req.Equal("hello", NewText("hello\n").String())
	req.Equal("hello", NewText("  hello  ").String())
	req.Equal("", NewText("\n").String())
}

func TestMessage_WireShape(t *testing.T) {
	req := require.New(t)

	data, err := json.Marshal(NewText("hi"))
	req.NoError(err)
	req.JSONEq(`{"Text":"hi"}`, string(data))

	var msg Message
	req.NoError(json.Unmarshal([]byte(`{"Text":"yo"}`), &msg))
	req.Equal("yo", msg.Text)
}
