package e2e

import (
	"bufio"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"chat-go/domain"
	"chat-go/protocol"
)

// ChatSuite runs the naming/messaging/departure scenario against a real,
// externally started server. Set CHAT_E2E_ADDR (host:port) to enable it.
type ChatSuite struct {
	suite.Suite
	Config Config
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, new(ChatSuite))
}

func (s *ChatSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("CHAT_E2E_ADDR not set; skipping external e2e suite")
	}
}

func (s *ChatSuite) logStep(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

type peer struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func (s *ChatSuite) dial() *peer {
	conn, err := net.Dial("tcp", s.Config.ServerAddr)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = conn.Close() })
	return &peer{conn: conn, scanner: bufio.NewScanner(conn)}
}

func (s *ChatSuite) send(p *peer, cmd protocol.ClientCommand) {
	line, err := protocol.EncodeClient(cmd)
	s.Require().NoError(err)
	_, err = fmt.Fprintln(p.conn, line)
	s.Require().NoError(err)
}

func (s *ChatSuite) recv(p *peer) protocol.ServerCommand {
	s.Require().NoError(p.conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	s.Require().True(p.scanner.Scan(), "expected a server command: %v", p.scanner.Err())
	cmd, err := protocol.DecodeServer(p.scanner.Text())
	s.Require().NoError(err)
	return cmd
}

func (s *ChatSuite) TestScenario_NamedMessageExchange() {
	s.logStep("connect and name two peers")
	alice := s.dial()
	s.send(alice, protocol.SetName("e2e-alice"))

	// Join sequence: server name, welcome, user list.
	s.Require().NotNil(s.recv(alice).ServerName)
	s.Require().NotNil(s.recv(alice).ServerMessage)
	s.Require().NotNil(s.recv(alice).UserList)

	bob := s.dial()
	s.send(bob, protocol.SetName("e2e-bob"))
	s.Require().NotNil(s.recv(bob).ServerName)
	s.Require().NotNil(s.recv(bob).ServerMessage)
	s.Require().NotNil(s.recv(bob).UserList)

	// Alice observes bob's arrival.
	s.Require().NotNil(s.recv(alice).ServerMessage)
	s.Require().NotNil(s.recv(alice).UserList)

	s.logStep("exchange a message")
	s.send(alice, protocol.SendMessage(domain.NewText("hello from e2e")))
	cmd := s.recv(bob)
	s.Require().NotNil(cmd.UserMessage)
	s.Equal("e2e-alice", cmd.UserMessage.User)
	s.Equal("hello from e2e", cmd.UserMessage.Msg.String())

	s.logStep("departure")
	s.Require().NoError(bob.conn.Close())
	cmd = s.recv(alice)
	s.Require().NotNil(cmd.ServerMessage)
	s.Contains(cmd.ServerMessage.String(), "e2e-bob left.")
	s.Require().NotNil(s.recv(alice).UserList)
}
