package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat-go/domain"
	"chat-go/protocol"
)

func drain(mb *Mailbox) []Event {
	var events []Event
	for {
		ev, ok := mb.TryPop()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestRegistry_BroadcastReachesAllButExcluded(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("test")

	boxes := map[string]*Mailbox{}
	for _, addr := range []string{"a:1", "b:2", "c:3"} {
		mb := NewMailbox()
		boxes[addr] = mb
		registry.Register(addr, mb)
	}

	registry.Broadcast(PeerEvent{User: "alice", Msg: domain.NewText("hi")}, "a:1")

	req.Empty(drain(boxes["a:1"]))
	req.Len(drain(boxes["b:2"]), 1)
	req.Len(drain(boxes["c:3"]), 1)
}

func TestRegistry_BroadcastToClosedMailboxIsSilent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("test")

	alive, dying := NewMailbox(), NewMailbox()
	registry.Register("a:1", alive)
	registry.Register("b:2", dying)
	dying.Close()

	registry.Broadcast(ServerEvent{Command: protocol.NewServerMessage("notice")})

	req.Len(drain(alive), 1)
	req.Empty(drain(dying))
}

func TestRegistry_UserListFiltersUnnamedPeers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("test")

	named, unnamed := NewMailbox(), NewMailbox()
	registry.Register("a:1", named)
	registry.Register("b:2", unnamed)
	registry.SetName("a:1", "alice")

	registry.BroadcastUserList()

	// Everyone receives the list, including the unnamed peer.
	for _, mb := range []*Mailbox{named, unnamed} {
		events := drain(mb)
		req.Len(events, 1)
		cmd := events[0].(ServerEvent).Command
		req.NotNil(cmd.UserList)
		req.Equal(protocol.UserList{{Name: "alice", Addr: "a:1"}}, *cmd.UserList)
	}
}

func TestRegistry_SetNameMutatesInPlace(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("test")

	registry.Register("a:1", NewMailbox())
	registry.SetName("a:1", "alice")
	registry.SetName("a:1", "alicia")

	stats := registry.Snapshot()
	req.Equal(1, stats.PeerCount)
	req.Equal([]protocol.UserEntry{{Name: "alicia", Addr: "a:1"}}, stats.Users)

	// Names are not deduplicated; addresses are the only key.
	registry.Register("b:2", NewMailbox())
	registry.SetName("b:2", "alicia")
	req.Len(registry.Snapshot().Users, 2)
}

func TestRegistry_SetNameUnknownAddrIsNoop(t *testing.T) {
	registry := NewRegistry("test")
	registry.SetName("ghost:9", "casper")
	require.Empty(t, registry.Snapshot().Users)
}

func TestRegistry_AppendGrowsHistory(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("test")

	entry := registry.Append("alice", domain.NewText("hi"))
	req.Equal("alice", entry.User)
	req.NotZero(entry.ID)
	req.False(entry.At.IsZero())

	registry.Append("bob", domain.NewText("yo"))
	history := registry.History()
	req.Len(history, 2)
	req.Equal("alice", history[0].User)
	req.Equal("bob", history[1].User)
}

func TestRegistry_DeregisterRemovesPeer(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry("test")

	mb := NewMailbox()
	registry.Register("a:1", mb)
	registry.Deregister("a:1")
	req.Equal(0, registry.Snapshot().PeerCount)

	// Deregistered peers no longer receive broadcasts.
	registry.Broadcast(ServerEvent{Command: protocol.NewServerMessage("bye")})
	req.Empty(drain(mb))

	// Double deregister must stay harmless.
	registry.Deregister("a:1")
}
