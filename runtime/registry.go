package runtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-go/domain"
	"chat-go/internal"
	"chat-go/protocol"
)

// peerRecord is the registry's view of one live session: its outbound
// mailbox, its current display name, and the socket address that keys it.
type peerRecord struct {
	mailbox *Mailbox
	name    domain.User
	addr    string
}

// Registry is the single shared mutable resource of the server: the peer
// table, the server display name, and the append-only transcript. Every
// mutation is serialized under one mutex, which defines the total order of
// broadcasts. The lock is never held across a network write; broadcasting
// only pushes into mailboxes, which never blocks.
type Registry struct {
	mu         sync.Mutex
	serverName string
	history    []domain.HistoryEntry
	peers      map[string]*peerRecord
}

func NewRegistry(serverName string) *Registry {
	return &Registry{
		serverName: serverName,
		peers:      make(map[string]*peerRecord),
	}
}

// ServerName returns the display name announced to newly named clients.
func (r *Registry) ServerName() string {
	return r.serverName
}

// Register inserts a record with an empty name for a fresh connection.
// It must run before the session starts consuming events so a concurrent
// broadcast is never lost.
func (r *Registry) Register(addr string, mailbox *Mailbox) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.peers[addr] = &peerRecord{mailbox: mailbox, addr: addr}
	internal.ConnectedPeers.Inc()
}

// SetName mutates the record in place. Uniqueness is not enforced; peers
// are keyed by address, never by name.
func (r *Registry) SetName(addr string, name domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record, ok := r.peers[addr]; ok {
		record.name = name
	}
}

// Append adds one transcript entry. The transcript grows without bound;
// retention is a non-goal at this scale.
func (r *Registry) Append(user domain.User, msg domain.Message) domain.HistoryEntry {
	entry := domain.HistoryEntry{
		ID:   uuid.New(),
		User: user,
		Msg:  msg,
		At:   time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, entry)
	internal.MessagesTotal.Inc()
	return entry
}

// History returns a copy of the transcript.
func (r *Registry) History() []domain.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.HistoryEntry(nil), r.history...)
}

// Broadcast pushes an event onto the mailbox of every registered peer not
// in excludes. Pushes to closed mailboxes are dropped: the peer is already
// tearing down and will deregister itself.
func (r *Registry) Broadcast(ev Event, excludes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.broadcastLocked(ev, excludes)
}

func (r *Registry) broadcastLocked(ev Event, excludes []string) {
	internal.BroadcastsTotal.Inc()
	for addr, record := range r.peers {
		if lo.Contains(excludes, addr) {
			continue
		}
		if !record.mailbox.Push(ev) {
			internal.DroppedDeliveries.Inc()
		}
	}
}

// usersLocked lists the named peers. Unnamed connections are invisible in
// presence until their first SetName.
func (r *Registry) usersLocked() []protocol.UserEntry {
	return lo.FilterMap(lo.Values(r.peers), func(record *peerRecord, _ int) (protocol.UserEntry, bool) {
		return protocol.UserEntry{Name: record.name, Addr: record.addr}, record.name != ""
	})
}

// BroadcastUserList sends the current presence snapshot, filtered to named
// peers, to everyone. Called after every name change and disconnect, so
// presence converges within one broadcast latency.
func (r *Registry) BroadcastUserList() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.broadcastLocked(ServerEvent{Command: protocol.NewUserList(r.usersLocked())}, nil)
}

// Deregister removes the record. Called exactly once per session, on
// teardown.
func (r *Registry) Deregister(addr string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.peers[addr]; ok {
		delete(r.peers, addr)
		internal.ConnectedPeers.Dec()
	}
}

// Stats is a point-in-time snapshot for telemetry and the debug server.
type Stats struct {
	ServerName string               `json:"server_name"`
	PeerCount  int                  `json:"peer_count"`
	HistoryLen int                  `json:"history_len"`
	Users      []protocol.UserEntry `json:"users"`
}

// Snapshot observes the registry under the lock, never a stale copy.
func (r *Registry) Snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Stats{
		ServerName: r.serverName,
		PeerCount:  len(r.peers),
		HistoryLen: len(r.history),
		Users:      r.usersLocked(),
	}
}
