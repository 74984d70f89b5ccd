package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"chat-go/moderation"
)

// Server accepts connections and spawns one handler goroutine per peer.
// It implements contract.Worker so it runs under the supervisor.
type Server struct {
	log       *slog.Logger
	registry  *Registry
	moderator *moderation.Moderator
	listener  net.Listener

	handlers sync.WaitGroup
}

// NewServer binds the listening socket immediately so callers learn about
// an unusable port before any worker starts.
func NewServer(log *slog.Logger, registry *Registry, moderator *moderation.Moderator, host string, port int) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("bind %s:%d: %w", host, port, err)
	}
	return &Server{
		log:       log,
		registry:  registry,
		moderator: moderator,
		listener:  listener,
	}, nil
}

// Addr is the bound listen address, useful when the port was 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Registry exposes the shared state for telemetry and the debug server.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run accepts connections until ctx is canceled. Cancellation closes the
// listener; in-flight handlers observe ctx and finish their teardown
// before Run returns.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("listening", "addr", s.listener.Addr().String())

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.handlers.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.handlers.Add(1)
		go func() {
			defer s.handlers.Done()
			s.handle(ctx, conn)
		}()
	}
}
