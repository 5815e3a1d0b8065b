package app

import (
	"context"
	"sync"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Session is the transport side of a connection, owned by the gateway.
type Session struct {
	Conn   domain.ConnID
	Client string
	Signal core.SignalConnection
	cancel context.CancelFunc
}

// Sessions maps live connections to their transport endpoints.
// It holds no membership state; that lives in Registry.
type Sessions struct {
	mu     sync.RWMutex
	byConn map[domain.ConnID]*Session
}

func NewSessions() *Sessions {
	return &Sessions{byConn: make(map[domain.ConnID]*Session)}
}

func (s *Sessions) Bind(conn domain.ConnID, client string, sig core.SignalConnection, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byConn[conn] = &Session{Conn: conn, Client: client, Signal: sig, cancel: cancel}
	log.Info().Str("module", "app.sessions").Str("conn", string(conn)).Str("client", client).Msg("bound session")
}

func (s *Sessions) Get(conn domain.ConnID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byConn[conn]
	return sess, ok
}

func (s *Sessions) Unbind(conn domain.ConnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byConn, conn)
	log.Info().Str("module", "app.sessions").Str("conn", string(conn)).Msg("unbind session")
}

// Cancel stops the connection's context; the gateway then tears it down and
// reports the disconnect. It never blocks.
func (s *Sessions) Cancel(conn domain.ConnID) bool {
	s.mu.RLock()
	sess, ok := s.byConn[conn]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if sess.cancel != nil {
		sess.cancel()
	}
	log.Info().Str("module", "app.sessions").Str("conn", string(conn)).Msg("canceled session")
	return true
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byConn)
}
