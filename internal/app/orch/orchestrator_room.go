package orch

import (
	"errors"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join registers conn in room under name. An already active conn is moved:
// its old room sees it leave before the new room sees it join. Errors leave
// every membership untouched.
func (o *Orchestrator) Join(conn domain.ConnID, name, room string) (domain.Member, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var (
		m    domain.Member
		plan core.Plan
		err  error
	)
	if _, active := o.Registry.Lookup(conn); active {
		var prev domain.Member
		prev, m, err = o.Registry.Move(conn, name, room)
		if err == nil {
			plan = o.Broadcaster.PlanMove(prev, m)
			log.Info().Str("module", "orch").Str("conn", string(conn)).Str("from_room", string(prev.Room)).Str("room", string(m.Room)).Msg("rejoined")
		}
	} else {
		m, err = o.Registry.Register(conn, name, room)
		if err == nil {
			plan = o.Broadcaster.PlanJoin(m)
			log.Info().Str("module", "orch").Str("conn", string(conn)).Str("room", string(m.Room)).Msg("joined")
		}
	}
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("conn", string(conn)).Msg("join rejected")
		return domain.Member{}, err
	}
	o.deliver(plan)
	return m, nil
}

// SendMessage relays text to the sender's room. An unregistered sender is a
// silent no-op; only a policy veto is reported.
func (o *Orchestrator) SendMessage(conn domain.ConnID, text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.Messages != nil {
		if from, ok := o.Registry.Lookup(conn); ok {
			if err := o.Messages.Check(from, text); err != nil {
				log.Info().Err(err).Str("module", "orch").Str("conn", string(conn)).Msg("message rejected")
				return err
			}
		}
	}
	plan, err := o.Broadcaster.PlanMessage(conn, text)
	if errors.Is(err, domain.ErrNotFound) {
		log.Debug().Str("module", "orch").Str("conn", string(conn)).Msg("message from unregistered connection dropped")
		return nil
	}
	if err != nil {
		return err
	}
	o.deliver(plan)
	return nil
}

// Leave removes conn from its room but keeps the connection. It reports
// whether there was anything to leave.
func (o *Orchestrator) Leave(conn domain.ConnID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.leaveLocked(conn)
}

// OnDisconnect is the gateway's terminal notification for conn.
func (o *Orchestrator) OnDisconnect(conn domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.leaveLocked(conn)
	o.Sessions.Unbind(conn)
}

func (o *Orchestrator) leaveLocked(conn domain.ConnID) bool {
	plan, ok := o.Broadcaster.PlanLeave(conn)
	if !ok {
		return false
	}
	o.deliver(plan)
	return true
}
