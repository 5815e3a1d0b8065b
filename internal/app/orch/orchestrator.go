package orch

import (
	"sync"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the dispatch layer between the gateway and the core.
// Every inbound event is planned and enqueued under one mutex, so the order
// clients observe matches the order the registry applied the changes.
// Enqueueing never touches the network.
type Orchestrator struct {
	Registry    *app.Registry
	Broadcaster *app.Broadcaster
	Sessions    *app.Sessions
	Policy      app.Policy
	Messages    app.MessagePolicy
	Codec       core.Encoder

	mu sync.Mutex
}

func New(reg *app.Registry, sessions *app.Sessions, codec core.Encoder) *Orchestrator {
	return &Orchestrator{
		Registry:    reg,
		Broadcaster: app.NewBroadcaster(reg),
		Sessions:    sessions,
		Policy:      app.SimplePolicy{},
		Codec:       codec,
	}
}

// deliver enqueues every delivery of plan. Callers hold o.mu.
func (o *Orchestrator) deliver(plan core.Plan) {
	sent, dropped := 0, 0
	for _, d := range plan {
		sess, ok := o.Sessions.Get(d.To)
		if !ok {
			log.Debug().Str("module", "orch").Str("conn", string(d.To)).Msg("no session, delivery skipped")
			continue
		}
		frame, err := o.Codec.Encode(d.Event)
		if err != nil {
			log.Error().Err(err).Str("module", "orch").Str("kind", string(d.Event.Kind)).Msg("encode event")
			continue
		}
		if err := sess.Signal.TrySend(frame); err != nil {
			dropped++
			o.onBackPressure(d.To, err)
			continue
		}
		sent++
	}
	log.Debug().Str("module", "orch").Int("sent_to", sent).Int("dropped", dropped).Msg("plan delivered")
}

// onBackPressure never re-plans: a kicked connection is cancelled and comes
// back through Disconnect on its own goroutine.
func (o *Orchestrator) onBackPressure(conn domain.ConnID, cause error) {
	log.Warn().Err(cause).Str("module", "orch").Str("conn", string(conn)).Msg("delivery failed")
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(conn) {
	case app.KickMember:
		o.Sessions.Cancel(conn)
	case app.DropFrame, app.NoAction:
	}
}
