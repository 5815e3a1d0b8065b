package signal

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// joinPayload only checks presence; length limits come from the registry config.
type joinPayload struct {
	Type string `json:"type"`
	Name string `json:"name" validate:"required"`
	Room string `json:"room" validate:"required"`
}

type joinedReply struct {
	Type string             `json:"type"`
	User domain.DisplayName `json:"user"`
	Room domain.RoomName    `json:"room"`
}

// handleJoin acknowledges only after the join plan is queued, so the
// welcome and snapshot reach the client before the "joined" reply.
func (ctl *SignalWSController) handleJoin(
	conn domain.ConnID,
	c core.SignalConnection,
	data []byte,
) {
	var p joinPayload
	if err := ctl.codec.Decode(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(c, "join", "bad_payload")
		return
	}
	if err := ctl.validate.Struct(p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("join payload rejected")
		ctl.sendError(c, "join", domain.UserMessage(domain.ErrNameRequired))
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(conn)).Str("name", p.Name).Str("room", p.Room).Msg("join")
	m, err := ctl.Orch.Join(conn, p.Name, p.Room)
	if err != nil {
		ctl.sendError(c, "join", domain.UserMessage(err))
		return
	}
	ctl.sendJSON(c, joinedReply{Type: "joined", User: m.Name, Room: m.Room})
}

// handleLeave leaves the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(
	conn domain.ConnID,
	c core.SignalConnection,
) {
	left := ctl.Orch.Leave(conn)
	log.Info().Str("module", "signal").Str("conn", string(conn)).Bool("was_member", left).Msg("leave")
	ctl.sendJSON(c, map[string]any{
		"type": "left",
	})
}
