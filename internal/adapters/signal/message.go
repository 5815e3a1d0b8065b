package signal

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// messagePayload text is relayed verbatim, empty included; length is a MessagePolicy concern.
type messagePayload struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (ctl *SignalWSController) handleSendMessage(
	conn domain.ConnID,
	c core.SignalConnection,
	data []byte,
) {
	var p messagePayload
	if err := ctl.codec.Decode(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad sendMessage payload")
		ctl.sendError(c, "sendMessage", "bad_payload")
		return
	}
	if !ctl.limiter.Allow(conn) {
		log.Warn().Str("module", "signal").Str("conn", string(conn)).Msg("rate limited")
		ctl.sendError(c, "sendMessage", domain.UserMessage(domain.ErrRateLimited))
		return
	}
	if err := ctl.Orch.SendMessage(conn, p.Text); err != nil {
		ctl.sendError(c, "sendMessage", domain.UserMessage(err))
		return
	}
	ctl.sendJSON(c, map[string]any{
		"type":  "ack",
		"event": "sendMessage",
	})
}
