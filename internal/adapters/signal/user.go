package signal

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

func (ctl *SignalWSController) handleWhoAmI(
	conn domain.ConnID,
	c core.SignalConnection,
) {
	resp := struct {
		Type   string             `json:"type"`
		Conn   domain.ConnID      `json:"conn"`
		Client string             `json:"client,omitempty"`
		User   domain.DisplayName `json:"user,omitempty"`
		Room   domain.RoomName    `json:"room,omitempty"`
	}{
		Type: "whoami",
		Conn: conn,
	}
	if sess, ok := ctl.Orch.Sessions.Get(conn); ok {
		resp.Client = sess.Client
	}
	if m, ok := ctl.Orch.Registry.Lookup(conn); ok {
		resp.User = m.Name
		resp.Room = m.Room
	}
	ctl.sendJSON(c, resp)
}
