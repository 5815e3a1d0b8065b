package http

import (
	"net/http"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// handlers serves read-only views derived from the registry.
type handlers struct {
	orch *orch.Orchestrator
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": h.orch.Sessions.Len(),
		"members":     h.orch.Registry.Len(),
	})
}

func (h *handlers) rooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.orch.Registry.Rooms()})
}

func (h *handlers) members(c *gin.Context) {
	members := h.orch.Registry.MembersOf(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{
		"room":    domain.Normalize(c.Param("name")),
		"members": lo.Map(members, func(m domain.Member, _ int) domain.MemberView { return m.View() }),
	})
}
