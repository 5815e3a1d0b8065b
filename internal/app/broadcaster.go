package app

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Broadcaster turns registry state changes into delivery plans.
// It never sends anything itself.
type Broadcaster struct {
	reg *Registry
}

func NewBroadcaster(reg *Registry) *Broadcaster {
	return &Broadcaster{reg: reg}
}

// PlanJoin plans, in order: a welcome to the newcomer, a join notice to every
// other member of the room, then the post-join snapshot to everyone.
func (b *Broadcaster) PlanJoin(m domain.Member) core.Plan {
	members := b.reg.roomOf(m.Room)
	others := lo.Filter(members, func(o domain.Member, _ int) bool { return o.Conn != m.Conn })

	plan := make(core.Plan, 0, 1+len(others)+len(members))
	plan = plan.Add(domain.Welcome(m.Name), m.Conn)
	plan = plan.Add(domain.Joined(m.Name), conns(others)...)
	plan = plan.Add(snapshot(members), conns(members)...)
	b.trace("join", m, plan)
	return plan
}

// PlanMessage relays text to every member of the sender's room, sender included.
func (b *Broadcaster) PlanMessage(sender domain.ConnID, text string) (core.Plan, error) {
	from, members, ok := b.reg.lookupWithRoom(sender)
	if !ok {
		return nil, domain.ErrNotFound
	}
	plan := make(core.Plan, 0, len(members)).Add(domain.Chat(from.Name, text), conns(members)...)
	b.trace("message", from, plan)
	return plan, nil
}

// PlanLeave removes conn and plans a leave notice then a fresh snapshot for
// the remaining members. Nothing goes to the departing connection. An
// unknown conn yields an empty plan and false.
func (b *Broadcaster) PlanLeave(conn domain.ConnID) (core.Plan, bool) {
	gone, remaining, ok := b.reg.removeWithRoom(conn)
	if !ok {
		return nil, false
	}
	plan := planDeparture(gone, remaining, true)
	b.trace("leave", gone, plan)
	return plan, true
}

// PlanMove plans a completed Registry.Move: departure from the old room,
// then a regular join into the new one. A rename inside the same room skips
// the intermediate snapshot since the join snapshot supersedes it.
func (b *Broadcaster) PlanMove(prev, next domain.Member) core.Plan {
	sameRoom := prev.Room == next.Room
	remaining := lo.Filter(b.reg.roomOf(prev.Room), func(o domain.Member, _ int) bool { return o.Conn != prev.Conn })
	plan := planDeparture(prev, remaining, !sameRoom)
	plan = append(plan, b.PlanJoin(next)...)
	b.trace("move", next, plan)
	return plan
}

func planDeparture(gone domain.Member, remaining []domain.Member, withSnapshot bool) core.Plan {
	plan := make(core.Plan, 0, 2*len(remaining))
	plan = plan.Add(domain.Left(gone.Name), conns(remaining)...)
	if withSnapshot {
		plan = plan.Add(snapshot(remaining), conns(remaining)...)
	}
	return plan
}

func (b *Broadcaster) trace(op string, m domain.Member, plan core.Plan) {
	log.Debug().Str("module", "app.broadcaster").Str("op", op).Str("conn", string(m.Conn)).Str("room", string(m.Room)).Int("deliveries", len(plan)).Msg("planned")
}

func conns(members []domain.Member) []domain.ConnID {
	return lo.Map(members, func(m domain.Member, _ int) domain.ConnID { return m.Conn })
}

func snapshot(members []domain.Member) domain.Event {
	return domain.RoomMembers(lo.Map(members, func(m domain.Member, _ int) domain.MemberView { return m.View() }))
}
