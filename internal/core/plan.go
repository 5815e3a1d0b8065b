package core

import "github.com/dkeye/Relay/internal/domain"

// Plan is the ordered list of deliveries produced for a single state change.
// Producing a plan performs no I/O; transmitting it is the caller's job.
type Plan []Delivery

// Add appends ev for every recipient, preserving recipient order.
func (p Plan) Add(ev domain.Event, to ...domain.ConnID) Plan {
	for _, conn := range to {
		p = append(p, Delivery{To: conn, Event: ev})
	}
	return p
}

// For returns the events addressed to conn, in plan order.
func (p Plan) For(conn domain.ConnID) []domain.Event {
	var out []domain.Event
	for _, d := range p {
		if d.To == conn {
			out = append(out, d.Event)
		}
	}
	return out
}

// Recipients lists distinct destinations in first-seen order.
func (p Plan) Recipients() []domain.ConnID {
	seen := make(map[domain.ConnID]struct{}, len(p))
	out := make([]domain.ConnID, 0, len(p))
	for _, d := range p {
		if _, ok := seen[d.To]; ok {
			continue
		}
		seen[d.To] = struct{}{}
		out = append(out, d.To)
	}
	return out
}
