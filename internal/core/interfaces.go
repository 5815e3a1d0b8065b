package core

import "github.com/dkeye/Relay/internal/domain"

//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../../mocks/mock_core.go -package=mocks

// Frame is an encoded outbound payload.
type Frame []byte

// SignalConnection abstracts the messaging transport of one client.
// Owned by the adapter; the adapter must Close() it.
// TrySend must never block on the network.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Encoder turns an event or reply into a wire frame.
type Encoder interface {
	Encode(v any) (Frame, error)
}

// Delivery is one planned notification: who gets what.
type Delivery struct {
	To    domain.ConnID
	Event domain.Event
}
