package app

import (
	"fmt"
	"unicode/utf8"

	"github.com/dkeye/Relay/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a connection whose outbound queue is full.
type Policy interface {
	OnBackPressure(conn domain.ConnID) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.ConnID) BackpressureAction {
	return KickMember
}

// MessagePolicy may veto a chat message before it is planned.
type MessagePolicy interface {
	Check(from domain.Member, text string) error
}

// MaxLengthPolicy rejects messages longer than Max runes. Max <= 0 allows anything.
type MaxLengthPolicy struct {
	Max int
}

func (p MaxLengthPolicy) Check(_ domain.Member, text string) error {
	if p.Max <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(text); n > p.Max {
		return fmt.Errorf("%w: %d characters, limit is %d", domain.ErrMessageRejected, n, p.Max)
	}
	return nil
}
