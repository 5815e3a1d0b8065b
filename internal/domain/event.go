package domain

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Kind tells the client how to render an event.
type Kind string

const (
	KindSystem      Kind = "system"
	KindMessage     Kind = "message"
	KindRoomMembers Kind = "roomMembers"
)

// Event is one outbound notification. Members is only set for KindRoomMembers.
// The tags drive decoding; encoding goes through MarshalJSON.
type Event struct {
	Kind    Kind         `json:"type"`
	User    string       `json:"user"`
	Text    string       `json:"text"`
	Members []MemberView `json:"members"`
}

type textPayload struct {
	Kind Kind   `json:"type"`
	User string `json:"user"`
	Text string `json:"text"`
}

type membersPayload struct {
	Kind    Kind         `json:"type"`
	Members []MemberView `json:"members"`
}

// MarshalJSON writes exactly the fields of e's kind, empty values included.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Kind == KindRoomMembers {
		members := e.Members
		if members == nil {
			members = []MemberView{}
		}
		return json.Marshal(membersPayload{Kind: e.Kind, Members: members})
	}
	return json.Marshal(textPayload{Kind: e.Kind, User: e.User, Text: e.Text})
}

func system(text string) Event {
	return Event{Kind: KindSystem, User: AdminName, Text: text}
}

func Welcome(name DisplayName) Event { return system(fmt.Sprintf("Welcome %s!", name)) }

func Joined(name DisplayName) Event { return system(fmt.Sprintf("%s has joined the chat.", name)) }

func Left(name DisplayName) Event { return system(fmt.Sprintf("%s has left the chat.", name)) }

// Chat relays text verbatim.
func Chat(from DisplayName, text string) Event {
	return Event{Kind: KindMessage, User: string(from), Text: text}
}

// RoomMembers is a full snapshot; an empty room yields an empty, non-nil list.
func RoomMembers(members []MemberView) Event {
	if members == nil {
		members = []MemberView{}
	}
	return Event{Kind: KindRoomMembers, Members: members}
}
