package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Trim and lower", input: "  Alice \t", expected: "alice"},
		{name: "Already normalized", input: "general", expected: "general"},
		{name: "Inner spaces kept", input: " Big Room ", expected: "big room"},
		{name: "Unicode folding", input: "ÉCOLE", expected: "école"},
		{name: "Sharp s folds to ss", input: "Straße", expected: "strasse"},
		{name: "Whitespace only", input: " \n ", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNewMember_Validation(t *testing.T) {
	req := require.New(t)

	m, err := NewMember("c1", " Alice ", "General", MaxNameLen)
	req.NoError(err)
	req.Equal(Member{Conn: "c1", Name: "alice", Room: "general"}, m)

	_, err = NewMember("c1", "   ", "general", MaxNameLen)
	req.ErrorIs(err, ErrValidation)
	req.ErrorIs(err, ErrNameRequired)

	_, err = NewMember("c1", "alice", "", MaxNameLen)
	req.ErrorIs(err, ErrNameRequired)

	_, err = NewMember("c1", strings.Repeat("a", MaxNameLen+1), "general", MaxNameLen)
	req.ErrorIs(err, ErrValidation)
	req.ErrorIs(err, ErrNameTooLong)

	// Given no limit
	_, err = NewMember("c1", strings.Repeat("a", 500), "general", 0)
	req.NoError(err)
}

func TestUserMessage(t *testing.T) {
	req := require.New(t)
	req.Equal("Name and room required", UserMessage(ErrNameRequired))
	req.Equal("User already exists in this room", UserMessage(ErrConflict))
	req.Equal("Name and room are too long", UserMessage(ErrNameTooLong))
	req.Equal("Message rejected", UserMessage(errors.Join(errors.New("x"), ErrMessageRejected)))
	req.Equal("Internal error", UserMessage(errors.New("boom")))
}

func TestEvents(t *testing.T) {
	req := require.New(t)

	w := Welcome("alice")
	req.Equal(KindSystem, w.Kind)
	req.Equal(AdminName, w.User)
	req.Equal("Welcome alice!", w.Text)

	req.Equal("bob has joined the chat.", Joined("bob").Text)
	req.Equal("bob has left the chat.", Left("bob").Text)

	chat := Chat("alice", "  hi  ")
	req.Equal(Event{Kind: KindMessage, User: "alice", Text: "  hi  "}, chat)

	snap := RoomMembers(nil)
	req.Equal(KindRoomMembers, snap.Kind)
	req.NotNil(snap.Members)
	req.Empty(snap.Members)
}

func TestUserMessage_Reports_Configured_Limit(t *testing.T) {
	req := require.New(t)

	// Given a limit tighter than the default
	_, err := NewMember("c1", strings.Repeat("a", 11), "general", 10)

	// Then the error and the client message both carry it
	req.ErrorIs(err, ErrNameTooLong)
	req.ErrorIs(err, ErrValidation)
	var tooLong *TooLongError
	req.ErrorAs(err, &tooLong)
	req.Equal(10, tooLong.Max)
	req.Equal("Name and room must be at most 10 characters", UserMessage(err))
}
