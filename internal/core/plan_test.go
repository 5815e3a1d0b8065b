package core

import (
	"testing"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestPlan_AddForRecipients(t *testing.T) {
	req := require.New(t)

	var plan Plan
	plan = plan.Add(domain.Welcome("alice"), "a")
	plan = plan.Add(domain.Joined("alice"), "b", "c")
	plan = plan.Add(domain.RoomMembers(nil), "a", "b", "c")

	req.Len(plan, 6)
	req.Equal([]domain.ConnID{"a", "b", "c"}, plan.Recipients())
	req.Equal([]domain.Event{domain.Welcome("alice"), domain.RoomMembers(nil)}, plan.For("a"))
	req.Empty(plan.For("z"))

	// No recipients adds nothing
	req.Len(plan.Add(domain.Left("x")), 6)
}

func TestJSONCodec_WireShape(t *testing.T) {
	req := require.New(t)
	codec := JSONCodec{}

	frame, err := codec.Encode(domain.RoomMembers([]domain.MemberView{{User: "alice"}, {User: "bob"}}))
	req.NoError(err)
	req.JSONEq(`{"type":"roomMembers","members":[{"user":"alice"},{"user":"bob"}]}`, string(frame))

	frame, err = codec.Encode(domain.Welcome("alice"))
	req.NoError(err)
	req.JSONEq(`{"type":"system","user":"admin","text":"Welcome alice!"}`, string(frame))

	frame, err = codec.Encode(domain.Chat("alice", "hi"))
	req.NoError(err)
	req.JSONEq(`{"type":"message","user":"alice","text":"hi"}`, string(frame))

	var env struct {
		Type string `json:"type"`
	}
	req.NoError(codec.Decode([]byte(`{"type":"join","name":"a"}`), &env))
	req.Equal("join", env.Type)
	req.Error(codec.Decode([]byte(`{not json`), &env))
}

func TestJSONCodec_Empty_Fields_Stay_On_The_Wire(t *testing.T) {
	req := require.New(t)
	codec := JSONCodec{}

	// An empty chat text is still relayed as text
	frame, err := codec.Encode(domain.Chat("alice", ""))
	req.NoError(err)
	req.JSONEq(`{"type":"message","user":"alice","text":""}`, string(frame))

	// An empty room snapshot is an empty list
	frame, err = codec.Encode(domain.RoomMembers(nil))
	req.NoError(err)
	req.JSONEq(`{"type":"roomMembers","members":[]}`, string(frame))

	// Fields of other kinds never leak
	frame, err = codec.Encode(domain.Event{Kind: domain.KindRoomMembers, User: "x", Text: "y"})
	req.NoError(err)
	req.JSONEq(`{"type":"roomMembers","members":[]}`, string(frame))

	// Decoding gives the same event back
	var ev domain.Event
	req.NoError(codec.Decode([]byte(`{"type":"message","user":"alice","text":""}`), &ev))
	req.Equal(domain.Chat("alice", ""), ev)
}
