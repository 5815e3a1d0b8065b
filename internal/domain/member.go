package domain

// Member is one active participant: a live connection registered under a
// display name in a room. No transport or lifecycle logic here.
type Member struct {
	Conn ConnID
	Name DisplayName
	Room RoomName
}

// NewMember validates and normalizes a join request. Both errors wrap ErrValidation.
func NewMember(conn ConnID, rawName, rawRoom string, maxLen int) (Member, error) {
	name, err := NewDisplayName(rawName, maxLen)
	if err != nil {
		return Member{}, err
	}
	room, err := NewRoomName(rawRoom, maxLen)
	if err != nil {
		return Member{}, err
	}
	return Member{Conn: conn, Name: name, Room: room}, nil
}

// MemberView is the public shape of a member inside a roomMembers snapshot.
type MemberView struct {
	User DisplayName `json:"user"`
}

func (m Member) View() MemberView { return MemberView{User: m.Name} }
