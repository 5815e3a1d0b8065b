package domain

// RoomName is a normalized room key. A room is not stored anywhere: it is
// the set of members sharing the same RoomName.
type RoomName string

// NewRoomName normalizes raw and checks it against maxLen (0 disables the check).
func NewRoomName(raw string, maxLen int) (RoomName, error) {
	name, err := normalizeKey(raw, maxLen)
	return RoomName(name), err
}

// RoomInfo is a read-only view of a non-empty room.
type RoomInfo struct {
	Name        RoomName `json:"name"`
	MemberCount int      `json:"member_count"`
}
