package app

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

type memberEntry struct {
	member domain.Member
	seq    uint64
}

// Registry is the single source of truth for active members.
// One lock covers both indexes so a member is never half-visible.
type Registry struct {
	mu     sync.RWMutex
	maxLen int
	seq    uint64
	byConn map[domain.ConnID]*memberEntry
	// byRoom doubles as the name-uniqueness index; a room key is dropped
	// together with its last member.
	byRoom map[domain.RoomName]map[domain.DisplayName]domain.ConnID
}

// NewRegistry builds an empty registry. maxLen bounds names and rooms in runes, 0 disables it.
func NewRegistry(maxLen int) *Registry {
	return &Registry{
		maxLen: maxLen,
		byConn: make(map[domain.ConnID]*memberEntry),
		byRoom: make(map[domain.RoomName]map[domain.DisplayName]domain.ConnID),
	}
}

// Register creates the member for conn. It fails with an ErrValidation-wrapped error
// on an empty name or room, ErrConflict when the name is taken in that room and
// ErrAlreadyJoined when conn already has a member.
func (r *Registry) Register(conn domain.ConnID, rawName, rawRoom string) (domain.Member, error) {
	m, err := domain.NewMember(conn, rawName, rawRoom, r.maxLen)
	if err != nil {
		return domain.Member{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byConn[conn]; ok {
		return domain.Member{}, domain.ErrAlreadyJoined
	}
	if _, taken := r.byRoom[m.Room][m.Name]; taken {
		return domain.Member{}, fmt.Errorf("%w: %q in %q", domain.ErrConflict, m.Name, m.Room)
	}
	r.insertLocked(m)
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Str("user", string(m.Name)).Str("room", string(m.Room)).Msg("registered member")
	return m, nil
}

// Move re-registers an active conn under a new name and/or room in one step.
// On any error the current member is left untouched.
func (r *Registry) Move(conn domain.ConnID, rawName, rawRoom string) (prev, next domain.Member, err error) {
	next, err = domain.NewMember(conn, rawName, rawRoom, r.maxLen)
	if err != nil {
		return domain.Member{}, domain.Member{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byConn[conn]
	if !ok {
		return domain.Member{}, domain.Member{}, domain.ErrNotFound
	}
	prev = e.member
	if prev == next {
		return prev, next, domain.ErrAlreadyJoined
	}
	if holder, taken := r.byRoom[next.Room][next.Name]; taken && holder != conn {
		return prev, domain.Member{}, fmt.Errorf("%w: %q in %q", domain.ErrConflict, next.Name, next.Room)
	}
	r.deleteLocked(conn)
	r.insertLocked(next)
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Str("from_room", string(prev.Room)).Str("room", string(next.Room)).Str("user", string(next.Name)).Msg("moved member")
	return prev, next, nil
}

// Lookup returns the member currently bound to conn.
func (r *Registry) Lookup(conn domain.ConnID) (domain.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byConn[conn]
	if !ok {
		return domain.Member{}, false
	}
	return e.member, true
}

// MembersOf returns the members of room in registration order. rawRoom is normalized first.
func (r *Registry) MembersOf(rawRoom string) []domain.Member {
	room := domain.RoomName(domain.Normalize(rawRoom))
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.membersLocked(room)
}

// Remove deletes and returns the member of conn. A second call reports false.
func (r *Registry) Remove(conn domain.ConnID) (domain.Member, bool) {
	m, _, ok := r.removeWithRoom(conn)
	return m, ok
}

// Rooms lists every non-empty room, sorted by name.
func (r *Registry) Rooms() []domain.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoomInfo, 0, len(r.byRoom))
	for name, names := range r.byRoom {
		out = append(out, domain.RoomInfo{Name: name, MemberCount: len(names)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len is the number of live members.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}

// lookupWithRoom resolves conn and its room under a single read lock.
func (r *Registry) lookupWithRoom(conn domain.ConnID) (domain.Member, []domain.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byConn[conn]
	if !ok {
		return domain.Member{}, nil, false
	}
	return e.member, r.membersLocked(e.member.Room), true
}

// removeWithRoom deletes conn and returns the remaining members of its room atomically.
func (r *Registry) removeWithRoom(conn domain.ConnID) (domain.Member, []domain.Member, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byConn[conn]
	if !ok {
		return domain.Member{}, nil, false
	}
	r.deleteLocked(conn)
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Str("user", string(e.member.Name)).Str("room", string(e.member.Room)).Msg("removed member")
	return e.member, r.membersLocked(e.member.Room), true
}

// roomOf snapshots room under a single read lock.
func (r *Registry) roomOf(room domain.RoomName) []domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.membersLocked(room)
}

func (r *Registry) insertLocked(m domain.Member) {
	r.seq++
	r.byConn[m.Conn] = &memberEntry{member: m, seq: r.seq}
	names, ok := r.byRoom[m.Room]
	if !ok {
		names = make(map[domain.DisplayName]domain.ConnID)
		r.byRoom[m.Room] = names
	}
	names[m.Name] = m.Conn
}

func (r *Registry) deleteLocked(conn domain.ConnID) {
	e, ok := r.byConn[conn]
	if !ok {
		return
	}
	delete(r.byConn, conn)
	if names, ok := r.byRoom[e.member.Room]; ok {
		delete(names, e.member.Name)
		if len(names) == 0 {
			delete(r.byRoom, e.member.Room)
		}
	}
}

func (r *Registry) membersLocked(room domain.RoomName) []domain.Member {
	names := r.byRoom[room]
	entries := make([]*memberEntry, 0, len(names))
	for _, conn := range names {
		entries = append(entries, r.byConn[conn])
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]domain.Member, len(entries))
	for i, e := range entries {
		out[i] = e.member
	}
	return out
}
