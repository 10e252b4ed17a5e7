package realtime

import (
	"sync"
	"time"
)

// Role is a client's self-declared table role. Roles gate which actions the
// client UI offers; the server does not enforce them on mutation endpoints.
type Role string

const (
	RoleDM     Role = "DM"
	RolePlayer Role = "Player"
)

// NormalizeRole maps any unknown role string to Player.
func NormalizeRole(raw string) Role {
	if Role(raw) == RoleDM {
		return RoleDM
	}
	return RolePlayer
}

// Member describes one connected client's place at the table.
type Member struct {
	ClientID  string    `json:"client_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Username  string    `json:"username"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Registry tracks which connected client belongs to which campaign and under
// which role. It is owned by the realtime layer with an explicit lifecycle:
// populated on join, purged on leave or disconnect. Anything needing role
// lookups receives the registry explicitly.
type Registry struct {
	mu      sync.RWMutex
	members map[string]Member
}

func NewRegistry() *Registry {
	return &Registry{members: make(map[string]Member)}
}

// Join records a client's membership, replacing any previous entry for the
// same client (a client is in at most one campaign at a time).
func (registry *Registry) Join(clientID, sessionID, username string, role Role) Member {
	member := Member{
		ClientID:  clientID,
		SessionID: sessionID,
		Role:      role,
		Username:  username,
		JoinedAt:  time.Now().UTC(),
	}

	registry.mu.Lock()
	registry.members[clientID] = member
	registry.mu.Unlock()

	return member
}

// Leave removes a client's entry and returns it. The second return value is
// false when the client had never joined, in which case leaving is a no-op.
func (registry *Registry) Leave(clientID string) (Member, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	member, ok := registry.members[clientID]
	if ok {
		delete(registry.members, clientID)
	}
	return member, ok
}

// Get returns the membership entry for a client.
func (registry *Registry) Get(clientID string) (Member, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	member, ok := registry.members[clientID]
	return member, ok
}

// SessionMembers lists every client currently joined to a campaign.
func (registry *Registry) SessionMembers(sessionID string) []Member {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	members := make([]Member, 0)
	for _, member := range registry.members {
		if member.SessionID == sessionID {
			members = append(members, member)
		}
	}
	return members
}
