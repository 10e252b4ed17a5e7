package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherialcal/aethercal/internal/realtime"
)

func TestRegistry_JoinAndLookup(t *testing.T) {
	registry := realtime.NewRegistry()

	member := registry.Join("client-1", "dragonlance", "Raistlin", realtime.RoleDM)
	assert.Equal(t, "client-1", member.ClientID)
	assert.Equal(t, realtime.RoleDM, member.Role)
	assert.False(t, member.JoinedAt.IsZero())

	got, ok := registry.Get("client-1")
	require.True(t, ok)
	assert.Equal(t, member, got)
}

func TestRegistry_JoinReplacesPreviousEntry(t *testing.T) {
	registry := realtime.NewRegistry()

	registry.Join("client-1", "dragonlance", "Raistlin", realtime.RoleDM)
	registry.Join("client-1", "curse-of-strahd", "Raistlin", realtime.RolePlayer)

	got, ok := registry.Get("client-1")
	require.True(t, ok)
	assert.Equal(t, "curse-of-strahd", got.SessionID)
	assert.Equal(t, realtime.RolePlayer, got.Role)

	assert.Empty(t, registry.SessionMembers("dragonlance"))
	assert.Len(t, registry.SessionMembers("curse-of-strahd"), 1)
}

func TestRegistry_LeaveIsIdempotent(t *testing.T) {
	registry := realtime.NewRegistry()
	registry.Join("client-1", "dragonlance", "Raistlin", realtime.RoleDM)

	member, ok := registry.Leave("client-1")
	require.True(t, ok)
	assert.Equal(t, "dragonlance", member.SessionID)

	_, ok = registry.Leave("client-1")
	assert.False(t, ok)

	_, ok = registry.Get("client-1")
	assert.False(t, ok)
}

func TestRegistry_SessionMembersFiltersByCampaign(t *testing.T) {
	registry := realtime.NewRegistry()

	registry.Join("client-1", "dragonlance", "Raistlin", realtime.RoleDM)
	registry.Join("client-2", "dragonlance", "Caramon", realtime.RolePlayer)
	registry.Join("client-3", "curse-of-strahd", "Ireena", realtime.RolePlayer)

	members := registry.SessionMembers("dragonlance")
	require.Len(t, members, 2)
	for _, member := range members {
		assert.Equal(t, "dragonlance", member.SessionID)
	}

	assert.Empty(t, registry.SessionMembers("unknown"))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, realtime.RoleDM, realtime.NormalizeRole("DM"))
	assert.Equal(t, realtime.RolePlayer, realtime.NormalizeRole("Player"))
	assert.Equal(t, realtime.RolePlayer, realtime.NormalizeRole("dm"))
	assert.Equal(t, realtime.RolePlayer, realtime.NormalizeRole(""))
	assert.Equal(t, realtime.RolePlayer, realtime.NormalizeRole("observer"))
}
