package newsletter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamepress/internal/store"
)

func TestCreateGroupValidation(t *testing.T) {
	svc := New(store.NewMemory(), nil)

	res := svc.CreateGroup(context.Background(), "V", "", "")
	assert.False(t, res.Success)
	assert.Equal(t, "El nombre debe tener al menos 2 caracteres", res.Message)

	res = svc.CreateGroup(context.Background(), "  Torneos  ", "Info de torneos", "")
	require.True(t, res.Success)
	assert.NotEmpty(t, res.GroupID)

	res = svc.CreateGroup(context.Background(), "torneos", "", "")
	assert.False(t, res.Success)
	assert.Equal(t, "Ya existe un grupo con ese nombre", res.Message)
}

func TestCreateGroupDefaultColor(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	res := svc.CreateGroup(context.Background(), "Reviews", "", "")
	require.True(t, res.Success)

	groups, err := mem.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, defaultGroupColor, groups[0].Color)
	assert.False(t, groups[0].IsDefault)
}

func TestDeleteGroupProtectsDefaults(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	require.NoError(t, svc.InitializeDefaultGroups(context.Background()))

	groups, err := mem.ListGroups(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	res := svc.DeleteGroup(context.Background(), groups[0].ID)
	assert.False(t, res.Success)
	assert.Equal(t, "No se pueden eliminar grupos predeterminados", res.Message)
}

func TestDeleteGroupRemovesMembership(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	created := svc.CreateGroup(context.Background(), "Esports", "", "")
	require.True(t, created.Success)

	require.True(t, svc.Subscribe(context.Background(), "ana@example.com", "Ana").Success)
	sub, err := mem.FindSubscriberByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, mem.UpdateSubscriber(context.Background(), sub.ID,
		map[string]any{"groups": []string{DefaultGroupID, created.GroupID}}))

	res := svc.DeleteGroup(context.Background(), created.GroupID)
	require.True(t, res.Success)

	sub, err = mem.FindSubscriberByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultGroupID}, sub.Groups)

	groups, err := mem.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestInitializeDefaultGroupsIsIdempotent(t *testing.T) {
	mem := store.NewMemory()
	svc := New(mem, nil)

	require.NoError(t, svc.InitializeDefaultGroups(context.Background()))
	require.NoError(t, svc.InitializeDefaultGroups(context.Background()))

	groups, err := mem.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 6)

	names := make(map[string]bool)
	for _, g := range groups {
		names[g.Name] = true
		assert.True(t, g.IsDefault)
	}
	assert.True(t, names["General"])
	assert.True(t, names["Breaking News"])
}
