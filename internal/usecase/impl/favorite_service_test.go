package impl

import (
	"context"
	"testing"

	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_ToggleTwiceRestoresState(t *testing.T) {
	store := newMemStore()
	srv := NewFavoriteService(store, discardLogger())
	user := store.addUser(entity.RoleUser)
	category := store.addCategory("Docs")
	svc := store.addService(category.ID, entity.AccessTierPremium, entity.ServiceStatePublished)

	on, err := srv.ToggleFavorite(context.Background(), actorOf(user), svc.ID)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, store.favorites, 1)

	on, err = srv.ToggleFavorite(context.Background(), actorOf(user), svc.ID)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, store.favorites)
}

func TestFavoriteService_DuplicateInsertResolvesAsRemoval(t *testing.T) {
	store := newMemStore()
	srv := NewFavoriteService(store, discardLogger())
	user := store.addUser(entity.RoleUser)
	category := store.addCategory("Docs")
	svc := store.addService(category.ID, entity.AccessTierFree, entity.ServiceStatePublished)
	store.racingFavorite = true

	on, err := srv.ToggleFavorite(context.Background(), actorOf(user), svc.ID)

	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, store.favorites)
}

func TestFavoriteService_PendingAndMissing(t *testing.T) {
	store := newMemStore()
	srv := NewFavoriteService(store, discardLogger())
	admin := store.addUser(entity.RoleAdmin)
	category := store.addCategory("Docs")
	pending := store.addService(category.ID, entity.AccessTierFree, entity.ServiceStatePending)

	_, err := srv.ToggleFavorite(context.Background(), actorOf(admin), pending.ID)
	assert.ErrorIs(t, err, domainerrors.ErrServicePending)
	assert.Empty(t, store.favorites)

	_, err = srv.ToggleFavorite(context.Background(), actorOf(admin), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrServiceNotFound)
}

func TestFavoriteService_ListFavorites(t *testing.T) {
	store := newMemStore()
	srv := NewFavoriteService(store, discardLogger())
	user := store.addUser(entity.RoleUser)
	other := store.addUser(entity.RoleUser)
	category := store.addCategory("Docs")
	a := store.addService(category.ID, entity.AccessTierFree, entity.ServiceStatePublished)
	b := store.addService(category.ID, entity.AccessTierFree, entity.ServiceStatePublished)

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		_, err := srv.ToggleFavorite(context.Background(), actorOf(user), id)
		require.NoError(t, err)
	}
	_, err := srv.ToggleFavorite(context.Background(), actorOf(other), a.ID)
	require.NoError(t, err)

	favorites, err := srv.ListFavorites(context.Background(), actorOf(user))

	require.NoError(t, err)
	assert.Len(t, favorites, 2)
}
