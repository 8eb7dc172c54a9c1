package impl

import (
	"context"
	"testing"

	"toolbox/config"
	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/policy"
	"toolbox/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogScenario_TemplateLifecycleEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	publisher := &mockPublisher{}
	publisher.On("PublishCatalogEvent", mock.Anything, mock.Anything).Return(nil)

	catalog := NewCatalogService(CatalogServiceParams{
		TxManager:   store,
		ServiceRepo: store.ServiceRepo(),
		Publisher:   publisher,
		Config:      &config.Config{Catalog: &config.CatalogConfig{DefaultPageSize: 20, MaxPageSize: 100}},
		Logger:      discardLogger(),
	})
	templates := NewTemplateService(TemplateServiceParams{TxManager: store, Publisher: publisher, Logger: discardLogger()})
	favorites := NewFavoriteService(store, discardLogger())

	admin := actorOf(store.addUser(entity.RoleAdmin))
	business := actorOf(store.addUser(entity.RoleBusinessUser))
	user := actorOf(store.addUser(entity.RoleUser))
	category := store.addCategory("Documents")
	input := func(title string) usecase.ServiceInput {
		return usecase.ServiceInput{Title: title, CategoryID: category.ID, AccessTier: entity.AccessTierFree}
	}

	x, err := catalog.CreateService(ctx, admin, input("X"))
	require.NoError(t, err)
	assert.True(t, policy.CanUse(user.Roles, x))

	y, err := templates.SubmitTemplate(ctx, business, input("Y"))
	require.NoError(t, err)
	isTemplate, isApproved := y.State.Flags()
	assert.True(t, isTemplate)
	assert.False(t, isApproved)

	_, err = favorites.ToggleFavorite(ctx, user, y.ID)
	require.Error(t, err)
	assert.Contains(t, []domainerrors.Kind{domainerrors.KindForbidden, domainerrors.KindInvalidState}, domainerrors.KindOf(err))

	y, err = templates.ApproveTemplate(ctx, admin, y.ID)
	require.NoError(t, err)
	isTemplate, isApproved = y.State.Flags()
	assert.False(t, isTemplate)
	assert.True(t, isApproved)

	favorited, err := favorites.ToggleFavorite(ctx, user, y.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	// A second business user supplies the template that gets rejected.
	other := actorOf(store.addUser(entity.RoleBusinessUser))
	z, err := templates.SubmitTemplate(ctx, other, input("Z"))
	require.NoError(t, err)
	require.NoError(t, templates.RejectTemplate(ctx, admin, z.ID))

	_, err = catalog.GetServiceDetail(ctx, admin, z.ID)
	assert.ErrorIs(t, err, domainerrors.ErrServiceNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}
