package handler

import (
	"context"
	"encoding/json"

	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/service"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCatalogUsecase struct {
	mock.Mock
}

func (m *mockCatalogUsecase) ListServices(ctx context.Context, actor usecase.Actor, query usecase.ListServicesQuery) (*usecase.ServicePage, error) {
	args := m.Called(ctx, actor, query)
	page, _ := args.Get(0).(*usecase.ServicePage)

	return page, args.Error(1)
}

func (m *mockCatalogUsecase) GetServiceDetail(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (*usecase.ServiceView, error) {
	args := m.Called(ctx, actor, serviceID)
	view, _ := args.Get(0).(*usecase.ServiceView)

	return view, args.Error(1)
}

func (m *mockCatalogUsecase) CreateService(ctx context.Context, actor usecase.Actor, input usecase.ServiceInput) (*entity.Service, error) {
	args := m.Called(ctx, actor, input)
	svc, _ := args.Get(0).(*entity.Service)

	return svc, args.Error(1)
}

func (m *mockCatalogUsecase) GetServiceForEdit(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (*entity.Service, error) {
	args := m.Called(ctx, actor, serviceID)
	svc, _ := args.Get(0).(*entity.Service)

	return svc, args.Error(1)
}

func (m *mockCatalogUsecase) UpdateService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID, input usecase.ServiceInput) (*entity.Service, error) {
	args := m.Called(ctx, actor, serviceID, input)
	svc, _ := args.Get(0).(*entity.Service)

	return svc, args.Error(1)
}

func (m *mockCatalogUsecase) DeleteService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) error {
	return m.Called(ctx, actor, serviceID).Error(0)
}

type mockTemplateUsecase struct {
	mock.Mock
}

func (m *mockTemplateUsecase) SubmitTemplate(ctx context.Context, actor usecase.Actor, input usecase.ServiceInput) (*entity.Service, error) {
	args := m.Called(ctx, actor, input)
	svc, _ := args.Get(0).(*entity.Service)

	return svc, args.Error(1)
}

func (m *mockTemplateUsecase) ApproveTemplate(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (*entity.Service, error) {
	args := m.Called(ctx, actor, serviceID)
	svc, _ := args.Get(0).(*entity.Service)

	return svc, args.Error(1)
}

func (m *mockTemplateUsecase) RejectTemplate(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) error {
	return m.Called(ctx, actor, serviceID).Error(0)
}

func (m *mockTemplateUsecase) ListPendingTemplates(ctx context.Context, actor usecase.Actor) ([]*entity.Service, error) {
	args := m.Called(ctx, actor)
	services, _ := args.Get(0).([]*entity.Service)

	return services, args.Error(1)
}

type mockFavoriteUsecase struct {
	mock.Mock
}

func (m *mockFavoriteUsecase) ToggleFavorite(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, actor, serviceID)

	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteUsecase) ListFavorites(ctx context.Context, actor usecase.Actor) ([]*entity.Favorite, error) {
	args := m.Called(ctx, actor)
	favorites, _ := args.Get(0).([]*entity.Favorite)

	return favorites, args.Error(1)
}

type mockReviewUsecase struct {
	mock.Mock
}

func (m *mockReviewUsecase) AddReview(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID, input usecase.ReviewInput) (*entity.Review, error) {
	args := m.Called(ctx, actor, serviceID, input)
	review, _ := args.Get(0).(*entity.Review)

	return review, args.Error(1)
}

func (m *mockReviewUsecase) UpdateReview(ctx context.Context, actor usecase.Actor, reviewID uuid.UUID, input usecase.ReviewInput) (*entity.Review, error) {
	args := m.Called(ctx, actor, reviewID, input)
	review, _ := args.Get(0).(*entity.Review)

	return review, args.Error(1)
}

func (m *mockReviewUsecase) DeleteReview(ctx context.Context, actor usecase.Actor, reviewID uuid.UUID) error {
	return m.Called(ctx, actor, reviewID).Error(0)
}

func (m *mockReviewUsecase) ListReviews(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, serviceID)
	reviews, _ := args.Get(0).([]*entity.Review)

	return reviews, args.Error(1)
}

type mockCategoryUsecase struct {
	mock.Mock
}

func (m *mockCategoryUsecase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*entity.Category)

	return categories, args.Error(1)
}

func (m *mockCategoryUsecase) CreateCategory(ctx context.Context, actor usecase.Actor, name string) (*entity.Category, error) {
	args := m.Called(ctx, actor, name)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *mockCategoryUsecase) DeleteCategory(ctx context.Context, actor usecase.Actor, categoryID uuid.UUID) error {
	return m.Called(ctx, actor, categoryID).Error(0)
}

type mockToolUsecase struct {
	mock.Mock
}

func (m *mockToolUsecase) UseService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID, payload json.RawMessage) (*service.ToolResponse, error) {
	args := m.Called(ctx, actor, serviceID, payload)
	resp, _ := args.Get(0).(*service.ToolResponse)

	return resp, args.Error(1)
}

func (m *mockToolUsecase) ListTools(ctx context.Context) []service.ToolBinding {
	bindings, _ := m.Called(ctx).Get(0).([]service.ToolBinding)

	return bindings
}
