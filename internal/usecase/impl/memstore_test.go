package impl

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// memStore is an in-memory stand-in for the postgres repositories. Execute snapshots the
// tables and restores them when the callback fails, mirroring a rolled back transaction.
type memStore struct {
	mu sync.Mutex

	users      map[uuid.UUID]*entity.User
	services   map[uuid.UUID]*entity.Service
	categories map[uuid.UUID]*entity.Category
	favorites  map[favoriteKey]*entity.Favorite
	reviews    map[uuid.UUID]*entity.Review

	// failures injects an error for the named operation, e.g. "users.updateLastServiceCreationDate".
	failures map[string]error
	// racingFavorite makes the next Exists miss a pair that Create then reports as duplicate.
	racingFavorite bool
}

type favoriteKey struct {
	userID    uuid.UUID
	serviceID uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uuid.UUID]*entity.User{},
		services:   map[uuid.UUID]*entity.Service{},
		categories: map[uuid.UUID]*entity.Category{},
		favorites:  map[favoriteKey]*entity.Favorite{},
		reviews:    map[uuid.UUID]*entity.Review{},
		failures:   map[string]error{},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *memStore) fail(op string) error {
	return s.failures[op]
}

func (s *memStore) addUser(roles ...entity.Role) *entity.User {
	u := &entity.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Roles: roles}
	s.users[u.ID] = u

	return u
}

func (s *memStore) addCategory(name string) *entity.Category {
	c := &entity.Category{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	s.categories[c.ID] = c

	return c
}

func (s *memStore) addService(categoryID uuid.UUID, tier entity.AccessTier, state entity.ServiceState) *entity.Service {
	svc := &entity.Service{
		ID:         uuid.New(),
		Title:      "Service " + uuid.NewString()[:8],
		CategoryID: categoryID,
		AccessTier: tier,
		State:      state,
		CreatedOn:  time.Now(),
		ModifiedOn: time.Now(),
	}
	s.services[svc.ID] = svc

	return svc
}

type memSnapshot struct {
	users      map[uuid.UUID]entity.User
	services   map[uuid.UUID]entity.Service
	categories map[uuid.UUID]entity.Category
	favorites  map[favoriteKey]entity.Favorite
	reviews    map[uuid.UUID]entity.Review
}

func copyValues[K comparable, V any](src map[K]*V) map[K]V {
	out := make(map[K]V, len(src))
	for k, v := range src {
		out[k] = *v
	}

	return out
}

func restorePointers[K comparable, V any](src map[K]V) map[K]*V {
	out := make(map[K]*V, len(src))
	for k, v := range src {
		out[k] = &v
	}

	return out
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		users:      copyValues(s.users),
		services:   copyValues(s.services),
		categories: copyValues(s.categories),
		favorites:  copyValues(s.favorites),
		reviews:    copyValues(s.reviews),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.users = restorePointers(snap.users)
	s.services = restorePointers(snap.services)
	s.categories = restorePointers(snap.categories)
	s.favorites = restorePointers(snap.favorites)
	s.reviews = restorePointers(snap.reviews)
}

// --- TransactionManager / RepositoryFactory ---

func (s *memStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()

		return err
	}

	return nil
}

func (s *memStore) ServiceRepo() repository.ServiceRepository   { return memServiceRepo{s} }
func (s *memStore) UserRepo() repository.UserRepository         { return memUserRepo{s} }
func (s *memStore) FavoriteRepo() repository.FavoriteRepository { return memFavoriteRepo{s} }
func (s *memStore) ReviewRepo() repository.ReviewRepository     { return memReviewRepo{s} }
func (s *memStore) CategoryRepo() repository.CategoryRepository { return memCategoryRepo{s} }

// --- users ---

type memUserRepo struct{ s *memStore }

func (r memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u

	return &cp, nil
}

func (r memUserRepo) FindRoles(ctx context.Context, id uuid.UUID) (entity.Roles, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u.Roles, nil
}

func (r memUserRepo) UpdateLastServiceCreationDate(_ context.Context, id uuid.UUID, at time.Time) error {
	if err := r.s.fail("users.updateLastServiceCreationDate"); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.LastServiceCreationDate = &at

	return nil
}

// --- services ---

type memServiceRepo struct{ s *memStore }

func (r memServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, repository.ErrServiceNotFound
	}
	cp := *svc

	return &cp, nil
}

func (r memServiceRepo) List(_ context.Context, filter repository.ServiceFilter) ([]*entity.Service, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*entity.Service
	for _, svc := range r.s.services {
		if len(filter.States) > 0 && !slices.Contains(filter.States, svc.State) {
			continue
		}
		if filter.CategoryID != nil && svc.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.AccessTier != nil && svc.AccessTier != *filter.AccessTier {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(svc.Title), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *svc
		matched = append(matched, &cp)
	}

	slices.SortFunc(matched, func(a, b *entity.Service) int {
		switch filter.Sort {
		case repository.ServiceSortNewest:
			return b.CreatedOn.Compare(a.CreatedOn)
		case repository.ServiceSortPopular:
			return cmp.Compare(b.ViewsCount, a.ViewsCount)
		default:
			return cmp.Compare(a.Title, b.Title)
		}
	})

	total := int64(len(matched))
	start := min(filter.Offset, len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}

	return matched[start:end], total, nil
}

func (r memServiceRepo) Create(_ context.Context, svc *entity.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[svc.CategoryID]; !ok {
		return repository.ErrCategoryReference
	}
	cp := *svc
	r.s.services[svc.ID] = &cp

	return nil
}

func (r memServiceRepo) Update(_ context.Context, svc *entity.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[svc.ID]; !ok {
		return repository.ErrServiceNotFound
	}
	cp := *svc
	r.s.services[svc.ID] = &cp

	return nil
}

func (r memServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return repository.ErrServiceNotFound
	}
	delete(r.s.services, id)
	maps.DeleteFunc(r.s.favorites, func(k favoriteKey, _ *entity.Favorite) bool { return k.serviceID == id })
	maps.DeleteFunc(r.s.reviews, func(_ uuid.UUID, rv *entity.Review) bool { return rv.ServiceID == id })

	return nil
}

func (r memServiceRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	if err := r.s.fail("services.incrementViews"); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return repository.ErrServiceNotFound
	}
	svc.ViewsCount++

	return nil
}

func (r memServiceRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, svc := range r.s.services {
		if svc.CategoryID == categoryID {
			n++
		}
	}

	return n, nil
}

// --- categories ---

type memCategoryRepo struct{ s *memStore }

func (r memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *c

	return &cp, nil
}

func (r memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *entity.Category) int { return cmp.Compare(a.Name, b.Name) })

	return out, nil
}

func (r memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return repository.ErrCategoryExists
		}
	}
	cp := *category
	r.s.categories[category.ID] = &cp

	return nil
}

func (r memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	for _, svc := range r.s.services {
		if svc.CategoryID == id {
			return repository.ErrCategoryReferenced
		}
	}
	delete(r.s.categories, id)

	return nil
}

// --- favorites ---

type memFavoriteRepo struct{ s *memStore }

func (r memFavoriteRepo) Exists(_ context.Context, userID, serviceID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.racingFavorite {
		r.s.racingFavorite = false
		r.s.favorites[favoriteKey{userID, serviceID}] = &entity.Favorite{UserID: userID, ServiceID: serviceID, CreatedAt: time.Now()}

		return false, nil
	}

	_, ok := r.s.favorites[favoriteKey{userID, serviceID}]

	return ok, nil
}

func (r memFavoriteRepo) Create(_ context.Context, favorite *entity.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := favoriteKey{favorite.UserID, favorite.ServiceID}
	if _, ok := r.s.favorites[key]; ok {
		return repository.ErrDuplicateFavorite
	}
	cp := *favorite
	r.s.favorites[key] = &cp

	return nil
}

func (r memFavoriteRepo) Delete(_ context.Context, userID, serviceID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := favoriteKey{userID, serviceID}
	if _, ok := r.s.favorites[key]; !ok {
		return repository.ErrFavoriteNotFound
	}
	delete(r.s.favorites, key)

	return nil
}

func (r memFavoriteRepo) FavoritedAmong(_ context.Context, userID uuid.UUID, serviceIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := map[uuid.UUID]bool{}
	for _, id := range serviceIDs {
		if _, ok := r.s.favorites[favoriteKey{userID, id}]; ok {
			out[id] = true
		}
	}

	return out, nil
}

func (r memFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Favorite
	for k, f := range r.s.favorites {
		if k.userID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Favorite) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

// --- reviews ---

type memReviewRepo struct{ s *memStore }

func (r memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	cp := *rv

	return &cp, nil
}

func (r memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *review
	r.s.reviews[review.ID] = &cp

	return nil
}

func (r memReviewRepo) Update(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	cp := *review
	r.s.reviews[review.ID] = &cp

	return nil
}

func (r memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.s.reviews, id)

	return nil
}

func (r memReviewRepo) ListByService(_ context.Context, serviceID uuid.UUID) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Review
	for _, rv := range r.s.reviews {
		if rv.ServiceID == serviceID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Review) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (r memReviewRepo) Summaries(_ context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID]entity.ReviewSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sums := map[uuid.UUID]int{}
	out := map[uuid.UUID]entity.ReviewSummary{}
	for _, rv := range r.s.reviews {
		if !slices.Contains(serviceIDs, rv.ServiceID) {
			continue
		}
		sum := out[rv.ServiceID]
		sum.Count++
		sums[rv.ServiceID] += rv.Rating
		sum.AverageRating = float64(sums[rv.ServiceID]) / float64(sum.Count)
		out[rv.ServiceID] = sum
	}

	return out, nil
}

var errInjected = errors.New("injected failure")
