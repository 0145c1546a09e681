package service

import (
	"context"
	"sync"
	"time"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// memReviewRepo is an in-memory ReviewRepository with the same conditional
// replace semantics as the Mongo implementation.
type memReviewRepo struct {
	mu             sync.Mutex
	docs           map[string]*models.Review
	reads          int
	writes         int
	forceConflicts int // next N Replace calls fail with a conflict
	afterRead      func(id string)
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{docs: map[string]*models.Review{}}
}

func (m *memReviewRepo) Create(_ context.Context, r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.Version = 0
	m.docs[r.ID.Hex()] = r.Clone()
	return nil
}

func (m *memReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	m.mu.Lock()
	m.reads++
	r, ok := m.docs[id]
	var out *models.Review
	if ok {
		out = r.Clone()
	}
	hook := m.afterRead
	m.afterRead = nil
	m.mu.Unlock()

	// runs once, after the copy is taken, so a writer can slip in between
	// this read and whatever the caller does next
	if hook != nil {
		hook(id)
	}
	if !ok {
		return nil, models.ErrReviewNotFound
	}
	return out, nil
}

func (m *memReviewRepo) Replace(_ context.Context, r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.docs[r.ID.Hex()]
	if !ok {
		return models.ErrReviewNotFound
	}
	if m.forceConflicts > 0 {
		m.forceConflicts--
		return repository.ErrVersionConflict
	}
	if stored.Version != r.Version {
		return repository.ErrVersionConflict
	}
	next := r.Clone()
	next.Version = r.Version + 1
	m.docs[r.ID.Hex()] = next
	r.Version = next.Version
	m.writes++
	return nil
}

func (m *memReviewRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return models.ErrReviewNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *memReviewRepo) List(_ context.Context, f repository.ReviewFilter) ([]models.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, r := range m.docs {
		if f.Status != repository.StatusAll && r.IsRemoved != (f.Status == repository.StatusRemoved) {
			continue
		}
		out = append(out, *r.Clone())
	}
	return out, int64(len(out)), nil
}

func (m *memReviewRepo) Stats(context.Context, time.Time) (*repository.ReviewStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s repository.ReviewStats
	for _, r := range m.docs {
		if r.IsRemoved {
			s.RemovedReviews++
		} else {
			s.TotalReviews++
		}
		s.TotalReports += int64(len(r.Reports))
	}
	return &s, nil
}

func (m *memReviewRepo) ListReports(context.Context, int, int) ([]repository.ReportEntry, int64, error) {
	return nil, 0, nil
}

func (m *memReviewRepo) stored(id string) *models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[id].Clone()
}

// memCache follows the Redis cache rules: Set keeps the newer version and
// never replaces a tombstone.
type memCache struct {
	mu          sync.Mutex
	entries     map[string]*models.Review
	gone        map[string]bool
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]*models.Review{}, gone: map[string]bool{}}
}

func (c *memCache) Get(_ context.Context, id string) (*models.Review, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gone[id] {
		return nil, true
	}
	r, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

func (c *memCache) Set(_ context.Context, r *models.Review) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := r.ID.Hex()
	if c.gone[id] {
		return
	}
	if cur, ok := c.entries[id]; ok && cur.Version >= r.Version {
		return
	}
	c.entries[id] = r.Clone()
}

func (c *memCache) Tombstone(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.gone[id] = true
}

func (c *memCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

// cachedVersion returns the version held for id, or -1.
func (c *memCache) cachedVersion(id string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.entries[id]; ok {
		return r.Version
	}
	return -1
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Stats(ctx context.Context, since time.Time) (*repository.UserStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserStats), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter) ([]models.User, int64, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]models.User)
	return list, args.Get(1).(int64), args.Error(2)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComplaintRepository) Update(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) List(ctx context.Context, f repository.ComplaintFilter) ([]models.Complaint, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type memEvents struct {
	mu     sync.Mutex
	events []models.ReviewEvent
}

func (e *memEvents) Publish(ev models.ReviewEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *memEvents) all() []models.ReviewEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.ReviewEvent(nil), e.events...)
}
