package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BloggingApp/feed-service/internal/cache"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/BloggingApp/feed-service/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testClock moves forward one minute on every reading so consecutive posts
// get distinct publication dates.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type fakeMedia struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{objects: make(map[string][]byte)}
}

func (m *fakeMedia) Put(ctx context.Context, key string, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = data
	return nil
}

func (m *fakeMedia) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *fakeMedia) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	return keys
}

func (m *fakeMedia) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []dto.PostCreatedMsg
	err  error
}

func (p *fakePublisher) PublishPostCreated(ctx context.Context, msg dto.PostCreatedMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *fakePublisher) Close() error {
	return nil
}

type testEnv struct {
	svc       *Service
	repo      *repository.Repository
	media     *fakeMedia
	publisher *fakePublisher
	listing   *cache.Listing
	cacheNow  time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return newTestEnvWithClock(t, newTestClock().Now)
}

func newTestEnvWithClock(t *testing.T, now func() time.Time) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:      memory.New(),
		media:     newFakeMedia(),
		publisher: &fakePublisher{},
		cacheNow:  time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	cacheClock := func() time.Time { return env.cacheNow }
	env.listing = cache.NewListing(cache.GlobalListing, cache.NewMemoryStore(cacheClock), 20*time.Second, cache.WithClock(cacheClock))

	env.svc = New(Deps{
		Logger:   zap.NewNop(),
		Repo:     env.repo,
		Listing:  env.listing,
		Media:    env.media,
		Events:   env.publisher,
		Now:      now,
		PageSize: DefaultPageSize,
	})

	return env
}

func (env *testEnv) user(t *testing.T, username string) *model.CachedUser {
	t.Helper()

	user, err := env.svc.UserCache.CreateOrGet(context.Background(), model.CachedUser{ID: uuid.New(), Username: username})
	require.NoError(t, err)
	return user
}

func (env *testEnv) group(t *testing.T, slug string) *model.Group {
	t.Helper()

	group, err := env.svc.Group.Create(context.Background(), dto.CreateGroupRequest{Title: slug, Slug: slug})
	require.NoError(t, err)
	return group
}

func (env *testEnv) post(t *testing.T, author *model.CachedUser, text string, groupID *int64) *model.Post {
	t.Helper()

	post, err := env.svc.Post.Create(context.Background(), author, dto.CreatePostRequest{Text: text, GroupID: groupID}, nil)
	require.NoError(t, err)
	return post
}

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected validation error, got %v", err)
	require.Equal(t, field, validationErr.Field)
	require.ErrorIs(t, err, ErrValidation)
}
