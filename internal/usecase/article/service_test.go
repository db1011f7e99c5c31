package article_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pressroom/internal/common/pagination"
	"pressroom/internal/domain/entity"
	artUC "pressroom/internal/usecase/article"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── stub ───────── */

type stubRepo struct {
	mu       sync.Mutex
	data     map[int64]*entity.Article
	err      error
	countErr error
	gets     atomic.Int32
	block    chan struct{}
}

func newStub(articles ...*entity.Article) *stubRepo {
	s := &stubRepo{data: map[int64]*entity.Article{}}
	for _, a := range articles {
		s.data[a.ID] = a
	}
	return s
}

func (s *stubRepo) sorted() []*entity.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Article, 0, len(s.data))
	for _, a := range s.data {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *stubRepo) ListPaginated(_ context.Context, offset, limit int) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	all := s.sorted()
	if offset >= len(all) {
		return []*entity.Article{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *stubRepo) CountArticles(_ context.Context) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.data)), nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	s.gets.Add(1)
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func seeded(n int) []*entity.Article {
	out := make([]*entity.Article, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &entity.Article{ID: int64(i), AuthorID: int64(i % 10), Title: "Title " + string(rune('A'+i-1))})
	}
	return out
}

/* ───────── Get ───────── */

func TestService_Get(t *testing.T) {
	repo := newStub(&entity.Article{ID: 7, AuthorID: 3, Title: "Hello"})
	svc := &artUC.Service{Repo: repo}

	got, err := svc.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, int64(3), got.AuthorID)
}

func TestService_Get_InvalidID(t *testing.T) {
	repo := newStub()
	svc := &artUC.Service{Repo: repo}

	for _, id := range []int64{0, -1} {
		_, err := svc.Get(context.Background(), id)
		assert.ErrorIs(t, err, artUC.ErrInvalidArticleID)
	}
	assert.Equal(t, int32(0), repo.gets.Load())
}

func TestService_Get_NotFound(t *testing.T) {
	svc := &artUC.Service{Repo: newStub()}

	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, artUC.ErrArticleNotFound)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestService_Get_RepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("db down")
	svc := &artUC.Service{Repo: repo}

	_, err := svc.Get(context.Background(), 1)

	assert.ErrorIs(t, err, repo.err)
	assert.Contains(t, err.Error(), "get article")
}

func TestService_Get_Cached(t *testing.T) {
	repo := newStub(&entity.Article{ID: 1, Title: "First"})
	svc := artUC.NewService(repo, 16, time.Minute)

	first, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	first.Title = "mutated by caller"

	second, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "First", second.Title)
	assert.Equal(t, int32(1), repo.gets.Load())

	svc.Purge()
	_, err = svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.gets.Load())
}

func TestService_Get_NotFoundIsNotCached(t *testing.T) {
	repo := newStub()
	svc := artUC.NewService(repo, 16, time.Minute)

	_, err := svc.Get(context.Background(), 5)
	require.ErrorIs(t, err, artUC.ErrArticleNotFound)

	repo.mu.Lock()
	repo.data[5] = &entity.Article{ID: 5, Title: "Late"}
	repo.mu.Unlock()

	got, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Late", got.Title)
}

func TestService_Get_ConcurrentCallsShareLookup(t *testing.T) {
	repo := newStub(&entity.Article{ID: 2, Title: "Shared"})
	repo.block = make(chan struct{})
	svc := &artUC.Service{Repo: repo}

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := svc.Get(context.Background(), 2)
			if err == nil {
				results <- a.Title
			}
		}()
	}

	require.Eventually(t, func() bool { return repo.gets.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(repo.block)
	wg.Wait()
	close(results)

	n := 0
	for title := range results {
		assert.Equal(t, "Shared", title)
		n++
	}
	assert.Equal(t, callers, n)
	assert.LessOrEqual(t, repo.gets.Load(), int32(callers))
}

func TestService_Get_CancelledLeaderDoesNotFailWaiters(t *testing.T) {
	repo := newStub(&entity.Article{ID: 2, Title: "Shared"})
	repo.block = make(chan struct{})
	svc := &artUC.Service{Repo: repo}

	leaderCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	leaderDone := make(chan struct{})
	go func() {
		defer close(leaderDone)
		_, _ = svc.Get(leaderCtx, 2)
	}()
	require.Eventually(t, func() bool { return repo.gets.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		a   *entity.Article
		err error
	}
	waiter := make(chan result, 1)
	go func() {
		a, err := svc.Get(context.Background(), 2)
		waiter <- result{a, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	close(repo.block)

	got := <-waiter
	require.NoError(t, got.err)
	assert.Equal(t, "Shared", got.a.Title)
	<-leaderDone
	assert.Equal(t, int32(1), repo.gets.Load())
}

func TestService_ListPaginated(t *testing.T) {
	svc := &artUC.Service{Repo: newStub(seeded(25)...)}

	got, err := svc.ListPaginated(context.Background(), pagination.Params{Page: 2, Limit: 10})

	require.NoError(t, err)
	require.Len(t, got.Data, 10)
	assert.Equal(t, int64(11), got.Data[0].ID)
	assert.Equal(t, pagination.Metadata{Total: 25, Page: 2, Limit: 10, TotalPages: 3}, got.Pagination)
}

func TestService_ListPaginated_PastEnd(t *testing.T) {
	svc := &artUC.Service{Repo: newStub(seeded(5)...)}

	got, err := svc.ListPaginated(context.Background(), pagination.Params{Page: 4, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, got.Data)
	assert.Equal(t, int64(5), got.Pagination.Total)
}

func TestService_ListPaginated_CountError(t *testing.T) {
	repo := newStub(seeded(2)...)
	repo.countErr = errors.New("count failed")
	svc := &artUC.Service{Repo: repo}

	_, err := svc.ListPaginated(context.Background(), pagination.Params{Page: 1, Limit: 10})

	assert.ErrorIs(t, err, repo.countErr)
	assert.Contains(t, err.Error(), "count articles")
}
