package article

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pressroom/internal/common/pagination"
	"pressroom/internal/domain/entity"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/repository"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Cache defaults. Seeded data is replaced wholesale on every run, so entries
// only live for a short while.
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 30 * time.Second
)

// Service provides article read use cases.
// Cache is optional; when nil every Get reaches the repository.
type Service struct {
	Repo  repository.ArticleRepository
	Cache *expirable.LRU[int64, entity.Article]

	group singleflight.Group
}

// PaginatedResult is one page of articles with its metadata.
type PaginatedResult struct {
	Data       []*entity.Article
	Pagination pagination.Metadata
}

// NewService returns a Service with a cache of size entries kept for ttl.
// A non-positive size disables caching.
func NewService(repo repository.ArticleRepository, size int, ttl time.Duration) *Service {
	s := &Service{Repo: repo}
	if size > 0 {
		s.Cache = expirable.NewLRU[int64, entity.Article](size, nil, ttl)
	}
	return s
}

// ListPaginated retrieves one page of articles along with the total count.
// The count and the page are read concurrently.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	var (
		total    int64
		articles []*entity.Article
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := s.Repo.CountArticles(egCtx)
		if err != nil {
			return fmt.Errorf("count articles: %w", err)
		}
		total = n
		return nil
	})
	eg.Go(func() error {
		list, err := s.Repo.ListPaginated(egCtx, params.Offset(), params.Limit)
		if err != nil {
			return fmt.Errorf("list articles paginated: %w", err)
		}
		articles = list
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	metrics.UpdateArticlesTotal(int(total))
	return &PaginatedResult{
		Data:       articles,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// Get retrieves a single article by id.
// Returns ErrInvalidArticleID if the id is not positive and
// ErrArticleNotFound if the article does not exist.
// Concurrent lookups of the same id share one repository call, which runs
// detached from the first caller's cancellation so waiters are not failed by it.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	if s.Cache != nil {
		if a, ok := s.Cache.Get(id); ok {
			return &a, nil
		}
	}

	lookupCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		a, err := s.Repo.Get(lookupCtx, id)
		if err != nil {
			return nil, fmt.Errorf("get article: %w", err)
		}
		if a == nil {
			return nil, ErrArticleNotFound
		}
		if s.Cache != nil {
			s.Cache.Add(id, *a)
		}
		return *a, nil
	})
	if err != nil {
		return nil, err
	}
	a := v.(entity.Article)
	return &a, nil
}

// Purge drops every cached article.
func (s *Service) Purge() {
	if s.Cache != nil {
		s.Cache.Purge()
	}
}
