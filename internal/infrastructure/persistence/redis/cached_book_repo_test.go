package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
)

// memoryCache 内存版detailCache，可注入故障
type memoryCache struct {
	items   map[uint]*book.Book
	failGet error
	failSet error
	cleared int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[uint]*book.Book{}}
}

func (c *memoryCache) Get(_ context.Context, id uint) (*book.Book, error) {
	if c.failGet != nil {
		return nil, c.failGet
	}
	return c.items[id], nil
}

func (c *memoryCache) Set(_ context.Context, b *book.Book) error {
	if c.failSet != nil {
		return c.failSet
	}
	c.items[b.ID] = b
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id uint) error {
	delete(c.items, id)
	return nil
}

func (c *memoryCache) DeleteAll(context.Context) error {
	c.items = map[uint]*book.Book{}
	c.cleared++
	return nil
}

// stubRepository 只实现测试用到的方法，其余调用会panic
type stubRepository struct {
	book.Repository
	mock.Mock
}

func (s *stubRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	args := s.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (s *stubRepository) Update(ctx context.Context, b *book.Book) error {
	return s.Called(ctx, b).Error(0)
}

func (s *stubRepository) Delete(ctx context.Context, id uint) error {
	return s.Called(ctx, id).Error(0)
}

func TestCachedBookRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("未命中回填，命中不查库", func(t *testing.T) {
		next := new(stubRepository)
		next.On("FindByID", mock.Anything, uint(1)).Return(&book.Book{ID: 1, Title: "1984"}, nil).Once()
		cache := newMemoryCache()
		repo := newCachedBookRepository(next, cache, zap.NewNop())

		first, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "1984", first.Title)
		assert.Equal(t, "1984", second.Title)
		next.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("缓存故障降级到数据库", func(t *testing.T) {
		next := new(stubRepository)
		next.On("FindByID", mock.Anything, uint(1)).Return(&book.Book{ID: 1}, nil)
		cache := newMemoryCache()
		cache.failGet = errors.New("connection refused")
		cache.failSet = errors.New("connection refused")

		b, err := newCachedBookRepository(next, cache, zap.NewNop()).FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), b.ID)
	})

	t.Run("作者缺失的图书不缓存", func(t *testing.T) {
		next := new(stubRepository)
		next.On("FindByID", mock.Anything, uint(4)).Return(&book.Book{ID: 4, AuthorID: 1}, nil).Once()
		next.On("FindByID", mock.Anything, uint(4)).Return(&book.Book{
			ID: 4, AuthorID: 1, Author: &author.Author{ID: 1, Name: "Frank Herbert"},
		}, nil).Once()
		cache := newMemoryCache()
		repo := newCachedBookRepository(next, cache, zap.NewNop())

		first, err := repo.FindByID(ctx, 4)
		require.NoError(t, err)
		assert.Nil(t, first.Author)
		assert.Empty(t, cache.items)

		// 作者补建之后能立刻读到
		second, err := repo.FindByID(ctx, 4)
		require.NoError(t, err)
		require.NotNil(t, second.Author)
		assert.Equal(t, "Frank Herbert", second.Author.Name)
		assert.Contains(t, cache.items, uint(4))
	})

	t.Run("不存在不写缓存", func(t *testing.T) {
		next := new(stubRepository)
		next.On("FindByID", mock.Anything, uint(9)).Return(nil, book.ErrBookNotFound)
		cache := newMemoryCache()

		_, err := newCachedBookRepository(next, cache, zap.NewNop()).FindByID(ctx, 9)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Empty(t, cache.items)
	})
}

func TestCachedBookRepository_WritesEvict(t *testing.T) {
	ctx := context.Background()

	next := new(stubRepository)
	next.On("Update", mock.Anything, mock.Anything).Return(nil)
	next.On("Delete", mock.Anything, uint(2)).Return(nil)
	next.On("Delete", mock.Anything, uint(3)).Return(book.ErrBookNotFound)

	cache := newMemoryCache()
	cache.items[1] = &book.Book{ID: 1}
	cache.items[2] = &book.Book{ID: 2}
	cache.items[3] = &book.Book{ID: 3}
	repo := newCachedBookRepository(next, cache, zap.NewNop())

	require.NoError(t, repo.Update(ctx, &book.Book{ID: 1}))
	require.NoError(t, repo.Delete(ctx, 2))
	assert.ErrorIs(t, repo.Delete(ctx, 3), book.ErrBookNotFound)

	assert.NotContains(t, cache.items, uint(1))
	assert.NotContains(t, cache.items, uint(2))
	assert.Contains(t, cache.items, uint(3))
}

func TestCachedBookRepository_AuthorChanged(t *testing.T) {
	cache := newMemoryCache()
	cache.items[1] = &book.Book{ID: 1}
	repo := newCachedBookRepository(new(stubRepository), cache, zap.NewNop())

	repo.AuthorChanged(context.Background(), 7)

	assert.Empty(t, cache.items)
	assert.Equal(t, 1, cache.cleared)
}
