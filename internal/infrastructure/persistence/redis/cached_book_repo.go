package redis

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
)

// detailCache 图书详情缓存的最小接口，BookCache实现它
type detailCache interface {
	Get(ctx context.Context, id uint) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

// CachedBookRepository 给book.Repository加一层详情缓存
// 缓存的任何失败只记日志，请求始终以数据库结果为准
type CachedBookRepository struct {
	book.Repository
	cache detailCache
	log   *zap.Logger
}

var _ book.Repository = (*CachedBookRepository)(nil)

// NewCachedBookRepository 创建带缓存的图书仓储
func NewCachedBookRepository(next book.Repository, cache *BookCache, log *zap.Logger) *CachedBookRepository {
	return newCachedBookRepository(next, cache, log)
}

func newCachedBookRepository(next book.Repository, cache detailCache, log *zap.Logger) *CachedBookRepository {
	return &CachedBookRepository{Repository: next, cache: cache, log: log}
}

// FindByID 先查缓存，未命中查数据库后回填
func (r *CachedBookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	cached, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	b, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 作者缺失的图书不缓存，同ID的作者随时可能被创建
	if b.AuthorID != 0 && b.Author == nil {
		return b, nil
	}

	if err := r.cache.Set(ctx, b); err != nil {
		r.log.Warn("写入图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
	return b, nil
}

// Update 更新成功后删除缓存
func (r *CachedBookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := r.Repository.Update(ctx, b); err != nil {
		return err
	}
	r.evict(ctx, b.ID)
	return nil
}

// Delete 删除成功后删除缓存
func (r *CachedBookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedBookRepository) evict(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}

// AuthorChanged 实现author.ChangeNotifier
// 不知道哪些图书引用了该作者，直接清空全部详情缓存
func (r *CachedBookRepository) AuthorChanged(ctx context.Context, id uint) {
	if err := r.cache.DeleteAll(ctx); err != nil {
		r.log.Warn("清空图书缓存失败", zap.Uint("author_id", id), zap.Error(err))
	}
}

var _ author.ChangeNotifier = (*CachedBookRepository)(nil)
