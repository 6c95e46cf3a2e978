package gormdb

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 所有读操作用一次IN查询批量附带作者，作者不存在时Author为nil
// 4. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:         b.Title,
		TitleKey:      book.TitleKey(b.Title),
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		AuthorID:      b.AuthorID,
		Version:       1,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.Version = model.Version
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := conn(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	books, err := r.withAuthors(ctx, []BookModel{model})
	if err != nil {
		return nil, err
	}
	return books[0], nil
}

// FindPage 分页查询，按ID升序保证翻页稳定
func (r *bookRepository) FindPage(ctx context.Context, offset, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := conn(ctx, r.db).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return r.withAuthors(ctx, models)
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询图书总数失败")
	}
	return total, nil
}

// FindByTitleContains 标题子串搜索(大小写不敏感)
// 匹配title_key列，查询串用同一个book.TitleKey规范化；用户输入中的%和_按字面匹配
func (r *bookRepository) FindByTitleContains(ctx context.Context, substr string) ([]*book.Book, error) {
	var models []BookModel
	err := conn(ctx, r.db).
		Where("title_key LIKE ? ESCAPE '!'", containsPattern(substr)).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}
	return r.withAuthors(ctx, models)
}

// ExistsByISBN ISBN是否已被占用
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&BookModel{}).Where("isbn = ?", isbn).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "查询ISBN失败")
	}
	return n > 0, nil
}

// Exists 判断图书是否存在
func (r *bookRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "查询图书失败")
	}
	return n > 0, nil
}

// Update 带版本号的条件更新
// UPDATE books SET ..., version = version + 1 WHERE id = ? AND version = ?
// 没有行被更新时由调用方判断是不存在还是被并发修改
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := conn(ctx, r.db).
		Model(&BookModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"title":          b.Title,
			"title_key":      book.TitleKey(b.Title),
			"isbn":           b.ISBN,
			"published_year": b.PublishedYear,
			"author_id":      b.AuthorID,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrConcurrentUpdate
	}

	b.Version++
	return nil
}

// Delete 物理删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// withAuthors 转换为领域实体并批量附带作者
func (r *bookRepository) withAuthors(ctx context.Context, models []BookModel) ([]*book.Book, error) {
	books := lo.Map(models, func(m BookModel, _ int) *book.Book {
		return toBookEntity(&m)
	})
	if len(books) == 0 {
		return books, nil
	}

	ids := lo.Uniq(lo.Map(models, func(m BookModel, _ int) uint { return m.AuthorID }))

	var authors []AuthorModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&authors).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书作者失败")
	}

	byID := lo.SliceToMap(authors, func(m AuthorModel) (uint, *author.Author) {
		return m.ID, toAuthorEntity(&m)
	})
	for _, b := range books {
		b.Author = byID[b.AuthorID]
	}
	return books, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		ISBN:          model.ISBN,
		PublishedYear: model.PublishedYear,
		AuthorID:      model.AuthorID,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
