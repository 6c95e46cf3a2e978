package gormdb

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/author"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// authorRepository 作者仓储实现(GORM)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		Name:        a.Name,
		NameKey:     author.NameKey(a.Name),
		DateOfBirth: a.DateOfBirth,
		Biography:   a.Biography,
		Version:     1,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return author.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.Version = model.Version
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := conn(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// FindAll 按ID升序查询全部作者
func (r *authorRepository) FindAll(ctx context.Context) ([]*author.Author, error) {
	var models []AuthorModel
	if err := conn(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}
	return lo.Map(models, func(m AuthorModel, _ int) *author.Author {
		return toAuthorEntity(&m)
	}), nil
}

// Count 作者总数
func (r *authorRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&AuthorModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询作者总数失败")
	}
	return total, nil
}

// ExistsByName 按规范化名字查重
func (r *authorRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := conn(ctx, r.db).Model(&AuthorModel{}).Where("name_key = ?", author.NameKey(name))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "查询作者名失败")
	}
	return n > 0, nil
}

// Exists 判断作者是否存在
func (r *authorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&AuthorModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Wrap(err, "查询作者失败")
	}
	return n > 0, nil
}

// Update 整体覆盖作者
// UPDATE authors SET ..., version = version + 1 WHERE id = ? [AND version = ?]
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	query := conn(ctx, r.db).Model(&AuthorModel{}).Where("id = ?", a.ID)
	if a.Version != 0 {
		query = query.Where("version = ?", a.Version)
	}

	result := query.Updates(map[string]any{
		"name":          a.Name,
		"name_key":      author.NameKey(a.Name),
		"date_of_birth": a.DateOfBirth,
		"biography":     a.Biography,
		"version":       gorm.Expr("version + 1"),
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return author.ErrNameDuplicate
		}
		return apperrors.Wrap(result.Error, "更新作者失败")
	}

	if result.RowsAffected == 0 {
		return author.ErrConcurrentUpdate
	}

	if a.Version != 0 {
		a.Version++
	}
	return nil
}

// Delete 物理删除作者，引用它的图书不受影响
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:          model.ID,
		Name:        model.Name,
		DateOfBirth: model.DateOfBirth,
		Biography:   model.Biography,
		Version:     model.Version,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
