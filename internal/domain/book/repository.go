package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置)
// 所有读操作返回的图书都已附带Author
type Repository interface {
	// Create 创建图书，ISBN冲突返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书，不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindPage 按ID升序取[offset, offset+limit)
	FindPage(ctx context.Context, offset, limit int) ([]*Book, error)

	// Count 图书总数
	Count(ctx context.Context) (int64, error)

	// FindByTitleContains 标题包含substr（大小写不敏感）
	FindByTitleContains(ctx context.Context, substr string) ([]*Book, error)

	// ExistsByISBN ISBN是否已被占用
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Exists 判断图书是否存在
	Exists(ctx context.Context, id uint) (bool, error)

	// Update 以book.Version为期望版本号更新可变字段，成功后Version+1
	// 没有任何行被更新时返回ErrConcurrentUpdate；ISBN冲突返回ErrISBNDuplicate
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书，不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error
}
