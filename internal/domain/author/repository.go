package author

import (
	"context"
)

// Repository 作者仓储接口
// 由domain层定义，infrastructure层用gorm实现
type Repository interface {
	// Create 创建作者，名字冲突返回ErrNameDuplicate
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者，不存在返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindAll 按ID升序返回全部作者
	FindAll(ctx context.Context) ([]*Author, error)

	// Count 作者总数
	Count(ctx context.Context) (int64, error)

	// ExistsByName 大小写不敏感地判断名字是否已被占用
	// excludeID非0时忽略该ID对应的作者（用于更新）
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)

	// Exists 判断作者是否存在
	Exists(ctx context.Context, id uint) (bool, error)

	// Update 整体覆盖作者的可变字段
	// author.Version非0时作为期望版本号；没有任何行被更新时返回ErrConcurrentUpdate，
	// 由调用方再判断是记录不存在还是被并发修改
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者，不存在返回ErrAuthorNotFound
	Delete(ctx context.Context, id uint) error
}

// ChangeNotifier 作者被修改或删除后的回调
// 图书详情缓存里嵌入了作者信息，需要借此失效
type ChangeNotifier interface {
	AuthorChanged(ctx context.Context, id uint)
}

// NopNotifier 不做任何事的ChangeNotifier
type NopNotifier struct{}

// AuthorChanged 实现ChangeNotifier
func (NopNotifier) AuthorChanged(context.Context, uint) {}
