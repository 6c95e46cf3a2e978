package author

import (
	"strings"
	"time"
)

// Author 作者实体
// 1. Name在作者之间大小写不敏感唯一（存储层用name_key唯一索引兜底）
// 2. Version是乐观锁版本号，每次更新+1
type Author struct {
	ID          uint
	Name        string
	DateOfBirth time.Time
	Biography   string
	Version     uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAuthor 创建新作者(工厂方法)
func NewAuthor(name string, dateOfBirth time.Time, biography string) *Author {
	return &Author{
		Name:        strings.TrimSpace(name),
		DateOfBirth: dateOfBirth,
		Biography:   biography,
	}
}

// NameKey 返回用于唯一性比较的规范化名字
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Overwrite 用另一份数据整体覆盖可变字段
func (a *Author) Overwrite(other *Author) {
	a.Name = strings.TrimSpace(other.Name)
	a.DateOfBirth = other.DateOfBirth
	a.Biography = other.Biography
}

// Validate 必填字段校验
func (a *Author) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrNameRequired
	}
	return nil
}
