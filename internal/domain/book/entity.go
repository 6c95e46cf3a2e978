package book

import (
	"strings"
	"time"

	"github.com/xiebiao/library/internal/domain/author"
)

// Book 图书实体
// 1. ISBN在全部图书中唯一（存在性检查 + 唯一索引双重保证）
// 2. AuthorID是弱引用，不校验作者是否存在；读取时附带Author，作者已删除则为nil
// 3. Version是乐观锁版本号
type Book struct {
	ID            uint
	Title         string
	ISBN          string
	PublishedYear int
	AuthorID      uint
	Author        *author.Author
	Version       uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TitleKey 返回用于大小写不敏感搜索的规范化书名
// 在Go里按Unicode转小写，不依赖数据库LOWER()（sqlite只处理ASCII）
func TitleKey(title string) string {
	return strings.ToLower(title)
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, isbn string, publishedYear int, authorID uint) *Book {
	return &Book{
		Title:         strings.TrimSpace(title),
		ISBN:          strings.TrimSpace(isbn),
		PublishedYear: publishedYear,
		AuthorID:      authorID,
	}
}

// Validate 必填字段校验
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return ErrISBNRequired
	}
	return nil
}

// Merge 字段级合并：只覆盖title、isbn、publishedYear、authorId
// ID、Version、CreatedAt保持不变
func (b *Book) Merge(src *Book) {
	b.Title = strings.TrimSpace(src.Title)
	b.ISBN = strings.TrimSpace(src.ISBN)
	b.PublishedYear = src.PublishedYear
	b.AuthorID = src.AuthorID
}
