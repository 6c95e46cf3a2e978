package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
)

const bookDetailPrefix = "book:detail:"

// BookCache 图书详情缓存（Cache-Aside）
// 1. 读：先查缓存，未命中再查数据库并回填
// 2. 写：更新数据库后删除缓存，不做更新缓存
// 3. 详情里嵌入了作者，作者变化时清空全部详情缓存
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书详情缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// cachedBook 缓存里的JSON结构，与领域实体解耦
type cachedBook struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	ISBN          string        `json:"isbn"`
	PublishedYear int           `json:"publishedYear"`
	AuthorID      uint          `json:"authorId"`
	Version       uint          `json:"version"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Author        *cachedAuthor `json:"author,omitempty"`
}

type cachedAuthor struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Biography   string    `json:"biography"`
	Version     uint      `json:"version"`
}

// Get 获取图书详情，未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, bookDetailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var cb cachedBook
	if err := json.Unmarshal(val, &cb); err != nil {
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}
	return cb.toEntity(), nil
}

// Set 写入图书详情
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(fromEntity(b))
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, bookDetailKey(b.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Delete 删除单本图书的详情缓存
func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookDetailKey(id)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// DeleteAll 用SCAN遍历删除全部详情缓存，避免KEYS阻塞Redis
func (c *BookCache) DeleteAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, bookDetailPrefix+"*", 100).Iterator()

	batch := make([]string, 0, 100)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("删除缓存失败: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存失败: %w", err)
	}
	return flush()
}

func bookDetailKey(id uint) string {
	return fmt.Sprintf("%s%d", bookDetailPrefix, id)
}

func fromEntity(b *book.Book) *cachedBook {
	cb := &cachedBook{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		AuthorID:      b.AuthorID,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if a := b.Author; a != nil {
		cb.Author = &cachedAuthor{
			ID:          a.ID,
			Name:        a.Name,
			DateOfBirth: a.DateOfBirth,
			Biography:   a.Biography,
			Version:     a.Version,
		}
	}
	return cb
}

func (cb *cachedBook) toEntity() *book.Book {
	b := &book.Book{
		ID:            cb.ID,
		Title:         cb.Title,
		ISBN:          cb.ISBN,
		PublishedYear: cb.PublishedYear,
		AuthorID:      cb.AuthorID,
		Version:       cb.Version,
		CreatedAt:     cb.CreatedAt,
		UpdatedAt:     cb.UpdatedAt,
	}
	if a := cb.Author; a != nil {
		b.Author = &author.Author{
			ID:          a.ID,
			Name:        a.Name,
			DateOfBirth: a.DateOfBirth,
			Biography:   a.Biography,
			Version:     a.Version,
		}
	}
	return b
}
