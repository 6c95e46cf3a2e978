package dto

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookRequest HTTP创建图书请求
// validator tag说明:
// - required: 必填字段(空串也算缺失)
// - max: 长度上限，与数据库列宽一致
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required,max=200" example:"1984"`
	ISBN          string `json:"isbn" binding:"required,max=20" example:"1234567890"`
	PublishedYear int    `json:"publishedYear" example:"1949"`
	AuthorID      uint   `json:"authorId" example:"1"`
}

// ToEntity 转换为领域实体
func (r *CreateBookRequest) ToEntity() *book.Book {
	return book.NewBook(r.Title, r.ISBN, r.PublishedYear, r.AuthorID)
}

// UpdateBookRequest HTTP更新图书请求
// ID必须与路径中的ID一致；Version可选，带上时用于检测并发修改
type UpdateBookRequest struct {
	ID            uint   `json:"id" example:"1"`
	Title         string `json:"title" binding:"required,max=200" example:"Nineteen Eighty-Four"`
	ISBN          string `json:"isbn" binding:"required,max=20" example:"1234567890"`
	PublishedYear int    `json:"publishedYear" example:"1949"`
	AuthorID      uint   `json:"authorId" example:"1"`
	Version       uint   `json:"version,omitempty" example:"1"`
}

// ToEntity 转换为领域实体
func (r *UpdateBookRequest) ToEntity() *book.Book {
	b := book.NewBook(r.Title, r.ISBN, r.PublishedYear, r.AuthorID)
	b.ID = r.ID
	b.Version = r.Version
	return b
}

// ListBooksRequest HTTP图书列表请求
// 参数缺省时page=1、pageSize=10；显式传入的非正数由领域服务拒绝
type ListBooksRequest struct {
	Page     int `form:"page,default=1" example:"1"`
	PageSize int `form:"pageSize,default=10" example:"10"`
}

// SearchBooksRequest HTTP标题搜索请求
type SearchBooksRequest struct {
	Title string `form:"title" example:"potter"`
}

// BookResponse HTTP图书响应
// 作者已被删除时author为null
type BookResponse struct {
	ID            uint            `json:"id" example:"1"`
	Title         string          `json:"title" example:"1984"`
	ISBN          string          `json:"isbn" example:"1234567890"`
	PublishedYear int             `json:"publishedYear" example:"1949"`
	AuthorID      uint            `json:"authorId" example:"1"`
	Author        *AuthorResponse `json:"author"`
	Version       uint            `json:"version" example:"1"`
}

// PaginationMetadata 分页元数据，序列化后放在X-Pagination响应头
type PaginationMetadata struct {
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) *BookResponse {
	resp := &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		AuthorID:      b.AuthorID,
		Version:       b.Version,
	}
	if b.Author != nil {
		resp.Author = NewAuthorResponse(b.Author)
	}
	return resp
}

// NewBookListResponse 批量转换
func NewBookListResponse(books []*book.Book) []*BookResponse {
	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = NewBookResponse(b)
	}
	return list
}

// NewPaginationMetadata 从分页结果提取元数据
func NewPaginationMetadata(p *book.Page) PaginationMetadata {
	return PaginationMetadata{
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}
