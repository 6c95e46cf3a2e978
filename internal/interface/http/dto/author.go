package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/xiebiao/library/internal/domain/author"
)

// DateLayout 出生日期的JSON格式
const DateLayout = "2006-01-02"

// Date 只有日期部分的时间
// 序列化为"2006-01-02"；反序列化同时接受"2006-01-02"和RFC3339
type Date time.Time

// MarshalJSON 实现json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(DateLayout))
}

// UnmarshalJSON 实现json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dateOfBirth must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		*d = Date(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("dateOfBirth must look like %s", DateLayout)
	}
	y, m, day := t.Date()
	*d = Date(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
	return nil
}

// CreateAuthorRequest HTTP创建作者请求
type CreateAuthorRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"George Orwell"`
	DateOfBirth Date   `json:"dateOfBirth" example:"1903-06-25"`
	Biography   string `json:"biography" binding:"max=5000" example:"English novelist"`
}

// ToEntity 转换为领域实体
func (r *CreateAuthorRequest) ToEntity() *author.Author {
	return author.NewAuthor(r.Name, time.Time(r.DateOfBirth), r.Biography)
}

// UpdateAuthorRequest HTTP更新作者请求（整体覆盖）
type UpdateAuthorRequest struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" binding:"required,max=200" example:"George Orwell"`
	DateOfBirth Date   `json:"dateOfBirth" example:"1903-06-25"`
	Biography   string `json:"biography" binding:"max=5000" example:"English novelist and essayist"`
	Version     uint   `json:"version,omitempty" example:"1"`
}

// ToEntity 转换为领域实体
func (r *UpdateAuthorRequest) ToEntity() *author.Author {
	a := author.NewAuthor(r.Name, time.Time(r.DateOfBirth), r.Biography)
	a.ID = r.ID
	a.Version = r.Version
	return a
}

// AuthorResponse HTTP作者响应
type AuthorResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"George Orwell"`
	DateOfBirth Date   `json:"dateOfBirth" example:"1903-06-25"`
	Biography   string `json:"biography" example:""`
	Version     uint   `json:"version" example:"1"`
}

// NewAuthorResponse 领域实体 → 响应
func NewAuthorResponse(a *author.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		DateOfBirth: Date(a.DateOfBirth),
		Biography:   a.Biography,
		Version:     a.Version,
	}
}

// NewAuthorListResponse 批量转换
func NewAuthorListResponse(authors []*author.Author) []*AuthorResponse {
	return lo.Map(authors, func(a *author.Author, _ int) *AuthorResponse {
		return NewAuthorResponse(a)
	})
}
