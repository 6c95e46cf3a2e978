package book

import "math"

// Page 分页查询结果
type Page struct {
	Items       []*Book
	TotalCount  int64
	PageSize    int
	CurrentPage int
	TotalPages  int
}

// NewPage 计算总页数：ceil(total / pageSize)
func NewPage(items []*Book, total int64, page, pageSize int) *Page {
	size := int64(pageSize)
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	return &Page{
		Items:       items,
		TotalCount:  total,
		PageSize:    pageSize,
		CurrentPage: page,
		TotalPages:  int(totalPages),
	}
}

// Offset 第page页的起始偏移量
// 调用方需先用OffsetInRange确认不会溢出
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// OffsetInRange (page-1)*pageSize是否在int范围内
// 超出范围的页一定超过总数，直接返回空页
func OffsetInRange(page, pageSize int) bool {
	return page-1 <= math.MaxInt/pageSize
}
