package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// PaginationHeader 列表分页元数据所在的响应头
const PaginationHeader = "X-Pagination"

// BookHandler 图书HTTP处理器
type BookHandler struct {
	books   book.Service
	metrics *metrics.Metrics
}

// NewBookHandler 创建图书处理器
func NewBookHandler(books book.Service, m *metrics.Metrics) *BookHandler {
	return &BookHandler{books: books, metrics: m}
}

// ListBooks 分页查询图书
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Param        page     query int false "页码，默认1"
// @Param        pageSize query int false "每页数量，默认10"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Header       200 {string} X-Pagination "分页元数据JSON"
// @Failure      400 {object} response.Response "分页参数非法"
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.books.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta, err := json.Marshal(dto.NewPaginationMetadata(page))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(PaginationHeader, string(meta))

	response.Success(c, dto.NewBookListResponse(page.Items))
}

// SearchBooks 按标题搜索
// @Summary      标题搜索（大小写不敏感）
// @Tags         图书
// @Produce      json
// @Param        title query string true "标题关键字"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "缺少title"
// @Failure      404 {object} response.Response "没有匹配的图书"
// @Router       /api/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	books, err := h.books.Search(c.Request.Context(), req.Title)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookListResponse(books))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "ID格式错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.books.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(b))
}

// CreateBook 创建图书
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Header       201 {string} Location "/api/books/{id}"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.books.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.BooksCreated.Inc()
	response.Created(c, fmt.Sprintf("/api/books/%d", b.ID), dto.NewBookResponse(b))
}

// UpdateBook 更新图书（字段合并）
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息，id必须与路径一致"
// @Success      204
// @Failure      400 {object} response.Response "参数错误或ID不一致"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "ISBN冲突或并发修改"
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.books.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		if errors.Is(err, book.ErrConcurrentUpdate) {
			h.metrics.UpdateConflicts.WithLabelValues("book").Inc()
		}
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      400 {object} response.Response "ID格式错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.books.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
