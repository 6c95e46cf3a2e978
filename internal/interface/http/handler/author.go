package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authors author.Service
	metrics *metrics.Metrics
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authors author.Service, m *metrics.Metrics) *AuthorHandler {
	return &AuthorHandler{authors: authors, metrics: m}
}

// ListAuthors 全部作者
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.AuthorResponse}
// @Failure      404 {object} response.Response "没有任何作者"
// @Router       /api/authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.authors.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorListResponse(authors))
}

// GetAuthor 作者详情
// @Router       /api/authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := h.authors.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "作者名已存在（大小写不敏感）"
// @Router       /api/authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.authors.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.AuthorsCreated.Inc()
	response.Created(c, fmt.Sprintf("/api/authors/%d", a.ID), dto.NewAuthorResponse(a))
}

// UpdateAuthor 整体覆盖作者
// @Router       /api/authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authors.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		if errors.Is(err, author.ErrConcurrentUpdate) {
			h.metrics.UpdateConflicts.WithLabelValues("author").Inc()
		}
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DeleteAuthor 删除作者，引用它的图书保留
// @Router       /api/authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.authors.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
