//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
// 场景：创建 → 查询 → 搜索 → 更新 → 删除，以及分页和错误码

func TestBookLifecycle(t *testing.T) {
	authorID := CreateTestAuthor(t, GenerateAuthorName("Lifecycle Author"))
	title := fmt.Sprintf("Integration Book %s", GenerateTestISBN())
	created := CreateTestBook(t, title, authorID)

	t.Run("查询详情带作者信息", func(t *testing.T) {
		resp := Do(t, http.MethodGet, fmt.Sprintf("%s/books/%d", BaseURL(), created.ID), nil)
		require.Equal(t, http.StatusOK, resp.Status)

		var b BookData
		require.NoError(t, json.Unmarshal(resp.Data, &b))
		assert.Equal(t, title, b.Title)
		require.NotNil(t, b.Author)
		assert.Equal(t, authorID, b.Author.ID)
	})

	t.Run("按标题搜索", func(t *testing.T) {
		resp := Do(t, http.MethodGet, BaseURL()+"/books/search?title="+url.QueryEscape(title), nil)
		require.Equal(t, http.StatusOK, resp.Status)

		var books []BookData
		require.NoError(t, json.Unmarshal(resp.Data, &books))
		require.Len(t, books, 1)
		assert.Equal(t, created.ID, books[0].ID)
	})

	t.Run("更新", func(t *testing.T) {
		resp := Do(t, http.MethodPut, fmt.Sprintf("%s/books/%d", BaseURL(), created.ID), map[string]interface{}{
			"id":            created.ID,
			"title":         title + " (2nd ed.)",
			"isbn":          created.ISBN,
			"publishedYear": 2025,
			"authorId":      authorID,
			"version":       created.Version,
		})
		require.Equal(t, http.StatusNoContent, resp.Status, resp.Message)

		// 旧版本号再提交一次应该冲突
		resp = Do(t, http.MethodPut, fmt.Sprintf("%s/books/%d", BaseURL(), created.ID), map[string]interface{}{
			"id":      created.ID,
			"title":   "stale",
			"isbn":    created.ISBN,
			"version": created.Version,
		})
		assert.Equal(t, http.StatusConflict, resp.Status)
	})

	t.Run("删除", func(t *testing.T) {
		resp := Do(t, http.MethodDelete, fmt.Sprintf("%s/books/%d", BaseURL(), created.ID), nil)
		require.Equal(t, http.StatusNoContent, resp.Status)

		resp = Do(t, http.MethodGet, fmt.Sprintf("%s/books/%d", BaseURL(), created.ID), nil)
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})
}

func TestBookList(t *testing.T) {
	resp := Do(t, http.MethodGet, BaseURL()+"/books?page=1&pageSize=1", nil)
	require.Equal(t, http.StatusOK, resp.Status)

	var meta struct {
		TotalCount  int64 `json:"totalCount"`
		PageSize    int   `json:"pageSize"`
		CurrentPage int   `json:"currentPage"`
		TotalPages  int   `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Header.Get("X-Pagination")), &meta))
	assert.Equal(t, 1, meta.PageSize)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.EqualValues(t, meta.TotalCount, meta.TotalPages)

	resp = Do(t, http.MethodGet, BaseURL()+"/books?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestBookErrors(t *testing.T) {
	authorID := CreateTestAuthor(t, GenerateAuthorName("Duplicate ISBN Author"))
	b := CreateTestBook(t, "Duplicate ISBN", authorID)

	resp := Do(t, http.MethodPost, BaseURL()+"/books", map[string]interface{}{
		"title": "Another", "isbn": b.ISBN, "authorId": authorID,
	})
	assert.Equal(t, http.StatusConflict, resp.Status)

	resp = Do(t, http.MethodGet, BaseURL()+"/books/999999999", nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = Do(t, http.MethodPut, fmt.Sprintf("%s/books/%d", BaseURL(), b.ID), map[string]interface{}{
		"id": b.ID + 1, "title": "x", "isbn": "y",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}
