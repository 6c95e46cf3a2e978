//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorLifecycle(t *testing.T) {
	name := GenerateAuthorName("Integration Author")
	id := CreateTestAuthor(t, name)

	t.Run("名字大小写不敏感唯一", func(t *testing.T) {
		resp := Do(t, http.MethodPost, BaseURL()+"/authors", map[string]interface{}{
			"name": strings.ToUpper(name),
		})
		assert.Equal(t, http.StatusConflict, resp.Status)
	})

	t.Run("整体覆盖更新", func(t *testing.T) {
		resp := Do(t, http.MethodPut, fmt.Sprintf("%s/authors/%d", BaseURL(), id), map[string]interface{}{
			"id":        id,
			"name":      name,
			"biography": "updated",
		})
		require.Equal(t, http.StatusNoContent, resp.Status, resp.Message)

		resp = Do(t, http.MethodGet, fmt.Sprintf("%s/authors/%d", BaseURL(), id), nil)
		require.Equal(t, http.StatusOK, resp.Status)
		var a AuthorData
		require.NoError(t, json.Unmarshal(resp.Data, &a))
		assert.Equal(t, "updated", a.Biography)
		// dateOfBirth未传入，被清空
		assert.Nil(t, a.DateOfBirth)
	})

	t.Run("删除作者后图书保留", func(t *testing.T) {
		b := CreateTestBook(t, "Orphaned Book", id)

		resp := Do(t, http.MethodDelete, fmt.Sprintf("%s/authors/%d", BaseURL(), id), nil)
		require.Equal(t, http.StatusNoContent, resp.Status)

		resp = Do(t, http.MethodGet, fmt.Sprintf("%s/books/%d", BaseURL(), b.ID), nil)
		require.Equal(t, http.StatusOK, resp.Status)
		var got BookData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, id, got.AuthorID)
		assert.Nil(t, got.Author)
	})
}
