//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 测试辅助工具
// 集成测试针对已经启动的服务运行：
//
//	go run ./cmd/api &
//	go test -tags integration ./test/integration/...
//
// 服务地址可以用LIBRARY_BASE_URL覆盖

const (
	// defaultBaseURL API基础URL
	defaultBaseURL = "http://localhost:8080/api"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// BaseURL 返回API基础URL
func BaseURL() string {
	if u := os.Getenv("LIBRARY_BASE_URL"); u != "" {
		return u
	}
	return defaultBaseURL
}

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Header  http.Header     `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// AuthorData 作者响应数据
type AuthorData struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth *string `json:"dateOfBirth"`
	Biography   string  `json:"biography"`
	Version     uint    `json:"version"`
}

// BookData 图书响应数据
type BookData struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	ISBN          string      `json:"isbn"`
	PublishedYear int         `json:"publishedYear"`
	AuthorID      uint        `json:"authorId"`
	Author        *AuthorData `json:"author"`
	Version       uint        `json:"version"`
}

// Do 发送请求并解析JSON响应
// 204等没有响应体的情况只填充Status和Header
func Do(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	result := &Response{Status: resp.StatusCode, Header: resp.Header}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, result), "解析JSON响应失败: %s", string(raw))
	}
	return result
}

// GenerateTestISBN 生成唯一的测试ISBN
// 使用时间戳的后10位，重复运行时不会冲突
func GenerateTestISBN() string {
	return fmt.Sprintf("978%010d", time.Now().UnixNano()%10000000000)
}

// GenerateAuthorName 生成唯一的作者名
func GenerateAuthorName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

// CreateTestAuthor 创建作者并返回ID
func CreateTestAuthor(t *testing.T, name string) uint {
	t.Helper()
	resp := Do(t, http.MethodPost, BaseURL()+"/authors", map[string]interface{}{
		"name":        name,
		"dateOfBirth": "1970-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.Status, "创建作者失败: %s", resp.Message)

	var a AuthorData
	require.NoError(t, json.Unmarshal(resp.Data, &a))
	return a.ID
}

// CreateTestBook 创建图书并返回响应数据
func CreateTestBook(t *testing.T, title string, authorID uint) BookData {
	t.Helper()
	resp := Do(t, http.MethodPost, BaseURL()+"/books", map[string]interface{}{
		"title":         title,
		"isbn":          GenerateTestISBN(),
		"publishedYear": 2024,
		"authorId":      authorID,
	})
	require.Equal(t, http.StatusCreated, resp.Status, "创建图书失败: %s", resp.Message)

	var b BookData
	require.NoError(t, json.Unmarshal(resp.Data, &b))
	return b
}
