//go:build integration

// Package integration 针对运行中服务的端到端测试
//
// 运行方式：
//
//	go run ./cmd/api                          # 另一个终端启动服务
//	go test -tags=integration ./test/integration/...
//
// BOOKS_API_URL 可指定服务地址，默认 http://localhost:8080
package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

// BaseURL 服务地址
func BaseURL() string {
	if url := os.Getenv("BOOKS_API_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return "http://localhost:8080"
}

// Author 作者响应
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

// Book 图书响应
type Book struct {
	ISBN   string  `json:"isbn"`
	Title  *string `json:"title"`
	Author *Author `json:"author"`
}

// Result HTTP响应
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode 解析JSON响应体
func (r *Result) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析JSON响应失败: %s", string(r.Body))
}

// Do 发送请求，body为空字符串时不带请求体
func Do(t *testing.T, method, path, body string) *Result {
	t.Helper()

	req, err := http.NewRequest(method, BaseURL()+path, strings.NewReader(body))
	require.NoError(t, err, "创建HTTP请求失败")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败（服务是否已启动？）")
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Result{Status: resp.StatusCode, Header: resp.Header, Body: data}
}

// Send 发送请求只返回状态码，可以在子goroutine中使用
func Send(method, path, body string) (int, error) {
	req, err := http.NewRequest(method, BaseURL()+path, strings.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// GenerateTestISBN 生成唯一的测试ISBN
// 服务端数据库会在多次运行之间保留，用时间戳避免冲突
func GenerateTestISBN() string {
	return fmt.Sprintf("978%010d", time.Now().UnixNano()%10000000000)
}

// GenerateTestName 生成唯一的作者姓名
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

// CreateTestAuthor 创建作者并返回
func CreateTestAuthor(t *testing.T, name string, age *int) Author {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{"name": name, "age": age})
	require.NoError(t, err)

	res := Do(t, http.MethodPost, "/authors", string(body))
	require.Equal(t, http.StatusCreated, res.Status, "创建作者失败: %s", string(res.Body))

	var a Author
	res.Decode(t, &a)
	return a
}
