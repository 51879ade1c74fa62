package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"treki/internal/types"
)

// Client Treki 服务端 API 客户端
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New 创建客户端，token 可以为空（仅访问公开接口）
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SetToken 更新登录凭证
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIResponse 服务端统一响应格式
type APIResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doRequest 执行 HTTP 请求
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) (*APIResponse, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("序列化请求失败: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("satoken", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	if apiResp.Code != 0 {
		return nil, fmt.Errorf("API 错误: %s", apiResp.Message)
	}

	return &apiResp, nil
}

// decode 执行请求并解析 data 字段
func (c *Client) decode(ctx context.Context, method, path string, payload, out any) error {
	resp, err := c.doRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("解析响应数据失败: %w", err)
	}
	return nil
}

// Register 注册账号
func (c *Client) Register(ctx context.Context, username, password, email string) (*types.LoginResult, error) {
	var result types.LoginResult
	err := c.decode(ctx, "POST", "/api/auth/register", types.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Login 登录并记住返回的凭证
func (c *Client) Login(ctx context.Context, username, password string) (*types.LoginResult, error) {
	var result types.LoginResult
	err := c.decode(ctx, "POST", "/api/auth/login", types.LoginRequest{
		Username: username,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Logout 退出登录
func (c *Client) Logout(ctx context.Context) error {
	err := c.decode(ctx, "POST", "/api/auth/logout", nil, nil)
	if err == nil {
		c.token = ""
	}
	return err
}

// GetUserInfo 获取当前用户信息
func (c *Client) GetUserInfo(ctx context.Context) (*types.UserInfo, error) {
	var info types.UserInfo
	if err := c.decode(ctx, "GET", "/api/auth/user-info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Send 通过服务端代理执行出站调用
func (c *Client) Send(ctx context.Context, req *types.SendRequest) (*types.Envelope, error) {
	var envelope types.Envelope
	if err := c.decode(ctx, "POST", "/api/requests/send", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// ListRequests 列出当前用户的请求定义
func (c *Client) ListRequests(ctx context.Context) ([]types.RequestInfo, error) {
	var list []types.RequestInfo
	if err := c.decode(ctx, "GET", "/api/requests", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetRequest 获取请求定义详情
func (c *Client) GetRequest(ctx context.Context, id uint) (*types.RequestInfo, error) {
	var info types.RequestInfo
	if err := c.decode(ctx, "GET", fmt.Sprintf("/api/requests/%d", id), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateRequest 创建请求定义
func (c *Client) CreateRequest(ctx context.Context, req *types.CreateRequestRequest) (*types.RequestInfo, error) {
	var info types.RequestInfo
	if err := c.decode(ctx, "POST", "/api/requests", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateRequest 部分更新请求定义
func (c *Client) UpdateRequest(ctx context.Context, id uint, req *types.UpdateRequestRequest) (*types.RequestInfo, error) {
	var info types.RequestInfo
	if err := c.decode(ctx, "PUT", fmt.Sprintf("/api/requests/%d", id), req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteRequest 删除请求定义
func (c *Client) DeleteRequest(ctx context.Context, id uint) error {
	return c.decode(ctx, "DELETE", fmt.Sprintf("/api/requests/%d", id), nil, nil)
}

// ListHistory 列出最近的调用历史
func (c *Client) ListHistory(ctx context.Context) ([]types.HistoryInfo, error) {
	var list []types.HistoryInfo
	if err := c.decode(ctx, "GET", "/api/history", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AppendHistory 手动写入一条调用历史
func (c *Client) AppendHistory(ctx context.Context, req *types.AppendHistoryRequest) (*types.HistoryInfo, error) {
	var info types.HistoryInfo
	if err := c.decode(ctx, "POST", "/api/history", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteHistory 删除单条调用历史
func (c *Client) DeleteHistory(ctx context.Context, id uint) error {
	return c.decode(ctx, "DELETE", fmt.Sprintf("/api/history/%d", id), nil, nil)
}

// ClearHistory 清空调用历史
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.decode(ctx, "DELETE", "/api/history", nil, nil)
}
