package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"treki/internal/client"
	"treki/internal/config"
	"treki/internal/workspace"

	"gopkg.in/yaml.v3"
)

// 环境变量：服务端地址、客户端配置文件路径
const (
	serverEnv     = "TREKI_SERVER"
	configEnv     = "TREKI_CONFIG"
	defaultServer = "http://127.0.0.1:5555"
)

// configDir 返回 ~/.treki，不存在时创建
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".treki")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// tokenPath 登录凭证文件路径
func tokenPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// workspaceConfig 读取客户端工作区配置
// 默认读 ~/.treki/config.yml，TREKI_CONFIG 指定其他文件（服务端 config.yml 也可用）
// 文件缺失或解析失败时返回零值，走内置默认
func workspaceConfig() config.WorkspaceConfig {
	path := os.Getenv(configEnv)
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return config.WorkspaceConfig{}
		}
		path = filepath.Join(dir, "config.yml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config.WorkspaceConfig{}
	}
	var cfg struct {
		Workspace config.WorkspaceConfig `yaml:"workspace"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config.WorkspaceConfig{}
	}
	return cfg.Workspace
}

// storePath 集合树存储文件路径，配置了 store_path 时优先
func storePath() (string, error) {
	if p := workspaceConfig().StorePath; p != "" {
		return p, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "collections.json"), nil
}

// editorDelay 编辑器防抖窗口
func editorDelay() time.Duration {
	ws := workspaceConfig()
	return ws.DebounceDelay()
}

// loadToken 读取已保存的登录凭证，没有则返回空串
func loadToken() string {
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// saveToken 保存登录凭证
func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// clearToken 删除已保存的登录凭证
func clearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// serverURL 当前服务端地址
func serverURL() string {
	if url := os.Getenv(serverEnv); url != "" {
		return url
	}
	return defaultServer
}

// newClient 创建带已保存凭证的 API 客户端
func newClient() *client.Client {
	return client.New(serverURL(), loadToken())
}

// openStore 打开本地集合树存储
func openStore() (*workspace.Store, error) {
	path, err := storePath()
	if err != nil {
		return nil, err
	}
	return workspace.Open(path)
}
