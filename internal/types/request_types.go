package types

// 支持的HTTP方法
var Methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}

// IsValidMethod 判断方法是否受支持
func IsValidMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

// 请求体类型
const (
	BodyNone       = "none"
	BodyJSON       = "json"
	BodyFormData   = "form-data"
	BodyURLEncoded = "x-www-form-urlencoded"
)

// 认证类型
const (
	AuthNone   = "none"
	AuthBasic  = "basic"
	AuthBearer = "bearer"
	AuthAPIKey = "apikey"
)

// APIKey 追加位置
const (
	AddToHeader = "header"
	AddToQuery  = "query"
)

// KVRow 键值行（请求头/查询参数共用）
type KVRow struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// IsBlank 判断是否为空白行（编辑器尾部占位行）
func (r KVRow) IsBlank() bool {
	return r.Key == "" && r.Value == ""
}

// BodySpec 请求体定义
type BodySpec struct {
	Type    string `json:"type"` // none, json, form-data, x-www-form-urlencoded
	Content string `json:"content"`
}

// AuthParams 认证参数
type AuthParams struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value,omitempty"`
	AddTo    string `json:"addTo,omitempty"` // header, query
}

// AuthSpec 认证定义
type AuthSpec struct {
	Type   string     `json:"type"` // none, basic, bearer, apikey
	Params AuthParams `json:"params"`
}

// CreateRequestRequest 创建请求定义
type CreateRequestRequest struct {
	Name         string    `json:"name"`
	Method       string    `json:"method"`
	URL          string    `json:"url"`
	Headers      []KVRow   `json:"headers"`
	Params       []KVRow   `json:"params"`
	Body         *BodySpec `json:"body"`
	Auth         *AuthSpec `json:"auth"`
	CollectionID string    `json:"collectionId"`
}

// UpdateRequestRequest 更新请求定义
// 指针字段表示"未提供则保留原值"，显式传空值可以清空字段
type UpdateRequestRequest struct {
	Name         *string   `json:"name"`
	Method       *string   `json:"method"`
	URL          *string   `json:"url"`
	Headers      *[]KVRow  `json:"headers"`
	Params       *[]KVRow  `json:"params"`
	Body         *BodySpec `json:"body"`
	Auth         *AuthSpec `json:"auth"`
	CollectionID *string   `json:"collectionId"`
}

// RequestInfo 请求定义响应
type RequestInfo struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Method       string    `json:"method"`
	URL          string    `json:"url"`
	Headers      []KVRow   `json:"headers"`
	Params       []KVRow   `json:"params"`
	Body         BodySpec  `json:"body"`
	Auth         AuthSpec  `json:"auth"`
	CollectionID string    `json:"collectionId"`
	CreatedAt    *DateTime `json:"createdAt"`
	UpdatedAt    *DateTime `json:"updatedAt"`
}
