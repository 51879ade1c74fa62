package logic

import (
	"errors"

	"treki/internal/model"
	"treki/internal/types"
	"treki/internal/utils"

	"gorm.io/gorm"
)

// ErrNotFound 实体不存在或不属于当前用户
var ErrNotFound = errors.New("记录不存在")

// RequestLogic 请求定义逻辑
type RequestLogic struct {
	db *gorm.DB
}

// NewRequestLogic 创建请求定义逻辑
func NewRequestLogic(db *gorm.DB) *RequestLogic {
	return &RequestLogic{db: db}
}

// ListRequests 获取当前用户全部请求定义
func (l *RequestLogic) ListRequests(userID uint) ([]model.ApiRequest, error) {
	var requests []model.ApiRequest
	if err := l.db.Where("user_id = ?", userID).Order("id").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequest 获取请求定义详情
func (l *RequestLogic) GetRequest(id uint, userID uint) (*model.ApiRequest, error) {
	var request model.ApiRequest
	err := l.db.Where("id = ? AND user_id = ?", id, userID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// CreateRequest 创建请求定义
func (l *RequestLogic) CreateRequest(userID uint, req *types.CreateRequestRequest) (*model.ApiRequest, error) {
	if utils.IsEmpty(req.Name) {
		return nil, errors.New("名称不能为空")
	}
	if utils.IsEmpty(req.URL) {
		return nil, errors.New("URL不能为空")
	}

	method := req.Method
	if method == "" {
		method = "GET"
	}
	if !types.IsValidMethod(method) {
		return nil, errors.New("不支持的HTTP方法")
	}

	request := &model.ApiRequest{
		UserID:       userID,
		Name:         utils.Trim(req.Name),
		Method:       method,
		URL:          req.URL,
		Headers:      model.KVRows(req.Headers),
		Params:       model.KVRows(req.Params),
		Body:         model.Body{Type: types.BodyNone},
		Auth:         model.Auth{Type: types.AuthNone},
		CollectionID: req.CollectionID,
	}
	if req.Body != nil {
		request.Body = model.Body(*req.Body)
	}
	if req.Auth != nil {
		request.Auth = model.Auth(*req.Auth)
	}

	if err := l.db.Create(request).Error; err != nil {
		return nil, err
	}

	return request, nil
}

// UpdateRequest 部分更新请求定义
// 指针字段为nil表示保留原值，显式空值会真正清空
func (l *RequestLogic) UpdateRequest(id uint, userID uint, req *types.UpdateRequestRequest) (*model.ApiRequest, error) {
	request, err := l.GetRequest(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		request.Name = *req.Name
	}
	if req.Method != nil {
		if !types.IsValidMethod(*req.Method) {
			return nil, errors.New("不支持的HTTP方法")
		}
		request.Method = *req.Method
	}
	if req.URL != nil {
		request.URL = *req.URL
	}
	if req.Headers != nil {
		request.Headers = model.KVRows(*req.Headers)
	}
	if req.Params != nil {
		request.Params = model.KVRows(*req.Params)
	}
	if req.Body != nil {
		request.Body = model.Body(*req.Body)
	}
	if req.Auth != nil {
		request.Auth = model.Auth(*req.Auth)
	}
	if req.CollectionID != nil {
		request.CollectionID = *req.CollectionID
	}

	if err := l.db.Save(request).Error; err != nil {
		return nil, err
	}

	return request, nil
}

// DeleteRequest 删除请求定义
func (l *RequestLogic) DeleteRequest(id uint, userID uint) error {
	result := l.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.ApiRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
