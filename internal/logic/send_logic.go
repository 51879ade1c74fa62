package logic

import (
	"context"
	"time"

	"treki/internal/model"
	"treki/internal/proxy"
	"treki/internal/types"
	"treki/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"treki/internal/logger"
)

// SendLogic 代理发送逻辑
type SendLogic struct {
	db        *gorm.DB
	forwarder *proxy.Forwarder
}

// NewSendLogic 创建代理发送逻辑
func NewSendLogic(db *gorm.DB, forwarder *proxy.Forwarder) *SendLogic {
	return &SendLogic{db: db, forwarder: forwarder}
}

// Send 执行出站调用并异步记录历史
// 历史写入失败只记日志，永远不影响代理响应
func (l *SendLogic) Send(ctx context.Context, userID uint, req *types.SendRequest) (*types.Envelope, error) {
	envelope, err := l.forwarder.Forward(ctx, req)
	if err != nil {
		return nil, err
	}

	l.appendHistoryAsync(userID, req, envelope)

	return envelope, nil
}

// appendHistoryAsync 旁路写入历史记录
func (l *SendLogic) appendHistoryAsync(userID uint, req *types.SendRequest, envelope *types.Envelope) {
	requestID := req.RequestID
	if requestID == "" {
		requestID = "temp"
	}

	entry := &model.HistoryEntry{
		UserID:    userID,
		RequestID: requestID,
		Request: model.RequestSnapshot{
			Method:  req.Method,
			URL:     req.URL,
			Headers: req.Headers,
			Body:    req.Body,
		},
		Response: model.ResponseSnapshot{
			Status:     envelope.Status,
			StatusText: envelope.StatusText,
			Headers:    envelope.Headers,
			Data:       envelope.Data,
		},
		Timestamp: types.NewDateTime(time.Now()),
	}

	utils.SafeGo(func() {
		if err := l.db.Create(entry).Error; err != nil {
			logger.Error("写入执行历史失败",
				zap.Uint("userId", userID),
				zap.String("url", req.URL),
				zap.Error(err))
		}
	})
}
