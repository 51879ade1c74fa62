package logic

import (
	"errors"
	"time"

	"treki/internal/auth"
	"treki/internal/model"
	"treki/internal/types"
	"treki/internal/utils"

	"gorm.io/gorm"
)

// UserLogic 用户逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Register 注册
func (l *UserLogic) Register(req *types.RegisterRequest, ip string) (*types.LoginResult, error) {
	var count int64
	l.db.Model(&model.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return nil, errors.New("用户名已存在")
	}

	user := &model.User{
		Username: req.Username,
		Password: utils.MD5(req.Password),
		Email:    req.Email,
		Status:   1,
	}

	if err := l.db.Create(user).Error; err != nil {
		return nil, err
	}

	return l.loginUser(user, ip)
}

// Login 登录
func (l *UserLogic) Login(req *types.LoginRequest, ip string) (*types.LoginResult, error) {
	var user model.User
	if err := l.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("用户名或密码错误")
		}
		return nil, err
	}

	if user.Password != utils.MD5(req.Password) {
		return nil, errors.New("用户名或密码错误")
	}

	if user.Status != 1 {
		return nil, errors.New("账号已被禁用")
	}

	return l.loginUser(&user, ip)
}

// loginUser 签发token并刷新登录信息
func (l *UserLogic) loginUser(user *model.User, ip string) (*types.LoginResult, error) {
	token, err := auth.Login(user.ID)
	if err != nil {
		return nil, err
	}

	now := types.NewDateTime(time.Now())
	l.db.Model(user).Updates(map[string]any{
		"last_login_at": now,
		"last_login_ip": ip,
	})

	return &types.LoginResult{
		Token: token,
		User:  l.toUserInfo(user),
	}, nil
}

// Logout 登出
func (l *UserLogic) Logout(token string) error {
	return auth.LogoutByToken(token)
}

// GetUserInfo 获取用户信息
func (l *UserLogic) GetUserInfo(userID uint) (*types.UserInfo, error) {
	var user model.User
	if err := l.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return l.toUserInfo(&user), nil
}

// toUserInfo 模型转DTO
func (l *UserLogic) toUserInfo(user *model.User) *types.UserInfo {
	createdAt := user.CreatedAt
	return &types.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: &createdAt,
	}
}
