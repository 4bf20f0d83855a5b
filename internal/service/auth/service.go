package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/opsmind/mcp-platform/internal/config"
	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
)

var (
	// ErrInvalid 请求参数非法
	ErrInvalid = errors.New("invalid request")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountDisabled 账户已停用
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrWrongPassword 当前密码错误
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrUsernameExists 用户名已存在
	ErrUsernameExists = errors.New("username already exists")
	// ErrEmailExists 邮箱已被使用
	ErrEmailExists = errors.New("email already in use")
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// Service 认证服务
type Service struct {
	repo   *repository.Repositories
	secret []byte
	expire time.Duration
}

// NewService 创建认证服务
func NewService(repo *repository.Repositories, cfg config.JWTConfig) *Service {
	expire := time.Duration(cfg.ExpireHours) * time.Hour
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	return &Service{
		repo:   repo,
		secret: []byte(cfg.Secret),
		expire: expire,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UpdateUserRequest 用户更新请求，字段存在时才生效
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

// Register 注册新用户，仅管理员可调用
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: please provide a username and password", ErrInvalid)
	}
	if len(req.Username) < 3 || len(req.Username) > 20 {
		return nil, fmt.Errorf("%w: username must be 3-20 characters", ErrInvalid)
	}
	if !usernamePattern.MatchString(req.Username) {
		return nil, fmt.Errorf("%w: username may only contain letters, digits and underscores", ErrInvalid)
	}
	if len(req.Password) < 6 || len(req.Password) > 30 {
		return nil, fmt.Errorf("%w: password must be 6-30 characters", ErrInvalid)
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalid)
	}

	if _, err := s.repo.User.GetByUsername(req.Username); err == nil {
		return nil, ErrUsernameExists
	}
	if req.Email != "" {
		if _, err := s.repo.User.GetByEmail(req.Email); err == nil {
			return nil, ErrEmailExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         model.NormalizeUserRole(req.Role),
		IsActive:     true,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := s.repo.User.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login 用户登录，成功时返回用户和令牌
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: please provide a username and password", ErrInvalid)
	}

	user, err := s.repo.User.GetByUsername(username)
	if err != nil {
		// 用户不存在与密码错误返回同一错误，避免用户枚举
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.repo.User.Update(user); err != nil {
		return nil, "", fmt.Errorf("failed to update last login: %w", err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken 签发 JWT 令牌
func (s *Service) GenerateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.expire).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken 验证令牌并返回对应的用户
// 解码、签名或过期错误统一视为无效令牌
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User.GetByID(uint(rawID))
	if err != nil || !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// ChangePassword 用户修改自己的密码
func (s *Service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: please provide the current and new password", ErrInvalid)
	}

	user, err := s.repo.User.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < 6 || len(newPassword) > 30 {
		return fmt.Errorf("%w: new password must be 6-30 characters", ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.repo.User.Update(user)
}

// ListUsers 列出全部用户，仅管理员可调用
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.User.List()
}

// GetUser 获取单个用户
func (s *Service) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.User.GetByID(id)
}

// UpdateUser 管理员更新用户信息
// 无效角色值被忽略，字段保持不变
func (s *Service) UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.User.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != "" {
		// 排除自身后检查邮箱唯一性
		if existing, err := s.repo.User.GetByEmail(*req.Email); err == nil && existing.ID != id {
			return nil, ErrEmailExists
		}
		user.Email = req.Email
	}
	if req.Role != nil && model.IsValidUserRole(*req.Role) {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 || len(*req.Password) > 30 {
			return nil, fmt.Errorf("%w: password must be 6-30 characters", ErrInvalid)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.User.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}
