package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/eqms/internal/config"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// 환경 변수 시스템 관리자의 고정 ID. users 테이블 밖의 계정이다.
const systemAdminUserID = -1

// AuthService 인증 서비스
type AuthService struct {
	userRepo *repository.UserRepository
	jwtCfg   config.JWTConfig
	authCfg  config.AuthConfig
	logger   *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg config.JWTConfig, authCfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		authCfg:  authCfg,
		logger:   logger,
	}
}

// LoginRequest 로그인 요청
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult 로그인 결과
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// Login 로그인. 환경 변수 시스템 관리자 계정을 먼저 확인하고,
// 아니면 users 테이블에서 bcrypt 해시를 대조한다.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if s.isSystemAdmin(req.Username, req.Password) {
		return s.issueToken(systemAdminUserID, req.Username, entity.RoleSystemAdmin)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.UserID); err != nil {
		s.logger.Warn("마지막 로그인 기록 실패", zap.Int64("user_id", user.UserID), zap.Error(err))
	}

	return s.issueToken(user.UserID, user.Username, user.Role)
}

func (s *AuthService) isSystemAdmin(username, password string) bool {
	return s.authCfg.SystemAdminEmail != "" &&
		s.authCfg.SystemAdminPassword != "" &&
		username == s.authCfg.SystemAdminEmail &&
		password == s.authCfg.SystemAdminPassword
}

func (s *AuthService) issueToken(userID int64, username, role string) (*LoginResult, error) {
	expiresAt := time.Now().Add(s.jwtCfg.AccessTokenExpire)
	claims := middleware.JWTClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    userID,
		Username:  username,
		Role:      role,
	}, nil
}

// Me 토큰에 실린 계정 정보. 환경 변수 관리자는 테이블에 없으므로 합성한다.
func (s *AuthService) Me(ctx context.Context, userID int64, username, role string) (*entity.User, error) {
	if userID == systemAdminUserID {
		return &entity.User{
			UserID:   systemAdminUserID,
			Username: username,
			Role:     role,
			IsActive: true,
		}, nil
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}
