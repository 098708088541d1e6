package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"TourWatch/config"
	"TourWatch/internal/cache"
	"TourWatch/internal/model"
	"TourWatch/internal/model/dto"
	"TourWatch/internal/repository"
	pkgerrors "TourWatch/pkg/errors"
	"TourWatch/pkg/logger"
	"TourWatch/pkg/token"
)

type AuthService struct{}

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

// Login 邮箱密码登录，签发 access + refresh token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	op, err := repository.Operator().GetByEmail(ctx, req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// 账号不存在和密码错误返回同一个错误，不泄露账号是否存在
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query operator: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, pkgerrors.InvalidCredentials
	}

	if op.Disabled {
		return nil, pkgerrors.OperatorDisabled
	}

	operatorID := strconv.FormatInt(op.PublicID, 10)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	logger.Logger.Info("Operator logged in",
		zap.String("operator_id", operatorID),
		zap.String("role", string(op.Role)),
	)

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		Operator:     operatorSnapshot(op),
	}, nil
}

// RefreshToken 用 refresh token 换新的 token 对
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	operatorID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	publicID, err := strconv.ParseInt(operatorID, 10, 64)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	op, err := repository.Operator().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Unauthorized
		}
		return nil, fmt.Errorf("failed to query operator: %w", err)
	}

	if op.Disabled {
		return nil, pkgerrors.OperatorDisabled
	}

	accessToken, newRefreshToken, expiresIn, err := token.GenerateTokenPair(operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// Logout 登出：拉黑当前 access token，TTL 取 token 的完整有效期
func (s *AuthService) Logout(ctx context.Context, rawToken string, operatorID string) error {
	ttl := time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute
	if err := cache.BlacklistAccessToken(ctx, rawToken, ttl); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	logger.Logger.Info("Operator logged out",
		zap.String("operator_id", operatorID),
	)
	return nil
}

// Me 当前操作员信息
func (s *AuthService) Me(ctx context.Context, operatorPublicID int64) (*dto.OperatorSnapshot, error) {
	op, err := repository.Operator().GetByPublicID(ctx, operatorPublicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Unauthorized
		}
		return nil, fmt.Errorf("failed to query operator: %w", err)
	}

	snap := operatorSnapshot(op)
	return &snap, nil
}

func operatorSnapshot(op *model.Operator) dto.OperatorSnapshot {
	return dto.OperatorSnapshot{
		ID:          strconv.FormatInt(op.PublicID, 10),
		Email:       op.Email,
		DisplayName: op.DisplayName,
		Role:        string(op.Role),
	}
}
