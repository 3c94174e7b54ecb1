package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gcclub/membercard/internal/member"
	"github.com/gcclub/membercard/internal/shared/access"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gcclub/membercard/internal/shared/password"
	"github.com/gcclub/membercard/internal/shared/token"
	"gorm.io/gorm"
)

type AuthService struct {
	db               *gorm.DB
	userRepository   *member.UserRepository
	memberRepository *member.MemberRepository
	tokenManager     token.Manager
}

func NewAuthService(
	db *gorm.DB,
	userRepository *member.UserRepository,
	memberRepository *member.MemberRepository,
	tokenManager token.Manager,
) *AuthService {
	return &AuthService{
		db:               db,
		userRepository:   userRepository,
		memberRepository: memberRepository,
		tokenManager:     tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find user by username
	user, err := a.userRepository.FindByUsername(ctx, a.db, request.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("login failed: unknown username", "username", request.Username)
			return nil, fmt.Errorf("login %s: %w", request.Username, ErrIncorrectUsernamePassword) // don't reveal whether the username exists
		}
		log.Error("login failed", "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 2. Validate password
	if !password.Matches(user.Password, request.Password) {
		log.Warn("login failed: wrong password", "username", request.Username)
		return nil, fmt.Errorf("login %s: %w", request.Username, ErrIncorrectUsernamePassword)
	}

	// 3. Generate JWT tokens
	userID := strconv.FormatUint(uint64(user.ID), 10)
	accessToken, err := a.tokenManager.GenerateAccessToken(userID, user.Username)
	if err != nil {
		log.Error("access token generation failed", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(userID, user.Username)
	if err != nil {
		log.Error("refresh token generation failed", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// 4. Pick the landing page from the member record
	response := &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Landing:      access.StaffLandingURL,
	}
	m, err := a.memberRepository.FindByUserID(ctx, a.db, user.ID)
	switch {
	case err == nil:
		response.Landing = access.LandingFor(m.Role)
		response.MemberID = m.MemberID
		response.Role = m.Role.String()
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find member of user %d: %w", user.ID, err)
	}

	log.Info("login succeeded", "username", user.Username, "landing", response.Landing)
	return response, nil
}

// Refresh exchanges a refresh token for a new access token.
func (a *AuthService) Refresh(ctx context.Context, request *RefreshRequest) (*RefreshResponse, error) {
	claims, err := a.tokenManager.ValidateToken(request.RefreshToken)
	if err != nil || claims.TokenType != token.REFRESH {
		logger.FromContext(ctx).Warn("refresh rejected", "error", err)
		return nil, fmt.Errorf("refresh: %w", ErrInvalidRefreshToken)
	}

	userID, err := strconv.ParseUint(claims.UserID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("refresh user id %q: %w", claims.UserID, ErrInvalidRefreshToken)
	}
	user, err := a.userRepository.FindByID(ctx, a.db, uint32(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refresh deleted user %d: %w", userID, ErrInvalidRefreshToken)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	accessToken, err := a.tokenManager.GenerateAccessToken(claims.UserID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &RefreshResponse{AccessToken: accessToken}, nil
}

// ChangePassword replaces the caller's password after checking the old one.
func (a *AuthService) ChangePassword(ctx context.Context, userID uint32, request *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByID(ctx, a.db, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}

	if !password.Matches(user.Password, request.OldPassword) {
		log.Warn("password change rejected: wrong old password", "username", user.Username)
		return nil, fmt.Errorf("change password %s: %w", user.Username, ErrIncorrectOldPassword)
	}

	hashed, err := password.Hash(request.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := a.userRepository.UpdatePassword(ctx, a.db, userID, hashed); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}

	redirect := access.StaffLandingURL
	if m, err := a.memberRepository.FindByUserID(ctx, a.db, userID); err == nil {
		redirect = access.LandingFor(m.Role)
	}

	log.Info("password changed", "username", user.Username)
	return &ChangePasswordResponse{
		Message:  "เปลี่ยนรหัสผ่านเรียบร้อยแล้ว",
		Redirect: redirect,
	}, nil
}
