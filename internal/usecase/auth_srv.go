package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/internal/dto/request"
	"property-booking/internal/dto/response"
	"property-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID string) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository // users, sessions and contractor profiles
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existingUser, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("invalid registration: email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	user := &entity.User{
		Base:         entity.NewBase(now),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         entity.UserRole(req.Role),
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create account")
	}

	// Contractors carry a profile row that bookings reference.
	if user.Role == entity.RoleContractor {
		contractor := &entity.Contractor{
			BaseNoDelete: entity.NewBaseNoDelete(now),
			UserID:       user.ID,
			FullName:     user.FullName,
			Phone:        req.Phone,
			Company:      req.Company,
		}
		if err := s.repo.Contractor.Create(ctx, contractor); err != nil {
			s.log.Error("Failed to create contractor profile",
				zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fmt.Errorf("failed to create account")
		}
	}

	// Auto login setelah register
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, fmt.Errorf("unauthorized: invalid credentials")
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("unauthorized: account is deactivated")
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Warn("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout: %w", err)
	}

	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID %s", userID)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get profile")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	expiry := s.config.Session.ExpiryHours
	if expiry <= 0 {
		expiry = 24
	}

	session := entity.NewSession(userID, time.Now(), time.Duration(expiry)*time.Hour)

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
