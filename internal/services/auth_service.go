package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/online-test-service/internal/auth"
	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"github.com/SAP-F-2025/online-test-service/internal/validator"
)

type authService struct {
	repo       repositories.Repository
	tokens     *auth.TokenManager
	google     auth.GoogleVerifier
	validator  *validator.Validator
	logger     *ServiceLogger
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, google auth.GoogleVerifier, validator *validator.Validator, logger *slog.Logger) AuthService {
	return &authService{
		repo:       repo,
		tokens:     tokens,
		google:     google,
		validator:  validator,
		logger:     NewServiceLogger(logger, LogConfig{Service: "online-test-service", Component: "auth"}),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (resp *AuthResponse, err error) {
	op := s.logger.WithOperation(ctx, "register", 0)
	var userID uint
	defer func() { op.LogResult(userID, "user", err) }()

	if req == nil {
		return nil, ErrValidationFailed
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	taken, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		IsActive:     true,
	}
	if err = s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	userID = user.ID

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (resp *AuthResponse, err error) {
	op := s.logger.WithOperation(ctx, "login", 0)
	var userID uint
	defer func() { op.LogResult(userID, "user", err) }()

	if req == nil {
		return nil, ErrValidationFailed
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		op.LogSecurity(SecurityEventFailedLogin, "password login rejected", map[string]interface{}{"email": req.Email})
		return nil, ErrInvalidCredentials
	}
	userID = user.ID

	return s.signIn(ctx, user)
}

// GoogleLogin signs in with a Google ID token, creating a student account
// the first time an address is seen.
func (s *authService) GoogleLogin(ctx context.Context, req *GoogleLoginRequest) (resp *AuthResponse, err error) {
	op := s.logger.WithOperation(ctx, "google_login", 0)
	var userID uint
	defer func() { op.LogResult(userID, "user", err) }()

	if req == nil {
		return nil, ErrValidationFailed
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if s.google == nil {
		return nil, fmt.Errorf("%w: google sign-in is not configured", ErrInvalidCredentials)
	}

	identity, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		op.LogSecurity(SecurityEventInvalidToken, "google id token rejected", map[string]interface{}{"error": err.Error()})
		if errors.Is(err, auth.ErrInvalidGoogleToken) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("failed to verify google token: %w", err)
	}

	user, err := s.repo.User().GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		// The account can only be reached through Google until a password is set
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}

		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = identity.Email
		}
		user = &models.User{
			FullName:     name,
			Email:        identity.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
			IsActive:     true,
		}
		if err = s.repo.User().Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}
	userID = user.ID

	return s.signIn(ctx, user)
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*UserResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	profile := toUserResponse(user)
	return &profile, nil
}

func (s *authService) signIn(ctx context.Context, user *models.User) (*AuthResponse, error) {
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.repo.User().UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Logger().Warn("Failed to record login time", "user_id", user.ID, "error", err)
	}

	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}
