package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"foodreview/internal/config"
	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNameInUse          = models.NewError(models.ErrConflict, "username already in use")
	ErrEmailInUse         = models.NewError(models.ErrConflict, "email already in use")
	ErrInvalidCredentials = models.NewError(models.ErrUnauthorized, "invalid credentials")
	ErrInvalidToken       = models.NewError(models.ErrUnauthorized, "invalid token")
	ErrAccountDisabled    = models.NewError(models.ErrForbidden, "account is disabled")
	ErrInvalidRefresh     = models.NewError(models.ErrUnauthorized, "invalid or expired refresh token")
	ErrInvalidUsername    = models.NewError(models.ErrInvalidInput, "username can only contain letters, numbers, and underscores")
	ErrPasswordTooShort   = models.NewError(models.ErrInvalidInput, "password must be at least 6 characters long")
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 6

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Claims is the identity carried by an access token.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// TokenPair is what a login or a refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ProfileUpdate holds the self-editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
	Avatar   *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*TokenPair, *models.User, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	RevokeToken(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	AccessTokenTTL() time.Duration
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	now              func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,  // 15 minutes by default
		refreshTokenTTL:  cfg.RefreshTokenTTL, // 7 days by default
		now:              time.Now,
	}
}

func (s *authService) AccessTokenTTL() time.Duration { return s.accessTokenTTL }

// Register: registers a new user with the given username, password, and email.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if user exists
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	// Check if email exists
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: hashedPassword,
		FullName: strings.TrimSpace(in.FullName),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login: authenticates by username or email and returns an access and a refresh token.
func (s *authService) Login(ctx context.Context, identifier, password string) (*TokenPair, *models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.FindByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.userRepo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			return nil, nil, err
		}
		// keep timing similar to a wrong password
		auth.BurnCompare(password)
		return nil, nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}
	return pair, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.accessTokenTTL).Unix(),
		"iat":      now.Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// generateRefreshToken stores a random opaque token for user.
func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rt := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(ctx, rt); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return rt.Token, nil
}

// RefreshAccessToken rotates a refresh token: the presented one is revoked and
// a new access/refresh pair is issued.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	rt, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, models.ErrNoRefreshToken) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !rt.Usable(s.now()) {
		return nil, ErrInvalidRefresh
	}

	revoked, err := s.refreshTokenRepo.Revoke(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	if !revoked {
		// someone else exchanged it first
		log.Warn().Str("user_id", rt.UserID).Msg("refresh token reused")
		return nil, ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return s.issueTokens(ctx, user)
}

// RevokeToken revokes a refresh token. Unknown tokens are not an error.
func (s *authService) RevokeToken(ctx context.Context, refreshToken string) error {
	rt, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, models.ErrNoRefreshToken) {
			return nil
		}
		return err
	}
	_, err = s.refreshTokenRepo.Revoke(ctx, rt.ID)
	return err
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if typ, _ := mc["type"].(string); typ != "access" {
		return nil, ErrInvalidToken
	}
	userID, _ := mc["user_id"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}
	username, _ := mc["username"].(string)
	role, _ := mc["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return &Claims{UserID: userID, Username: username, Role: role}, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidToken
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Bio != nil {
		user.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.Avatar != nil {
		user.Avatar = strings.TrimSpace(*update.Avatar)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword checks the current password, stores the new hash and
// revokes every outstanding refresh token of the user.
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(user.Password, currentPassword); err != nil {
		return models.ErrWrongPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.refreshTokenRepo.RevokeAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}
