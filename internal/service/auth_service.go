package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"storepos/internal/apperr"
	"storepos/internal/config"
	"storepos/internal/dto"
	"storepos/internal/model"
	"storepos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	saltBytes  = 16
	bcryptCost = 12
)

// AuthService owns login accounts: creation, password verification and
// rotation, listing, deletion, and the JWT session tokens the HTTP layer
// hands out.
type AuthService interface {
	CreateUser(ctx context.Context, username, password, role string) (uint, error)
	ValidateLogin(ctx context.Context, username, password string) (bool, error)
	ChangePassword(ctx context.Context, id uint, newPassword string) error
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error

	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// newSalt returns a fresh random hex salt. Regenerated on every password
// change, never reused.
func newSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashPassword(salt, password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(salt+password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func verifyPassword(hash, salt, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(salt+password)) == nil
}

func (s *authService) CreateUser(ctx context.Context, username, password, role string) (uint, error) {
	if username == "" {
		return 0, apperr.Validation("username must not be empty")
	}
	if role == "" {
		role = "user"
	}
	if role != "admin" && role != "user" {
		return 0, apperr.Validation(fmt.Sprintf("unknown role %q", role))
	}

	salt, err := newSalt()
	if err != nil {
		return 0, apperr.Store(err)
	}
	hash, err := hashPassword(salt, password)
	if err != nil {
		return 0, apperr.Store(err)
	}

	u := &model.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Conflict(fmt.Sprintf("username %q already exists", username))
		}
		return 0, apperr.Store(err)
	}
	return u.ID, nil
}

// ValidateLogin does not distinguish a missing user from a wrong password,
// so usernames cannot be enumerated through this call.
func (s *authService) ValidateLogin(ctx context.Context, username, password string) (bool, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, apperr.Store(err)
	}
	return verifyPassword(u.PasswordHash, u.Salt, password), nil
}

func (s *authService) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	salt, err := newSalt()
	if err != nil {
		return apperr.Store(err)
	}
	hash, err := hashPassword(salt, newPassword)
	if err != nil {
		return apperr.Store(err)
	}
	rows, err := s.repo.UpdateCredentials(ctx, id, hash, salt)
	if err != nil {
		return apperr.Store(err)
	}
	if rows == 0 {
		return apperr.NotFound(fmt.Sprintf("user %d not found", id))
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
	}
	return resp, nil
}

func (s *authService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// ── JWT session layer ────────────────────────────────────────────────────────

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil || !verifyPassword(u.PasswordHash, u.Salt, req.Password) {
		return nil, apperr.Validation("invalid credentials")
	}

	accessToken, err := s.generateToken(u, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, apperr.Store(err)
	}
	refreshToken, err := s.generateToken(u, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, apperr.Store(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role},
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Validation("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Validation("malformed token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperr.Validation("malformed token")
	}

	u, err := s.repo.FindByID(ctx, uint(userID))
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	accessToken, err := s.generateToken(u, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, apperr.Store(err)
	}
	newRefresh, err := s.generateToken(u, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, apperr.Store(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role},
	}, nil
}

func (s *authService) generateToken(u *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"role":     u.Role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
