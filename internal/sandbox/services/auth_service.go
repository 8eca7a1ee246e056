// Package services holds the sandbox's business logic. The sandbox is
// the authoritative side of the product: everything the client
// projects with loancalc is recomputed and enforced here.
package services

import (
	"context"
	"errors"
	"regexp"

	"gorm.io/gorm"

	"zeelx/internal/config"
	"zeelx/internal/core/domain"
	"zeelx/internal/pkg/jwt"
	"zeelx/internal/pkg/password"
	"zeelx/internal/sandbox/models"
)

var phonePattern = regexp.MustCompile(`^[0-9]{8}$`)

// AuthService handles authentication business logic.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// RegisterInput represents registration input.
type RegisterInput struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult couples a user with a freshly issued token.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a user and their wallet, and issues a session.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	if !phonePattern.MatchString(input.Phone) {
		return nil, domain.ErrInvalidInput
	}
	if input.Name == "" || !password.Valid(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("phone = ?", input.Phone).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Phone:    input.Phone,
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Wallet{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login authenticates with phone and password.
func (s *AuthService) Login(ctx context.Context, phone, pass string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(&user)
}

// Me fetches the current user.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the credential after verifying the current
// one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(current, user.Password) {
		return domain.ErrInvalidCredentials
	}
	if !password.Valid(next) {
		return domain.ErrInvalidInput
	}

	hashed, err := password.Hash(next)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(user).Update("password", hashed).Error
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := jwt.Generate(user.ID, user.Phone, s.cfg.Sandbox.JWTSecret, s.cfg.Sandbox.TokenHours)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
