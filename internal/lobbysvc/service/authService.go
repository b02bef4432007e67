package service

import (
	"context"
	"unicode"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the identity persistence the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// AuthService handles registration and credential checks. Token issuance
// lives at the HTTP boundary; this layer only deals in users and hashes.
type AuthService struct {
	userStore UserStore
}

func NewAuthService(userStore UserStore) *AuthService {
	return &AuthService{userStore: userStore}
}

// RegisterInput is the account creation request. Name is optional.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// Register creates a new account. Email and username are each unique:
// the pre-check catches the common case and the store's constraints
// catch the race, both as ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, models.ErrMissingFields
	}
	if !StrongPassword(in.Password) {
		return nil, models.ErrWeakPassword
	}

	exists, err := s.userStore.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    in.Email,
		Username: in.Username,
		Password: string(hash),
	}
	if in.Name != "" {
		user.Name = &in.Name
	}

	if err := s.userStore.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.ErrMissingFields
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// StrongPassword requires at least 8 characters with one lowercase, one
// uppercase and one digit.
func StrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return lower && upper && digit
}
