package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"daily-quest/internal/model"
	"daily-quest/internal/repository"
)

const telegramUsernamePrefix = "tg_"

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrUserExists     = errors.New("username or email already taken")
)

// PasswordHasher is satisfied by auth.Manager.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(hash, password string) error
}

// UserService registers and authenticates users.
type UserService struct {
	repo   *repository.UserRepository
	hasher PasswordHasher
}

func NewUserService(repo *repository.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, invalid("username is required")
	}
	if strings.HasPrefix(username, telegramUsernamePrefix) {
		return nil, invalid("username prefix %q is reserved", telegramUsernamePrefix)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("invalid email %q", email)
	}
	if len(password) < 8 {
		return nil, invalid("password must be at least 8 characters")
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := model.User{Username: username, Email: &email, PasswordHash: hash}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, translate(err)
	}
	return &user, nil
}

// Authenticate returns ErrBadCredentials for an unknown user, a wrong password,
// or a Telegram-only account without a password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, translate(err)
	}
	if user.PasswordHash == "" || s.hasher.ComparePassword(user.PasswordHash, password) != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// LinkTelegram finds or creates the user behind a Telegram account.
func (s *UserService) LinkTelegram(ctx context.Context, telegramID int64, firstName string) (*model.User, error) {
	user, err := s.repo.UpsertFromTelegram(ctx, telegramID, firstName)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *UserService) ListTelegram(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListTelegram(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}
