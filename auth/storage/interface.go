package storage

import (
	"context"
	"errors"

	"kitserver/auth/users"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNicknameExists  = errors.New("nickname already exists")
	ErrSessionNotFound = errors.New("session not found")
)

type AuthStorage interface {
	CreateUser(ctx context.Context, user users.User, passwordHash string) error
	GetUser(ctx context.Context, id uuid.UUID) (users.User, error)
	GetUserByNickname(ctx context.Context, nickname string) (users.User, error)
	GetUserSecret(ctx context.Context, nickname string) (string, error)
	ListUsers(ctx context.Context) ([]users.User, error)
}

type SessionStorage interface {
	CreateSession(ctx context.Context, session users.Session) error
	GetSession(ctx context.Context, token uuid.UUID) (users.Session, error)
	DeleteSession(ctx context.Context, token uuid.UUID) error
}
