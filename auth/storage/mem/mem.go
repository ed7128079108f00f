// Package mem holds an in-memory auth storage. It backs the unit tests
// and keeps the storage interfaces honest about their error contracts.
package mem

import (
	"context"
	"sync"

	"kitserver/auth/storage"
	"kitserver/auth/users"

	"github.com/google/uuid"
)

type Storage struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]users.User
	secrets  map[string]string
	sessions map[uuid.UUID]users.Session
}

var _ storage.AuthStorage = (*Storage)(nil)
var _ storage.SessionStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		users:    make(map[uuid.UUID]users.User),
		secrets:  make(map[string]string),
		sessions: make(map[uuid.UUID]users.Session),
	}
}

func (s *Storage) CreateUser(_ context.Context, user users.User, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.secrets[user.Nickname]; ok {
		return storage.ErrNicknameExists
	}
	s.users[user.ID] = user
	s.secrets[user.Nickname] = passwordHash
	return nil
}

func (s *Storage) GetUser(_ context.Context, id uuid.UUID) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return users.User{}, storage.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByNickname(_ context.Context, nickname string) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Nickname == nickname {
			return user, nil
		}
	}
	return users.User{}, storage.ErrUserNotFound
}

func (s *Storage) GetUserSecret(_ context.Context, nickname string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	secret, ok := s.secrets[nickname]
	if !ok {
		return "", storage.ErrUserNotFound
	}
	return secret, nil
}

func (s *Storage) ListUsers(_ context.Context) ([]users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]users.User, 0, len(s.users))
	for _, user := range s.users {
		list = append(list, user)
	}
	return list, nil
}

func (s *Storage) CreateSession(_ context.Context, session users.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Token] = session
	return nil
}

func (s *Storage) GetSession(_ context.Context, token uuid.UUID) (users.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return users.Session{}, storage.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(_ context.Context, token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}
