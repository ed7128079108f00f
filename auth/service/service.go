package service

import (
	"context"
	"errors"
	"time"

	"kitserver/auth/storage"
	"kitserver/auth/users"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const SessionCookieName = "session"

var (
	// ErrNicknameTaken is the sign-up failure for an already registered
	// nickname. Sign-up deliberately reveals more than sign-in does.
	ErrNicknameTaken = errors.New("nickname already taken")
	// ErrInvalidCredentials covers both an unknown nickname and a wrong
	// password so sign-in can't be used to enumerate nicknames.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is an authorization failure of an authenticated user.
	ErrForbidden = errors.New("access denied")
)

const defaultSessionTTL = 10 * time.Minute

type Service struct {
	storage    storage.AuthStorage
	sessions   storage.SessionStorage
	cfg        Config
	sessionTTL time.Duration
	bcryptCost int
	log        *logrus.Entry

	now func() time.Time
}

func New(ctx context.Context, l *logrus.Logger, cfg Config, authStorage storage.AuthStorage, sessionStorage storage.SessionStorage) (*Service, error) {
	s := Service{
		storage:    authStorage,
		sessions:   sessionStorage,
		cfg:        cfg,
		sessionTTL: defaultSessionTTL,
		bcryptCost: bcrypt.DefaultCost,
		log:        l.WithField("from", "auth-service"),
		now:        time.Now,
	}
	if cfg.SessionTTL != "" {
		ttl, err := time.ParseDuration(cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		s.sessionTTL = ttl
	}
	if cfg.BcryptCost != 0 {
		s.bcryptCost = cfg.BcryptCost
	}
	if cfg.AdminNickname != "" {
		if err := s.bootstrapAdmin(ctx); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// bootstrapAdmin creates the configured admin account on first start.
func (s *Service) bootstrapAdmin(ctx context.Context) error {
	_, err := s.storage.GetUserByNickname(ctx, s.cfg.AdminNickname)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	err = s.storage.CreateUser(ctx, users.User{
		ID:           uuid.New(),
		Nickname:     s.cfg.AdminNickname,
		Role:         users.RoleAdmin,
		RegisteredAt: s.now(),
	}, string(hash))
	if err != nil {
		return err
	}
	s.log.WithField("nickname", s.cfg.AdminNickname).Info("admin user created")
	return nil
}

// SignUp registers a new user. Exactly one record is created on success,
// none on any failure path.
func (s *Service) SignUp(ctx context.Context, nickname string, password string, fullName string) (users.User, error) {
	_, err := s.storage.GetUserByNickname(ctx, nickname)
	if err == nil {
		return users.User{}, ErrNicknameTaken
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return users.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return users.User{}, err
	}
	user := users.User{
		ID:           uuid.New(),
		Nickname:     nickname,
		FullName:     fullName,
		Role:         users.RoleUser,
		RegisteredAt: s.now(),
	}
	err = s.storage.CreateUser(ctx, user, string(hash))
	if err != nil {
		// Two concurrent sign-ups can both pass the lookup above. The
		// storage unique constraint decides the winner.
		if errors.Is(err, storage.ErrNicknameExists) {
			return users.User{}, ErrNicknameTaken
		}
		return users.User{}, err
	}
	return user, nil
}

// SignIn resolves a user by nickname and password. Read-only.
func (s *Service) SignIn(ctx context.Context, nickname string, password string) (users.User, error) {
	secret, err := s.storage.GetUserSecret(ctx, nickname)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return users.User{}, ErrInvalidCredentials
		}
		return users.User{}, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(secret), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return users.User{}, ErrInvalidCredentials
		}
		return users.User{}, err
	}
	return s.storage.GetUserByNickname(ctx, nickname)
}

// StartSession issues a new session token for the user.
func (s *Service) StartSession(ctx context.Context, userID uuid.UUID) (users.Session, error) {
	session := users.Session{
		Token:     uuid.New(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	err := s.sessions.CreateSession(ctx, session)
	if err != nil {
		return users.Session{}, err
	}
	return session, nil
}

// Authenticate restores the principal for a session token. A missing,
// malformed or expired token downgrades to anonymous, it never errors.
// Only storage failures are returned.
func (s *Service) Authenticate(ctx context.Context, token string) (users.User, error) {
	if token == "" {
		return users.User{}, nil
	}
	id, err := uuid.Parse(token)
	if err != nil {
		return users.User{}, nil
	}
	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return users.User{}, nil
		}
		return users.User{}, err
	}
	if session.Expired(s.now()) {
		if err := s.sessions.DeleteSession(ctx, session.Token); err != nil {
			s.log.WithError(err).Warn("can't delete expired session")
		}
		return users.User{}, nil
	}
	user, err := s.storage.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return users.User{}, nil
		}
		return users.User{}, err
	}
	return user, nil
}

// Logout destroys the session. The token is never accepted again.
func (s *Service) Logout(ctx context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, id)
}

// SessionTTL is the idle lifetime applied to new sessions.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// ListUsers returns all registered users for the admin area.
func (s *Service) ListUsers(ctx context.Context) ([]users.User, error) {
	return s.storage.ListUsers(ctx)
}

// SessionCookie builds the cookie carrying the opaque session token.
func (s *Service) SessionCookie(session users.Session) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token.String(),
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
	}
}
