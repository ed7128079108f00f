package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kitserver/auth/storage"
	"kitserver/auth/users"
	"kitserver/gen/model"
	"kitserver/gen/table"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)
var _ storage.SessionStorage = (*Storage)(nil)

func New(l *logrus.Logger, db *sql.DB) *Storage {
	return &Storage{
		db:  db,
		log: l.WithField("from", "auth-storage"),
	}
}

func (s *Storage) CreateUser(ctx context.Context, user users.User, passwordHash string) error {
	dbUser := model.Users{
		ID:           user.ID.String(),
		Nickname:     user.Nickname,
		FullName:     user.FullName,
		Role:         string(user.Role),
		PasswordHash: passwordHash,
		CreatedAt:    user.RegisteredAt,
	}
	_, err := table.Users.INSERT(table.Users.AllColumns).MODEL(dbUser).ExecContext(ctx, s.db)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return storage.ErrNicknameExists
		}
		return err
	}
	s.log.WithField("nickname", user.Nickname).Info("user created")
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(table.Users.PasswordHash)).
		FROM(table.Users).
		WHERE(table.Users.ID.EQ(sqlite.String(id.String()))).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, storage.ErrUserNotFound
		}
		return users.User{}, err
	}
	return convertUser(dbUser)
}

func (s *Storage) GetUserByNickname(ctx context.Context, nickname string) (users.User, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(table.Users.PasswordHash)).
		FROM(table.Users).
		WHERE(table.Users.Nickname.EQ(sqlite.String(nickname))).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, storage.ErrUserNotFound
		}
		return users.User{}, err
	}
	return convertUser(dbUser)
}

func (s *Storage) GetUserSecret(ctx context.Context, nickname string) (string, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.PasswordHash).
		FROM(table.Users).
		WHERE(table.Users.Nickname.EQ(sqlite.String(nickname))).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return "", storage.ErrUserNotFound
		}
		return "", err
	}
	return dbUser.PasswordHash, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]users.User, error) {
	var dbUsers []model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(table.Users.PasswordHash)).
		FROM(table.Users).
		ORDER_BY(table.Users.CreatedAt.ASC()).
		QueryContext(ctx, s.db, &dbUsers)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	list := make([]users.User, 0, len(dbUsers))
	for i := range dbUsers {
		u, err := convertUser(dbUsers[i])
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, nil
}

func (s *Storage) CreateSession(ctx context.Context, session users.Session) error {
	dbSession := model.Sessions{
		Token:     session.Token.String(),
		UserID:    session.UserID.String(),
		ExpiresAt: session.ExpiresAt,
	}
	_, err := table.Sessions.INSERT(table.Sessions.AllColumns).MODEL(dbSession).ExecContext(ctx, s.db)
	return err
}

func (s *Storage) GetSession(ctx context.Context, token uuid.UUID) (users.Session, error) {
	var dbSession model.Sessions
	err := table.Sessions.
		SELECT(table.Sessions.AllColumns).
		FROM(table.Sessions).
		WHERE(table.Sessions.Token.EQ(sqlite.String(token.String()))).
		QueryContext(ctx, s.db, &dbSession)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.Session{}, storage.ErrSessionNotFound
		}
		return users.Session{}, err
	}
	return convertSession(dbSession)
}

func (s *Storage) DeleteSession(ctx context.Context, token uuid.UUID) error {
	_, err := table.Sessions.
		DELETE().
		WHERE(table.Sessions.Token.EQ(sqlite.String(token.String()))).
		ExecContext(ctx, s.db)
	return err
}

func convertUser(dbUser model.Users) (users.User, error) {
	id, err := uuid.Parse(dbUser.ID)
	if err != nil {
		return users.User{}, err
	}
	role := users.Role(dbUser.Role)
	if !role.Valid() {
		return users.User{}, errors.New("unknown role: " + dbUser.Role)
	}
	return users.User{
		ID:           id,
		Nickname:     dbUser.Nickname,
		FullName:     dbUser.FullName,
		Role:         role,
		RegisteredAt: dbUser.CreatedAt,
	}, nil
}

func convertSession(dbSession model.Sessions) (users.Session, error) {
	token, err := uuid.Parse(dbSession.Token)
	if err != nil {
		return users.Session{}, err
	}
	userID, err := uuid.Parse(dbSession.UserID)
	if err != nil {
		return users.Session{}, err
	}
	return users.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: dbSession.ExpiresAt.In(time.UTC),
	}, nil
}
