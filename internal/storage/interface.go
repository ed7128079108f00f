package storage

import (
	"context"
	"errors"

	"kitserver/internal/domain"

	"github.com/google/uuid"
)

var ErrKitNotFound = errors.New("model kit not found")

type KitStorage interface {
	ListKits(ctx context.Context) ([]domain.ModelKit, error)
	GetKit(ctx context.Context, id uuid.UUID) (domain.ModelKit, error)
	CreateKit(ctx context.Context, kit domain.ModelKit) error
	DeleteKit(ctx context.Context, id uuid.UUID) error
}
