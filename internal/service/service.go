package service

import (
	"context"
	"fmt"
	"time"

	authservice "kitserver/auth/service"
	"kitserver/auth/users"
	"kitserver/internal/domain"
	"kitserver/internal/storage"

	"github.com/google/uuid"
)

type KitService struct {
	kitStorage storage.KitStorage
	notify     func(msg string)
}

func New(kitStorage storage.KitStorage, notify func(msg string)) *KitService {
	if notify == nil {
		notify = func(string) {}
	}
	return &KitService{
		kitStorage: kitStorage,
		notify:     notify,
	}
}

func (s *KitService) ListKits(ctx context.Context) ([]domain.ModelKit, error) {
	return s.kitStorage.ListKits(ctx)
}

func (s *KitService) GetKit(ctx context.Context, id uuid.UUID) (domain.ModelKit, error) {
	return s.kitStorage.GetKit(ctx, id)
}

func (s *KitService) CreateKit(ctx context.Context, kit domain.ModelKit) (domain.ModelKit, error) {
	kit.ID = uuid.New()
	kit.CreatedAt = time.Now()
	err := s.kitStorage.CreateKit(ctx, kit)
	if err != nil {
		return domain.ModelKit{}, err
	}
	s.notify(fmt.Sprintf("new model kit: %s (%s)", kit.Name, kit.Scale))
	return kit, nil
}

// DeleteKit removes a kit. Only the owner or an admin may delete it.
func (s *KitService) DeleteKit(ctx context.Context, id uuid.UUID, actor users.User) error {
	kit, err := s.kitStorage.GetKit(ctx, id)
	if err != nil {
		return err
	}
	if kit.OwnerID != actor.ID && actor.Role != users.RoleAdmin {
		return authservice.ErrForbidden
	}
	return s.kitStorage.DeleteKit(ctx, id)
}
