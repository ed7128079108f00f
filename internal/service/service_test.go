package service

import (
	"context"
	"testing"

	authservice "kitserver/auth/service"
	"kitserver/auth/users"
	"kitserver/internal/domain"
	"kitserver/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKitStorage struct {
	kits map[uuid.UUID]domain.ModelKit
}

func newMemKitStorage() *memKitStorage {
	return &memKitStorage{kits: make(map[uuid.UUID]domain.ModelKit)}
}

func (m *memKitStorage) ListKits(_ context.Context) ([]domain.ModelKit, error) {
	list := make([]domain.ModelKit, 0, len(m.kits))
	for _, kit := range m.kits {
		list = append(list, kit)
	}
	return list, nil
}

func (m *memKitStorage) GetKit(_ context.Context, id uuid.UUID) (domain.ModelKit, error) {
	kit, ok := m.kits[id]
	if !ok {
		return domain.ModelKit{}, storage.ErrKitNotFound
	}
	return kit, nil
}

func (m *memKitStorage) CreateKit(_ context.Context, kit domain.ModelKit) error {
	m.kits[kit.ID] = kit
	return nil
}

func (m *memKitStorage) DeleteKit(_ context.Context, id uuid.UUID) error {
	delete(m.kits, id)
	return nil
}

func TestDeleteKit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner := users.User{ID: uuid.New(), Role: users.RoleUser}
	stranger := users.User{ID: uuid.New(), Role: users.RoleUser}
	admin := users.User{ID: uuid.New(), Role: users.RoleAdmin}

	tests := []struct {
		name    string
		actor   users.User
		wantErr error
	}{
		{name: "owner deletes", actor: owner},
		{name: "stranger denied", actor: stranger, wantErr: authservice.ErrForbidden},
		{name: "admin deletes", actor: admin},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := newMemKitStorage()
			s := New(st, nil)
			kit, err := s.CreateKit(ctx, domain.ModelKit{Name: "RX-78-2", Scale: "1/144", OwnerID: owner.ID})
			require.NoError(t, err)

			err = s.DeleteKit(ctx, kit.ID, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, err := st.GetKit(ctx, kit.ID)
				assert.NoError(t, err)
				return
			}
			require.NoError(t, err)
			_, err = st.GetKit(ctx, kit.ID)
			assert.ErrorIs(t, err, storage.ErrKitNotFound)
		})
	}
}

func TestCreateKitNotifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var notified []string
	s := New(newMemKitStorage(), func(msg string) { notified = append(notified, msg) })
	_, err := s.CreateKit(ctx, domain.ModelKit{Name: "Zaku II", Scale: "1/100", OwnerID: uuid.New()})
	require.NoError(t, err)
	require.Len(t, notified, 1)
	assert.Contains(t, notified[0], "Zaku II")
}
