package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"kitserver/gen/model"
	"kitserver/gen/table"
	"kitserver/internal/domain"
	"kitserver/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
)

type Storage struct {
	db *sql.DB
}

var _ storage.KitStorage = (*Storage)(nil)

func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) ListKits(ctx context.Context) ([]domain.ModelKit, error) {
	var kits []model.ModelKits
	err := table.ModelKits.
		SELECT(table.ModelKits.AllColumns).
		FROM(table.ModelKits).
		ORDER_BY(table.ModelKits.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &kits)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return convertKits(kits)
}

func (s *Storage) GetKit(ctx context.Context, id uuid.UUID) (domain.ModelKit, error) {
	var kit model.ModelKits
	err := table.ModelKits.
		SELECT(table.ModelKits.AllColumns).
		FROM(table.ModelKits).
		WHERE(table.ModelKits.ID.EQ(sqlite.String(id.String()))).
		QueryContext(ctx, s.db, &kit)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.ModelKit{}, storage.ErrKitNotFound
		}
		return domain.ModelKit{}, err
	}
	return convertKit(kit)
}

func (s *Storage) CreateKit(ctx context.Context, kit domain.ModelKit) error {
	dbKit := model.ModelKits{
		ID:        kit.ID.String(),
		Name:      kit.Name,
		Brand:     kit.Brand,
		Scale:     kit.Scale,
		OwnerID:   kit.OwnerID.String(),
		CreatedAt: kit.CreatedAt,
	}
	_, err := table.ModelKits.INSERT(table.ModelKits.AllColumns).MODEL(dbKit).ExecContext(ctx, s.db)
	return err
}

func (s *Storage) DeleteKit(ctx context.Context, id uuid.UUID) error {
	_, err := table.ModelKits.
		DELETE().
		WHERE(table.ModelKits.ID.EQ(sqlite.String(id.String()))).
		ExecContext(ctx, s.db)
	return err
}
