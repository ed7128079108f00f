package sqlite

import (
	"kitserver/gen/model"
	"kitserver/internal/domain"

	"github.com/google/uuid"
)

func convertKit(kit model.ModelKits) (domain.ModelKit, error) {
	id, err := uuid.Parse(kit.ID)
	if err != nil {
		return domain.ModelKit{}, err
	}
	ownerID, err := uuid.Parse(kit.OwnerID)
	if err != nil {
		return domain.ModelKit{}, err
	}
	return domain.ModelKit{
		ID:        id,
		Name:      kit.Name,
		Brand:     kit.Brand,
		Scale:     kit.Scale,
		OwnerID:   ownerID,
		CreatedAt: kit.CreatedAt,
	}, nil
}

func convertKits(kits []model.ModelKits) ([]domain.ModelKit, error) {
	domainKits := make([]domain.ModelKit, 0, len(kits))
	for i := range kits {
		kit, err := convertKit(kits[i])
		if err != nil {
			return nil, err
		}
		domainKits = append(domainKits, kit)
	}
	return domainKits, nil
}
