package domain

import (
	"time"

	"github.com/google/uuid"
)

type ModelKit struct {
	ID        uuid.UUID
	Name      string
	Brand     string
	Scale     string
	OwnerID   uuid.UUID
	CreatedAt time.Time
}
