package repositories

import (
	"context"

	"github.com/google/uuid"
	"bankflow.backend/internal/domain/entities"
)

// NotificationRepository defines dispatched-email record operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entities.Notification, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
