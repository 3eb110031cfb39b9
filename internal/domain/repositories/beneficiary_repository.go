package repositories

import (
	"context"

	"github.com/google/uuid"
	"bankflow.backend/internal/domain/entities"
)

// BeneficiaryRepository defines saved-payee data operations
type BeneficiaryRepository interface {
	Create(ctx context.Context, beneficiary *entities.Beneficiary) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Beneficiary, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Beneficiary, error)
	Update(ctx context.Context, beneficiary *entities.Beneficiary) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
