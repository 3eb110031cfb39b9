package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/models"
)

// TransferRepository implements beneficiary-transfer audit-record operations
type TransferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new transfer row
func (r *TransferRepository) Create(ctx context.Context, transfer *entities.Transfer) error {
	if transfer.ID == uuid.Nil {
		transfer.ID = uuid.New()
	}
	m := &models.Transfer{
		ID:              transfer.ID,
		SenderAccountID: transfer.SenderAccountID,
		BeneficiaryID:   transfer.BeneficiaryID,
		Amount:          transfer.Amount,
		Status:          string(transfer.Status),
		Reference:       transfer.Reference,
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	transfer.CreatedAt = m.CreatedAt
	transfer.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a transfer by ID
func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transfer, error) {
	var m models.Transfer
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transferToEntity(&m), nil
}

// ListByAccounts lists transfers sent from the given accounts, newest first
func (r *TransferRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, status *entities.TransactionStatus, offset, limit int) ([]*entities.Transfer, int64, error) {
	if len(accountIDs) == 0 {
		return nil, 0, nil
	}

	query := r.conn(ctx).Model(&models.Transfer{}).Where("sender_account_id IN ?", accountIDs)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transferModels []models.Transfer
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transferModels).Error; err != nil {
		return nil, 0, err
	}

	transfers := make([]*entities.Transfer, 0, len(transferModels))
	for i := range transferModels {
		transfers = append(transfers, transferToEntity(&transferModels[i]))
	}
	return transfers, total, nil
}

// UpdateStatus transitions a transfer status
func (r *TransferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	result := r.conn(ctx).Model(&models.Transfer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListCompleted returns completed transfers for an account within an
// optional date range, for summary aggregation.
func (r *TransferRepository) ListCompleted(ctx context.Context, accountID uuid.UUID, start, end *time.Time) ([]*entities.Transfer, error) {
	query := r.conn(ctx).Model(&models.Transfer{}).
		Where("sender_account_id = ? AND status = ?", accountID, string(entities.TransactionStatusCompleted))
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var transferModels []models.Transfer
	if err := query.Find(&transferModels).Error; err != nil {
		return nil, err
	}

	transfers := make([]*entities.Transfer, 0, len(transferModels))
	for i := range transferModels {
		transfers = append(transfers, transferToEntity(&transferModels[i]))
	}
	return transfers, nil
}

func transferToEntity(m *models.Transfer) *entities.Transfer {
	return &entities.Transfer{
		ID:              m.ID,
		SenderAccountID: m.SenderAccountID,
		BeneficiaryID:   m.BeneficiaryID,
		Amount:          m.Amount,
		Status:          entities.TransactionStatus(m.Status),
		Reference:       m.Reference,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
