package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/models"
)

// TransactionRepository implements transaction audit-record operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new transaction row
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	m := &models.Transaction{
		ID:              tx.ID,
		SenderAccountID: tx.SenderAccountID,
		Type:            string(tx.Type),
		Amount:          tx.Amount,
		Status:          string(tx.Status),
		Reference:       tx.Reference,
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.CreatedAt = m.CreatedAt
	tx.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// List lists transactions for the given accounts with optional filters,
// newest first, returning the page and the unpaginated total.
func (r *TransactionRepository) List(ctx context.Context, accountIDs []uuid.UUID, filter entities.TransactionFilter, offset, limit int) ([]*entities.Transaction, int64, error) {
	if len(accountIDs) == 0 {
		return nil, 0, nil
	}

	query := r.conn(ctx).Model(&models.Transaction{}).Where("sender_account_id IN ?", accountIDs)
	if filter.AccountID != nil {
		query = query.Where("sender_account_id = ?", *filter.AccountID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txModels []models.Transaction
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		transactions = append(transactions, transactionToEntity(&txModels[i]))
	}
	return transactions, total, nil
}

// UpdateStatus transitions a transaction status
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	result := r.conn(ctx).Model(&models.Transaction{}).Where("id = ?", id).Updates(map[string]interface{}{
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

// Summarize totals completed credits and debits for an account over an
// optional date range. Decimal sums are computed here rather than in SQL
// so the arithmetic is exact on every driver.
func (r *TransactionRepository) Summarize(ctx context.Context, accountID uuid.UUID, start, end *time.Time) (*entities.TransactionSummary, error) {
	query := r.conn(ctx).Model(&models.Transaction{}).
		Where("sender_account_id = ? AND status = ?", accountID, string(entities.TransactionStatusCompleted))
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var txModels []models.Transaction
	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	summary := &entities.TransactionSummary{
		AccountID:    accountID,
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
		Count:        len(txModels),
	}
	for i := range txModels {
		switch entities.TransactionType(txModels[i].Type) {
		case entities.TransactionTypeCredit:
			summary.TotalCredits = summary.TotalCredits.Add(txModels[i].Amount)
		case entities.TransactionTypeDebit, entities.TransactionTypeTransfer:
			summary.TotalDebits = summary.TotalDebits.Add(txModels[i].Amount)
		}
	}
	return summary, nil
}

func transactionToEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:              m.ID,
		SenderAccountID: m.SenderAccountID,
		Type:            entities.TransactionType(m.Type),
		Amount:          m.Amount,
		Status:          entities.TransactionStatus(m.Status),
		Reference:       m.Reference,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
