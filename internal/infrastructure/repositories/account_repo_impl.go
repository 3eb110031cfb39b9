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

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	m := &models.Account{
		ID:       account.ID,
		UserID:   account.UserID,
		Balance:  account.Balance,
		Currency: account.Currency,
		Status:   string(account.Status),
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return accountToEntity(&m), nil
}

// ListByUser lists all accounts owned by a user
func (r *AccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Account, error) {
	var accountModels []models.Account
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]*entities.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, accountToEntity(&accountModels[i]))
	}
	return accounts, nil
}

// ListAll lists every account (admin operation)
func (r *AccountRepository) ListAll(ctx context.Context) ([]*entities.Account, error) {
	var accountModels []models.Account
	if err := r.conn(ctx).Order("created_at DESC").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]*entities.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, accountToEntity(&accountModels[i]))
	}
	return accounts, nil
}

// Credit adds amount to the balance of an ACTIVE account. The relative
// UPDATE serializes concurrent mutations inside the database, so two
// simultaneous credits can never lose an update.
func (r *AccountRepository) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	result := r.conn(ctx).Model(&models.Account{}).
		Where("id = ? AND status = ?", id, string(entities.AccountStatusActive)).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyGuardFailure(ctx, id, nil)
	}
	return nil
}

// Debit subtracts amount from the balance of an ACTIVE account with a
// sufficiency guard in the same UPDATE, so the balance can never go
// negative even under concurrent withdrawals.
func (r *AccountRepository) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	result := r.conn(ctx).Model(&models.Account{}).
		Where("id = ? AND status = ? AND balance >= ?", id, string(entities.AccountStatusActive), amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyGuardFailure(ctx, id, &amount)
	}
	return nil
}

// classifyGuardFailure distinguishes why a guarded balance UPDATE matched
// no rows: missing account, inactive status, or insufficient funds.
func (r *AccountRepository) classifyGuardFailure(ctx context.Context, id uuid.UUID, debit *decimal.Decimal) error {
	account, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account.Status != entities.AccountStatusActive {
		return domainerrors.ErrAccountNotActive
	}
	if debit != nil && account.Balance.LessThan(*debit) {
		return domainerrors.ErrInsufficientFunds
	}
	// The guard no longer fails on re-check; the caller may retry.
	return domainerrors.ErrTransactionFailed
}

// UpdateStatus transitions account status
func (r *AccountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus) error {
	result := r.conn(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
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

// Delete soft deletes an account
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.Account{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUser soft deletes every account of a user (admin cascade)
func (r *AccountRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.conn(ctx).Delete(&models.Account{}, "user_id = ?", userID).Error
}

func accountToEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		Balance:   m.Balance,
		Currency:  m.Currency,
		Status:    entities.AccountStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
