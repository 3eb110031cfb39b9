package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/models"
)

// BeneficiaryRepository implements saved-payee data operations
type BeneficiaryRepository struct {
	db *gorm.DB
}

// NewBeneficiaryRepository creates a new beneficiary repository
func NewBeneficiaryRepository(db *gorm.DB) *BeneficiaryRepository {
	return &BeneficiaryRepository{db: db}
}

func (r *BeneficiaryRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new beneficiary
func (r *BeneficiaryRepository) Create(ctx context.Context, beneficiary *entities.Beneficiary) error {
	if beneficiary.ID == uuid.Nil {
		beneficiary.ID = uuid.New()
	}
	m := &models.Beneficiary{
		ID:         beneficiary.ID,
		UserID:     beneficiary.UserID,
		Name:       beneficiary.Name,
		BankName:   beneficiary.BankName,
		IBAN:       beneficiary.IBAN,
		IsVerified: beneficiary.IsVerified,
	}
	if beneficiary.Email.Valid {
		email := beneficiary.Email.String
		m.Email = &email
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	beneficiary.CreatedAt = m.CreatedAt
	beneficiary.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a beneficiary by ID
func (r *BeneficiaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Beneficiary, error) {
	var m models.Beneficiary
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return beneficiaryToEntity(&m), nil
}

// ListByUser lists all beneficiaries of a user
func (r *BeneficiaryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Beneficiary, error) {
	var beneficiaryModels []models.Beneficiary
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&beneficiaryModels).Error; err != nil {
		return nil, err
	}
	beneficiaries := make([]*entities.Beneficiary, 0, len(beneficiaryModels))
	for i := range beneficiaryModels {
		beneficiaries = append(beneficiaries, beneficiaryToEntity(&beneficiaryModels[i]))
	}
	return beneficiaries, nil
}

// Update updates beneficiary fields
func (r *BeneficiaryRepository) Update(ctx context.Context, beneficiary *entities.Beneficiary) error {
	updates := map[string]interface{}{
		"name":       beneficiary.Name,
		"bank_name":  beneficiary.BankName,
		"iban":       beneficiary.IBAN,
		"updated_at": time.Now(),
	}
	if beneficiary.Email.Valid {
		updates["email"] = beneficiary.Email.String
	}

	result := r.conn(ctx).Model(&models.Beneficiary{}).Where("id = ?", beneficiary.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetVerified flips the verification flag (admin operation)
func (r *BeneficiaryRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := r.conn(ctx).Model(&models.Beneficiary{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_verified": verified,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a beneficiary. Transfer history references the id
// and is retained.
func (r *BeneficiaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.Beneficiary{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUser soft deletes all beneficiaries of a user (admin cascade)
func (r *BeneficiaryRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.conn(ctx).Delete(&models.Beneficiary{}, "user_id = ?", userID).Error
}

func beneficiaryToEntity(m *models.Beneficiary) *entities.Beneficiary {
	return &entities.Beneficiary{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		BankName:   m.BankName,
		IBAN:       m.IBAN,
		Email:      null.StringFromPtr(m.Email),
		IsVerified: m.IsVerified,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
