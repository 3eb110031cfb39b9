package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
)

// BeneficiaryUsecase manages a user's saved payees. New beneficiaries start
// unverified and cannot receive transfers until an admin verifies them.
type BeneficiaryUsecase struct {
	beneficiaryRepo repositories.BeneficiaryRepository
}

// NewBeneficiaryUsecase creates a new beneficiary usecase
func NewBeneficiaryUsecase(beneficiaryRepo repositories.BeneficiaryRepository) *BeneficiaryUsecase {
	return &BeneficiaryUsecase{beneficiaryRepo: beneficiaryRepo}
}

func (u *BeneficiaryUsecase) getOwned(ctx context.Context, userID, beneficiaryID uuid.UUID) (*entities.Beneficiary, error) {
	beneficiary, err := u.beneficiaryRepo.GetByID(ctx, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if beneficiary.UserID != userID {
		return nil, domainerrors.ErrAccessDenied
	}
	return beneficiary, nil
}

// Create saves a new payee for the user
func (u *BeneficiaryUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateBeneficiaryInput) (*entities.Beneficiary, error) {
	beneficiary := &entities.Beneficiary{
		UserID:   userID,
		Name:     input.Name,
		BankName: input.BankName,
		IBAN:     input.IBAN,
	}
	if input.Email != "" {
		beneficiary.Email = null.StringFrom(input.Email)
	}

	if err := u.beneficiaryRepo.Create(ctx, beneficiary); err != nil {
		return nil, err
	}
	return beneficiary, nil
}

// Get returns one of the caller's beneficiaries
func (u *BeneficiaryUsecase) Get(ctx context.Context, userID, beneficiaryID uuid.UUID) (*entities.Beneficiary, error) {
	return u.getOwned(ctx, userID, beneficiaryID)
}

// List returns all of the caller's beneficiaries
func (u *BeneficiaryUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Beneficiary, error) {
	return u.beneficiaryRepo.ListByUser(ctx, userID)
}

// Update applies a partial update. Changing the IBAN clears the verified
// flag so the new account details get re-checked.
func (u *BeneficiaryUsecase) Update(ctx context.Context, userID, beneficiaryID uuid.UUID, input *entities.UpdateBeneficiaryInput) (*entities.Beneficiary, error) {
	beneficiary, err := u.getOwned(ctx, userID, beneficiaryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		beneficiary.Name = *input.Name
	}
	if input.BankName != nil {
		beneficiary.BankName = *input.BankName
	}
	if input.IBAN != nil && *input.IBAN != beneficiary.IBAN {
		beneficiary.IBAN = *input.IBAN
		beneficiary.IsVerified = false
	}
	if input.Email != nil {
		if *input.Email == "" {
			beneficiary.Email = null.String{}
		} else {
			beneficiary.Email = null.StringFrom(*input.Email)
		}
	}

	if err := u.beneficiaryRepo.Update(ctx, beneficiary); err != nil {
		return nil, err
	}
	return beneficiary, nil
}

// Delete removes one of the caller's beneficiaries. Completed transfers keep
// their reference so history survives the deletion.
func (u *BeneficiaryUsecase) Delete(ctx context.Context, userID, beneficiaryID uuid.UUID) error {
	if _, err := u.getOwned(ctx, userID, beneficiaryID); err != nil {
		return err
	}
	return u.beneficiaryRepo.Delete(ctx, beneficiaryID)
}

// SetVerified flips the verification flag (admin)
func (u *BeneficiaryUsecase) SetVerified(ctx context.Context, beneficiaryID uuid.UUID, verified bool) (*entities.Beneficiary, error) {
	beneficiary, err := u.beneficiaryRepo.GetByID(ctx, beneficiaryID)
	if err != nil {
		return nil, err
	}

	if err := u.beneficiaryRepo.SetVerified(ctx, beneficiaryID, verified); err != nil {
		return nil, err
	}

	beneficiary.IsVerified = verified
	return beneficiary, nil
}
