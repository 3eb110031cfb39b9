package usecases

import (
	"context"

	"github.com/google/uuid"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/domain/repositories"
)

// AdminUsecase handles user administration
type AdminUsecase struct {
	userRepo         repositories.UserRepository
	accountRepo      repositories.AccountRepository
	beneficiaryRepo  repositories.BeneficiaryRepository
	otpRepo          repositories.OTPRepository
	notificationRepo repositories.NotificationRepository
	uow              repositories.UnitOfWork
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	accountRepo repositories.AccountRepository,
	beneficiaryRepo repositories.BeneficiaryRepository,
	otpRepo repositories.OTPRepository,
	notificationRepo repositories.NotificationRepository,
	uow repositories.UnitOfWork,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:         userRepo,
		accountRepo:      accountRepo,
		beneficiaryRepo:  beneficiaryRepo,
		otpRepo:          otpRepo,
		notificationRepo: notificationRepo,
		uow:              uow,
	}
}

// ListUsers returns all users, optionally filtered by a name/email search
func (u *AdminUsecase) ListUsers(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// GetUser returns a single user
func (u *AdminUsecase) GetUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateUser applies a partial admin update (names, role, active flag)
func (u *AdminUsecase) UpdateUser(ctx context.Context, userID uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if *input.Role != entities.UserRoleAdmin && *input.Role != entities.UserRoleUser {
			return nil, domainerrors.ErrInvalidInput
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and everything hanging off them. Accounts,
// beneficiaries, OTPs, notifications and the user row go in one database
// transaction; transaction and transfer history keeps its rows for audit.
func (u *AdminUsecase) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.accountRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := u.beneficiaryRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := u.otpRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := u.notificationRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return u.userRepo.Delete(ctx, userID)
	})
}
