package usecase

import (
	"context"
	"fmt"

	"coursehub-backend/internal/domain"
)

type userUsecase struct {
	userRepo domain.UserRepository
}

func NewUserUsecase(ur domain.UserRepository) domain.UserUsecase {
	return &userUsecase{userRepo: ur}
}

func requireAdmin(caller domain.Caller) error {
	if caller.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
	}
	return nil
}

func (uc *userUsecase) GetAllUsers(ctx context.Context, caller domain.Caller) ([]domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return uc.userRepo.GetAll(ctx)
}

func (uc *userUsecase) GetEducators(ctx context.Context, caller domain.Caller) ([]domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByRole(ctx, domain.RoleEducator)
}

func (uc *userUsecase) ApproveEducator(ctx context.Context, caller domain.Caller, userID uint) (*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleEducator {
		return nil, fmt.Errorf("%w: user is not an educator", domain.ErrValidation)
	}

	user.IsApproved = true
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUsecase) CreateEducator(ctx context.Context, caller domain.Caller, name, email, password string) (*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	existing, _ := uc.userRepo.GetByEmail(ctx, email)
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	user, err := domain.NewUser(name, email, password, domain.RoleEducator)
	if err != nil {
		return nil, err
	}
	// Admin-created educators skip the review queue.
	user.IsApproved = true

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
