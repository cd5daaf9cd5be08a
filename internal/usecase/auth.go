package usecase

import (
	"context"
	"fmt"

	"coursehub-backend/internal/domain"
	"coursehub-backend/pkg/utils"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(ur domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: ur}
}

func (uc *authUsecase) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleStudent
	}
	if role != domain.RoleStudent && role != domain.RoleEducator {
		return nil, fmt.Errorf("%w: role must be student or educator", domain.ErrValidation)
	}

	existing, _ := uc.userRepo.GetByEmail(ctx, email)
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	user, err := domain.NewUser(name, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), user.IsApproved)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (uc *authUsecase) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *authUsecase) UpdateProfile(ctx context.Context, caller domain.Caller, name, password, profileImage string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if profileImage != "" {
		user.ProfileImage = profileImage
	}
	if password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
