package usecase_test

import (
	"context"
	"testing"

	"coursehub-backend/internal/domain"
	"coursehub-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestRegisterDefaultsToStudent(t *testing.T) {
	uc := usecase.NewAuthUsecase(newFakeUserRepo())

	user, err := uc.Register(context.Background(), "Ana", "ana@example.com", "secret123", "")

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.True(t, user.IsApproved, "students are approved on sign-up")
	assert.NotEqual(t, "secret123", user.Password)
}

func TestRegisterEducatorStartsPending(t *testing.T) {
	uc := usecase.NewAuthUsecase(newFakeUserRepo())

	user, err := uc.Register(context.Background(), "Edu", "edu@example.com", "secret123", domain.RoleEducator)

	assert.NoError(t, err)
	assert.False(t, user.IsApproved, "educators wait for admin review")
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	uc := usecase.NewAuthUsecase(newFakeUserRepo())

	_, err := uc.Register(context.Background(), "Eve", "eve@example.com", "secret123", domain.RoleAdmin)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := usecase.NewAuthUsecase(newFakeUserRepo())
	ctx := context.Background()

	_, err := uc.Register(ctx, "Ana", "ana@example.com", "secret123", "")
	assert.NoError(t, err)

	_, err = uc.Register(ctx, "Other", "ana@example.com", "different", "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin(t *testing.T) {
	uc := usecase.NewAuthUsecase(newFakeUserRepo())
	ctx := context.Background()

	_, err := uc.Register(ctx, "Ana", "ana@example.com", "secret123", "")
	assert.NoError(t, err)

	token, user, err := uc.Login(ctx, "ana@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana@example.com", user.Email)

	_, _, err = uc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = uc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
