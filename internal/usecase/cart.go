package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coursehub-backend/internal/domain"
)

type cartUsecase struct {
	cartRepo       domain.CartRepository
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
}

func NewCartUsecase(
	cr domain.CartRepository,
	courseRepo domain.CourseRepository,
	er domain.EnrollmentRepository,
) domain.CartUsecase {
	return &cartUsecase{
		cartRepo:       cr,
		courseRepo:     courseRepo,
		enrollmentRepo: er,
	}
}

// getOrCreate returns the student's cart, creating the one-per-student row
// on first use.
func (uc *cartUsecase) getOrCreate(ctx context.Context, studentID uint) (*domain.Cart, error) {
	cart, err := uc.cartRepo.GetByStudentID(ctx, studentID)
	if errors.Is(err, domain.ErrNotFound) {
		cart = &domain.Cart{StudentID: studentID}
		if err := uc.cartRepo.Create(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	return cart, err
}

func (uc *cartUsecase) GetCart(ctx context.Context, caller domain.Caller) (*domain.Cart, error) {
	cart, err := uc.getOrCreate(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	// Courses un-approved after being added stay stored but drop out of the
	// view until they are approved again.
	visible := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Course.IsApproved {
			visible = append(visible, item)
		}
	}
	cart.Items = visible
	return cart, nil
}

func (uc *cartUsecase) AddToCart(ctx context.Context, caller domain.Caller, courseID uint) (*domain.Cart, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsApproved {
		return nil, fmt.Errorf("%w: course is not approved", domain.ErrNotFound)
	}

	enrollment, err := uc.enrollmentRepo.GetByStudentAndCourse(ctx, caller.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment != nil {
		return nil, fmt.Errorf("%w: already enrolled in this course", domain.ErrConflict)
	}

	cart, err := uc.getOrCreate(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if cart.Contains(courseID) {
		return nil, fmt.Errorf("%w: course already in cart", domain.ErrConflict)
	}

	if err := uc.cartRepo.AddItem(ctx, &domain.CartItem{CartID: cart.ID, CourseID: courseID}); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetByStudentID(ctx, caller.ID)
}

func (uc *cartUsecase) RemoveFromCart(ctx context.Context, caller domain.Caller, courseID uint) (*domain.Cart, error) {
	cart, err := uc.cartRepo.GetByStudentID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.cartRepo.RemoveItem(ctx, cart.ID, courseID); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetByStudentID(ctx, caller.ID)
}

// Checkout converts every approved course in the cart into an enrollment
// and clears the cart. The whole batch is rejected when any course is
// already enrolled, matching the store's (student, course) uniqueness.
func (uc *cartUsecase) Checkout(ctx context.Context, caller domain.Caller) ([]domain.Enrollment, error) {
	cart, err := uc.cartRepo.GetByStudentID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	var courseIDs []uint
	for _, item := range cart.Items {
		if item.Course.IsApproved {
			courseIDs = append(courseIDs, item.CourseID)
		}
	}
	if len(courseIDs) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	for _, courseID := range courseIDs {
		enrollment, err := uc.enrollmentRepo.GetByStudentAndCourse(ctx, caller.ID, courseID)
		if err != nil {
			return nil, err
		}
		if enrollment != nil {
			return nil, fmt.Errorf("%w: already enrolled in a course in the cart", domain.ErrConflict)
		}
	}

	enrollments := make([]domain.Enrollment, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		enrollment := &domain.Enrollment{
			StudentID:    caller.ID,
			CourseID:     courseID,
			LastAccessed: time.Now(),
		}
		if err := uc.enrollmentRepo.Create(ctx, enrollment); err != nil {
			return nil, err
		}
		if err := uc.courseRepo.IncrementEnrolled(ctx, courseID); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, *enrollment)
	}

	if err := uc.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return nil, err
	}
	return enrollments, nil
}
