package usecase

import (
	"context"
	"fmt"

	"coursehub-backend/internal/domain"
)

type courseUsecase struct {
	courseRepo domain.CourseRepository
	moduleRepo domain.ModuleRepository
	videoRepo  domain.VideoRepository
}

func NewCourseUsecase(
	cr domain.CourseRepository,
	mr domain.ModuleRepository,
	vr domain.VideoRepository,
) domain.CourseUsecase {
	return &courseUsecase{
		courseRepo: cr,
		moduleRepo: mr,
		videoRepo:  vr,
	}
}

func (uc *courseUsecase) GetApprovedCourses(ctx context.Context) ([]domain.CourseWithEducator, error) {
	return uc.courseRepo.GetApproved(ctx)
}

func (uc *courseUsecase) GetCourseByID(ctx context.Context, id uint) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// View counter is best effort; a miss never fails the read.
	if err := uc.courseRepo.IncrementViews(ctx, id); err == nil {
		course.Views++
	}
	return course, nil
}

func (uc *courseUsecase) GetCourseContent(ctx context.Context, id uint) (*domain.CourseContent, error) {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	modules, err := uc.moduleRepo.GetByCourseID(ctx, id)
	if err != nil {
		return nil, err
	}

	content := &domain.CourseContent{Course: *course}
	for _, module := range modules {
		videos, err := uc.videoRepo.GetByModuleID(ctx, module.ID)
		if err != nil {
			return nil, err
		}
		content.Modules = append(content.Modules, domain.ModuleContent{
			Module: module,
			Videos: videos,
		})
	}
	return content, nil
}

func (uc *courseUsecase) CreateCourse(ctx context.Context, caller domain.Caller, course *domain.Course) error {
	if caller.Role != domain.RoleEducator {
		return fmt.Errorf("%w: educator role required", domain.ErrForbidden)
	}
	if !caller.Approved {
		return fmt.Errorf("%w: account is pending approval", domain.ErrForbidden)
	}

	course.EducatorID = caller.ID
	course.IsApproved = false // new courses wait for admin review
	return uc.courseRepo.Create(ctx, course)
}

func (uc *courseUsecase) UpdateCourse(ctx context.Context, caller domain.Caller, courseID uint, upd domain.CourseUpdate) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.EducatorID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: course does not belong to caller", domain.ErrForbidden)
	}

	contentChanged := false
	if upd.Title != "" {
		course.Title = upd.Title
		contentChanged = true
	}
	if upd.Description != "" {
		course.Description = upd.Description
		contentChanged = true
	}
	if upd.Category != "" {
		course.Category = upd.Category
		contentChanged = true
	}
	if upd.Image != "" {
		course.Image = upd.Image
	}
	if upd.Price != nil {
		course.Price = *upd.Price
	}

	// Substantial edits send an approved course back through review.
	if course.IsApproved && contentChanged {
		course.IsApproved = false
	}

	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *courseUsecase) DeleteCourse(ctx context.Context, caller domain.Caller, id uint) error {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course.EducatorID != caller.ID && caller.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: course does not belong to caller", domain.ErrForbidden)
	}

	// Children go first: videos under each module, then the modules.
	modules, err := uc.moduleRepo.GetByCourseID(ctx, id)
	if err != nil {
		return err
	}
	for _, module := range modules {
		if err := uc.videoRepo.DeleteByModuleID(ctx, module.ID); err != nil {
			return err
		}
	}
	if err := uc.moduleRepo.DeleteByCourseID(ctx, id); err != nil {
		return err
	}

	return uc.courseRepo.Delete(ctx, id)
}

func (uc *courseUsecase) GetEducatorCourses(ctx context.Context, caller domain.Caller) ([]domain.Course, error) {
	if caller.Role != domain.RoleEducator {
		return nil, fmt.Errorf("%w: educator role required", domain.ErrForbidden)
	}
	return uc.courseRepo.GetByEducatorID(ctx, caller.ID)
}

func (uc *courseUsecase) GetPendingCourses(ctx context.Context, caller domain.Caller) ([]domain.CourseWithEducator, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return uc.courseRepo.GetPending(ctx)
}

func (uc *courseUsecase) ApproveCourse(ctx context.Context, caller domain.Caller, id uint) (*domain.Course, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.IsApproved = true
	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}
