package usecase

import (
	"context"

	"coursehub-backend/internal/domain"
)

type dashboardUsecase struct {
	userRepo       domain.UserRepository
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
}

func NewDashboardUsecase(
	ur domain.UserRepository,
	cr domain.CourseRepository,
	er domain.EnrollmentRepository,
) domain.DashboardUsecase {
	return &dashboardUsecase{
		userRepo:       ur,
		courseRepo:     cr,
		enrollmentRepo: er,
	}
}

func (uc *dashboardUsecase) GetAdminDashboard(ctx context.Context, caller domain.Caller) (*domain.AdminDashboardData, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	students, err := uc.userRepo.CountByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}
	educators, err := uc.userRepo.CountByRole(ctx, domain.RoleEducator)
	if err != nil {
		return nil, err
	}
	pendingEducators, err := uc.userRepo.CountPendingByRole(ctx, domain.RoleEducator)
	if err != nil {
		return nil, err
	}
	admins, err := uc.userRepo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	courses, err := uc.courseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingCourses, err := uc.courseRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := uc.enrollmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.AdminDashboardData{
		TotalUsers:       students + educators + admins,
		TotalStudents:    students,
		TotalEducators:   educators,
		PendingEducators: pendingEducators,
		TotalCourses:     courses,
		PendingCourses:   pendingCourses,
		TotalEnrollments: enrollments,
	}, nil
}
