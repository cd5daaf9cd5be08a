package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"coursehub-backend/internal/domain"
)

type enrollmentUsecase struct {
	enrollmentRepo domain.EnrollmentRepository
	courseRepo     domain.CourseRepository
	moduleRepo     domain.ModuleRepository
	videoRepo      domain.VideoRepository
}

func NewEnrollmentUsecase(
	er domain.EnrollmentRepository,
	cr domain.CourseRepository,
	mr domain.ModuleRepository,
	vr domain.VideoRepository,
) domain.EnrollmentUsecase {
	return &enrollmentUsecase{
		enrollmentRepo: er,
		courseRepo:     cr,
		moduleRepo:     mr,
		videoRepo:      vr,
	}
}

func (uc *enrollmentUsecase) GetStudentEnrollments(ctx context.Context, caller domain.Caller) ([]domain.EnrollmentWithCourse, error) {
	return uc.enrollmentRepo.GetByStudentID(ctx, caller.ID)
}

func (uc *enrollmentUsecase) Enroll(ctx context.Context, caller domain.Caller, courseID uint) (*domain.Enrollment, error) {
	existing, err := uc.enrollmentRepo.GetByStudentAndCourse(ctx, caller.ID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: already enrolled in this course", domain.ErrConflict)
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsApproved {
		return nil, fmt.Errorf("%w: course is not approved", domain.ErrNotFound)
	}

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
	return enrollment, nil
}

// RecordProgress applies a progress event to an enrollment: optionally mark
// a video watched, optionally override the completion flag, then recompute
// the watched percentage against the course's current video set. The
// explicit override is applied before the all-watched rule, so watching the
// final video forces completed back to true even when the same call asked
// for false.
func (uc *enrollmentUsecase) RecordProgress(ctx context.Context, caller domain.Caller, enrollmentID uint, upd domain.ProgressUpdate) (*domain.Enrollment, error) {
	enrollment, err := uc.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.StudentID != caller.ID {
		return nil, fmt.Errorf("%w: enrollment does not belong to caller", domain.ErrForbidden)
	}

	if upd.VideoID != "" && !enrollment.HasWatched(upd.VideoID) {
		watched := &domain.WatchedVideo{
			EnrollmentID: enrollment.ID,
			VideoID:      upd.VideoID,
		}
		err := uc.enrollmentRepo.AddWatched(ctx, watched)
		// A concurrent duplicate insert still means the video is watched.
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		enrollment.WatchedVideos = append(enrollment.WatchedVideos, *watched)
	}

	if upd.Completed != nil {
		enrollment.Completed = *upd.Completed
	}

	total, watchedCount, err := uc.countCourseProgress(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	if total == 0 {
		enrollment.Progress = 0
	} else {
		enrollment.Progress = int(math.Round(float64(watchedCount) / float64(total) * 100))
		if watchedCount == total {
			enrollment.Completed = true
		}
	}

	enrollment.LastAccessed = time.Now()
	if err := uc.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// countCourseProgress walks course -> modules -> videos and counts how many
// of the course's videos are in the watched set. Watched ids that no longer
// belong to the course stay stored but never count.
func (uc *enrollmentUsecase) countCourseProgress(ctx context.Context, enrollment *domain.Enrollment) (total, watched int, err error) {
	modules, err := uc.moduleRepo.GetByCourseID(ctx, enrollment.CourseID)
	if err != nil {
		return 0, 0, err
	}

	moduleIDs := make([]string, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	videos, err := uc.videoRepo.GetByModuleIDs(ctx, moduleIDs)
	if err != nil {
		return 0, 0, err
	}

	courseVideos := make(map[string]bool, len(videos))
	for _, v := range videos {
		courseVideos[v.ID] = true
	}
	for _, w := range enrollment.WatchedVideos {
		if courseVideos[w.VideoID] {
			watched++
		}
	}
	return len(videos), watched, nil
}
