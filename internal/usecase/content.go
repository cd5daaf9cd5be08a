package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"coursehub-backend/internal/domain"
	"coursehub-backend/internal/ordering"
)

var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.youtube\.com|youtu\.?be)/.+$`)

// contentUsecase is the ordered-collection manager for both sibling-group
// types: modules within a course and videos within a module. The ordering
// package holds the sequence arithmetic; this layer does the lookups,
// ownership checks, and writes.
type contentUsecase struct {
	courseRepo domain.CourseRepository
	moduleRepo domain.ModuleRepository
	videoRepo  domain.VideoRepository
}

func NewContentUsecase(
	cr domain.CourseRepository,
	mr domain.ModuleRepository,
	vr domain.VideoRepository,
) domain.ContentUsecase {
	return &contentUsecase{
		courseRepo: cr,
		moduleRepo: mr,
		videoRepo:  vr,
	}
}

// ownedCourse loads a course and verifies the caller authored it.
func (uc *contentUsecase) ownedCourse(ctx context.Context, caller domain.Caller, courseID uint) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.EducatorID != caller.ID {
		return nil, fmt.Errorf("%w: course does not belong to caller", domain.ErrForbidden)
	}
	return course, nil
}

// ownedModule loads a module and verifies the caller owns the parent course.
func (uc *contentUsecase) ownedModule(ctx context.Context, caller domain.Caller, moduleID string) (*domain.Module, error) {
	module, err := uc.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedCourse(ctx, caller, module.CourseID); err != nil {
		return nil, err
	}
	return module, nil
}

// ========== MODULES ==========

func (uc *contentUsecase) GetModulesByCourse(ctx context.Context, courseID uint) ([]domain.Module, error) {
	return uc.moduleRepo.GetByCourseID(ctx, courseID)
}

func (uc *contentUsecase) AddModule(ctx context.Context, caller domain.Caller, module *domain.Module) error {
	if _, err := uc.ownedCourse(ctx, caller, module.CourseID); err != nil {
		return err
	}

	siblings, err := uc.moduleRepo.GetByCourseID(ctx, module.CourseID)
	if err != nil {
		return err
	}

	module.Order = ordering.Next(modulePtrs(siblings))
	module.CreatedAt = time.Now()
	return uc.moduleRepo.Create(ctx, module)
}

func (uc *contentUsecase) UpdateModule(ctx context.Context, caller domain.Caller, moduleID string, upd domain.ModuleUpdate) (*domain.Module, error) {
	module, err := uc.ownedModule(ctx, caller, moduleID)
	if err != nil {
		return nil, err
	}

	if upd.Title != "" {
		module.Title = upd.Title
	}
	if upd.Description != "" {
		module.Description = upd.Description
	}

	if upd.Order == nil || *upd.Order == module.Order {
		if err := uc.moduleRepo.Update(ctx, module); err != nil {
			return nil, err
		}
		return module, nil
	}

	siblings, err := uc.moduleRepo.GetByCourseID(ctx, module.CourseID)
	if err != nil {
		return nil, err
	}

	items := modulePtrs(siblings)
	from := -1
	for i, m := range items {
		if m.ID == moduleID {
			items[i] = module // carry the metadata edits through the move
			from = i
			break
		}
	}
	if from < 0 {
		return nil, domain.ErrNotFound
	}

	fromOrder := module.Order
	_, changed := ordering.Move(items, from, *upd.Order)
	if module.Order == fromOrder { // clamp landed back on the same slot
		if err := uc.moduleRepo.Update(ctx, module); err != nil {
			return nil, err
		}
		return module, nil
	}

	// The unique (course_id, order) index forbids two siblings ever holding
	// the same order, so the writes must chase the vacated slot: park the
	// moved module at 0, shift the displaced block through the gap, then
	// land the module on its final order.
	if err := uc.moduleRepo.UpdateOrder(ctx, moduleID, 0); err != nil {
		return nil, err
	}
	if module.Order < fromOrder {
		for i := len(changed) - 1; i >= 0; i-- {
			if changed[i].ID == moduleID {
				continue
			}
			if err := uc.moduleRepo.UpdateOrder(ctx, changed[i].ID, changed[i].Order); err != nil {
				return nil, err
			}
		}
	} else {
		for _, m := range changed {
			if m.ID == moduleID {
				continue
			}
			if err := uc.moduleRepo.UpdateOrder(ctx, m.ID, m.Order); err != nil {
				return nil, err
			}
		}
	}
	if err := uc.moduleRepo.Update(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (uc *contentUsecase) DeleteModule(ctx context.Context, caller domain.Caller, moduleID string) error {
	module, err := uc.ownedModule(ctx, caller, moduleID)
	if err != nil {
		return err
	}

	// Videos under the module go first, then the module itself.
	if err := uc.videoRepo.DeleteByModuleID(ctx, moduleID); err != nil {
		return err
	}
	if err := uc.moduleRepo.Delete(ctx, moduleID); err != nil {
		return err
	}

	siblings, err := uc.moduleRepo.GetByCourseID(ctx, module.CourseID)
	if err != nil {
		return err
	}
	for _, m := range ordering.Renumber(modulePtrs(siblings)) {
		if err := uc.moduleRepo.UpdateOrder(ctx, m.ID, m.Order); err != nil {
			return err
		}
	}
	return nil
}

// ========== VIDEOS ==========

func (uc *contentUsecase) GetVideosByModule(ctx context.Context, moduleID string) ([]domain.Video, error) {
	return uc.videoRepo.GetByModuleID(ctx, moduleID)
}

func (uc *contentUsecase) AddVideo(ctx context.Context, caller domain.Caller, video *domain.Video) error {
	if !youtubeURLPattern.MatchString(video.VideoURL) {
		return fmt.Errorf("%w: video_url must be a YouTube URL", domain.ErrValidation)
	}
	if _, err := uc.ownedModule(ctx, caller, video.ModuleID); err != nil {
		return err
	}

	siblings, err := uc.videoRepo.GetByModuleID(ctx, video.ModuleID)
	if err != nil {
		return err
	}

	video.Order = ordering.Next(videoPtrs(siblings))
	video.CreatedAt = time.Now()
	return uc.videoRepo.Create(ctx, video)
}

func (uc *contentUsecase) UpdateVideo(ctx context.Context, caller domain.Caller, videoID string, upd domain.VideoUpdate) (*domain.Video, error) {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedModule(ctx, caller, video.ModuleID); err != nil {
		return nil, err
	}

	if upd.Title != "" {
		video.Title = upd.Title
	}
	if upd.VideoURL != "" {
		if !youtubeURLPattern.MatchString(upd.VideoURL) {
			return nil, fmt.Errorf("%w: video_url must be a YouTube URL", domain.ErrValidation)
		}
		video.VideoURL = upd.VideoURL
	}
	if upd.Duration != nil {
		video.Duration = *upd.Duration
	}

	if upd.Order == nil || *upd.Order == video.Order {
		if err := uc.videoRepo.Update(ctx, video); err != nil {
			return nil, err
		}
		return video, nil
	}

	siblings, err := uc.videoRepo.GetByModuleID(ctx, video.ModuleID)
	if err != nil {
		return nil, err
	}

	items := videoPtrs(siblings)
	from := -1
	for i, v := range items {
		if v.ID == videoID {
			items[i] = video
			from = i
			break
		}
	}
	if from < 0 {
		return nil, domain.ErrNotFound
	}

	fromOrder := video.Order
	_, changed := ordering.Move(items, from, *upd.Order)
	if video.Order == fromOrder { // clamp landed back on the same slot
		if err := uc.videoRepo.Update(ctx, video); err != nil {
			return nil, err
		}
		return video, nil
	}

	// Same slot-chasing discipline as modules: the unique (module_id, order)
	// index rejects any write that lands on a held order.
	if err := uc.videoRepo.UpdateOrder(ctx, videoID, 0); err != nil {
		return nil, err
	}
	if video.Order < fromOrder {
		for i := len(changed) - 1; i >= 0; i-- {
			if changed[i].ID == videoID {
				continue
			}
			if err := uc.videoRepo.UpdateOrder(ctx, changed[i].ID, changed[i].Order); err != nil {
				return nil, err
			}
		}
	} else {
		for _, v := range changed {
			if v.ID == videoID {
				continue
			}
			if err := uc.videoRepo.UpdateOrder(ctx, v.ID, v.Order); err != nil {
				return nil, err
			}
		}
	}
	if err := uc.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (uc *contentUsecase) DeleteVideo(ctx context.Context, caller domain.Caller, videoID string) error {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if _, err := uc.ownedModule(ctx, caller, video.ModuleID); err != nil {
		return err
	}

	if err := uc.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	siblings, err := uc.videoRepo.GetByModuleID(ctx, video.ModuleID)
	if err != nil {
		return err
	}
	for _, v := range ordering.Renumber(videoPtrs(siblings)) {
		if err := uc.videoRepo.UpdateOrder(ctx, v.ID, v.Order); err != nil {
			return err
		}
	}
	return nil
}

func modulePtrs(modules []domain.Module) []*domain.Module {
	out := make([]*domain.Module, len(modules))
	for i := range modules {
		out[i] = &modules[i]
	}
	return out
}

func videoPtrs(videos []domain.Video) []*domain.Video {
	out := make([]*domain.Video, len(videos))
	for i := range videos {
		out[i] = &videos[i]
	}
	return out
}
