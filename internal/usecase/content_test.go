package usecase_test

import (
	"context"
	"testing"

	"coursehub-backend/internal/domain"
	"coursehub-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func newContentFixture(t *testing.T) (domain.ContentUsecase, *fakeCourseRepo, *fakeModuleRepo, *fakeVideoRepo) {
	t.Helper()
	courseRepo := newFakeCourseRepo()
	moduleRepo := newFakeModuleRepo()
	videoRepo := newFakeVideoRepo()
	uc := usecase.NewContentUsecase(courseRepo, moduleRepo, videoRepo)

	err := courseRepo.Create(context.Background(), &domain.Course{
		Title:      "Go Basics",
		Category:   "programming",
		EducatorID: 7,
		IsApproved: true,
	})
	assert.NoError(t, err)
	return uc, courseRepo, moduleRepo, videoRepo
}

func educator() domain.Caller {
	return domain.Caller{ID: 7, Role: domain.RoleEducator, Approved: true}
}

func seedModules(t *testing.T, uc domain.ContentUsecase, titles ...string) []string {
	t.Helper()
	ids := make([]string, len(titles))
	for i, title := range titles {
		module := &domain.Module{CourseID: 1, Title: title, Description: title}
		assert.NoError(t, uc.AddModule(context.Background(), educator(), module))
		ids[i] = module.ID
	}
	return ids
}

func moduleOrders(t *testing.T, uc domain.ContentUsecase) map[string]int {
	t.Helper()
	modules, err := uc.GetModulesByCourse(context.Background(), 1)
	assert.NoError(t, err)
	orders := make(map[string]int, len(modules))
	for _, m := range modules {
		orders[m.Title] = m.Order
	}
	return orders
}

func TestAddModuleAppendsInOrder(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)

	seedModules(t, uc, "Intro", "Types", "Slices")

	assert.Equal(t, map[string]int{"Intro": 1, "Types": 2, "Slices": 3}, moduleOrders(t, uc))
}

func TestAddModuleRejectsForeignCourse(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)

	stranger := domain.Caller{ID: 99, Role: domain.RoleEducator, Approved: true}
	err := uc.AddModule(context.Background(), stranger, &domain.Module{CourseID: 1, Title: "Hijack"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateModuleMovesToFront(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A", "B", "C")

	target := 1
	moved, err := uc.UpdateModule(context.Background(), educator(), ids[2], domain.ModuleUpdate{Order: &target})

	assert.NoError(t, err)
	assert.Equal(t, 1, moved.Order)
	assert.Equal(t, map[string]int{"C": 1, "A": 2, "B": 3}, moduleOrders(t, uc))
}

func TestUpdateModuleClampsTarget(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A", "B", "C")

	target := 50
	moved, err := uc.UpdateModule(context.Background(), educator(), ids[0], domain.ModuleUpdate{Order: &target})

	assert.NoError(t, err)
	assert.Equal(t, 3, moved.Order)
	assert.Equal(t, map[string]int{"B": 1, "C": 2, "A": 3}, moduleOrders(t, uc))
}

func TestUpdateModuleMoveFromMiddle(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A", "B", "C", "D")

	// Rightward move out of the middle; the fake stores reject any write
	// that lands on an order a sibling still holds, so this passes only if
	// the writes chase the vacated slot.
	target := 4
	moved, err := uc.UpdateModule(context.Background(), educator(), ids[1], domain.ModuleUpdate{Order: &target})

	assert.NoError(t, err)
	assert.Equal(t, 4, moved.Order)
	assert.Equal(t, map[string]int{"A": 1, "C": 2, "D": 3, "B": 4}, moduleOrders(t, uc))
}

func TestUpdateModuleMetadataKeepsOrder(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A", "B")

	updated, err := uc.UpdateModule(context.Background(), educator(), ids[1], domain.ModuleUpdate{Title: "B renamed"})

	assert.NoError(t, err)
	assert.Equal(t, "B renamed", updated.Title)
	assert.Equal(t, 2, updated.Order)
}

func TestDeleteModuleClosesGapAndDropsVideos(t *testing.T) {
	uc, _, _, videoRepo := newContentFixture(t)
	ids := seedModules(t, uc, "X", "Y", "Z")

	video := &domain.Video{ModuleID: ids[1], Title: "clip", VideoURL: "https://youtube.com/watch?v=abc"}
	assert.NoError(t, uc.AddVideo(context.Background(), educator(), video))

	assert.NoError(t, uc.DeleteModule(context.Background(), educator(), ids[1]))

	assert.Equal(t, map[string]int{"X": 1, "Z": 2}, moduleOrders(t, uc))
	orphans, err := videoRepo.GetByModuleID(context.Background(), ids[1])
	assert.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestAddVideoValidatesURL(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A")

	err := uc.AddVideo(context.Background(), educator(), &domain.Video{
		ModuleID: ids[0],
		Title:    "clip",
		VideoURL: "https://vimeo.com/12345",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVideoOrderingWithinModule(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A")
	ctx := context.Background()

	var videoIDs []string
	for _, title := range []string{"one", "two", "three"} {
		v := &domain.Video{ModuleID: ids[0], Title: title, VideoURL: "https://youtu.be/" + title}
		assert.NoError(t, uc.AddVideo(ctx, educator(), v))
		videoIDs = append(videoIDs, v.ID)
	}

	target := 1
	_, err := uc.UpdateVideo(ctx, educator(), videoIDs[2], domain.VideoUpdate{Order: &target})
	assert.NoError(t, err)

	videos, err := uc.GetVideosByModule(ctx, ids[0])
	assert.NoError(t, err)
	got := make([]string, len(videos))
	for i, v := range videos {
		got[i] = v.Title
		assert.Equal(t, i+1, v.Order)
	}
	assert.Equal(t, []string{"three", "one", "two"}, got)
}

func TestUpdateVideoMoveToEnd(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A")
	ctx := context.Background()

	var videoIDs []string
	for _, title := range []string{"one", "two", "three"} {
		v := &domain.Video{ModuleID: ids[0], Title: title, VideoURL: "https://youtu.be/" + title}
		assert.NoError(t, uc.AddVideo(ctx, educator(), v))
		videoIDs = append(videoIDs, v.ID)
	}

	target := 3
	moved, err := uc.UpdateVideo(ctx, educator(), videoIDs[0], domain.VideoUpdate{Order: &target})
	assert.NoError(t, err)
	assert.Equal(t, 3, moved.Order)

	videos, err := uc.GetVideosByModule(ctx, ids[0])
	assert.NoError(t, err)
	got := make([]string, len(videos))
	for i, v := range videos {
		got[i] = v.Title
		assert.Equal(t, i+1, v.Order)
	}
	assert.Equal(t, []string{"two", "three", "one"}, got)
}

func TestDeleteVideoRenumbersSiblings(t *testing.T) {
	uc, _, _, _ := newContentFixture(t)
	ids := seedModules(t, uc, "A")
	ctx := context.Background()

	var videoIDs []string
	for _, title := range []string{"one", "two", "three"} {
		v := &domain.Video{ModuleID: ids[0], Title: title, VideoURL: "https://youtu.be/" + title}
		assert.NoError(t, uc.AddVideo(ctx, educator(), v))
		videoIDs = append(videoIDs, v.ID)
	}

	assert.NoError(t, uc.DeleteVideo(ctx, educator(), videoIDs[0]))

	videos, err := uc.GetVideosByModule(ctx, ids[0])
	assert.NoError(t, err)
	assert.Len(t, videos, 2)
	assert.Equal(t, "two", videos[0].Title)
	assert.Equal(t, 1, videos[0].Order)
	assert.Equal(t, "three", videos[1].Title)
	assert.Equal(t, 2, videos[1].Order)
}
