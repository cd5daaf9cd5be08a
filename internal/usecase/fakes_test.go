package usecase_test

import (
	"context"
	"fmt"
	"sort"

	"coursehub-backend/internal/domain"
)

// In-memory repositories backing the usecase tests. They keep the same
// contracts as the real stores: sorted sibling reads, duplicate-key
// conflicts, not-found sentinels.

// ========== USER ==========

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) GetByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	users, _ := r.GetByRole(context.Background(), role)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) CountPendingByRole(_ context.Context, role domain.Role) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role && !u.IsApproved {
			count++
		}
	}
	return count, nil
}

// ========== COURSE ==========

type fakeCourseRepo struct {
	courses map[uint]*domain.Course
	nextID  uint
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uint]*domain.Course), nextID: 1}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *domain.Course) error {
	course.ID = r.nextID
	r.nextID++
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *domain.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id uint) error {
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id uint) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *course
	return &cp, nil
}

func (r *fakeCourseRepo) byApproval(approved bool) []domain.CourseWithEducator {
	var rows []domain.CourseWithEducator
	for _, c := range r.courses {
		if c.IsApproved == approved {
			rows = append(rows, domain.CourseWithEducator{Course: *c})
		}
	}
	return rows
}

func (r *fakeCourseRepo) GetApproved(_ context.Context) ([]domain.CourseWithEducator, error) {
	return r.byApproval(true), nil
}

func (r *fakeCourseRepo) GetPending(_ context.Context) ([]domain.CourseWithEducator, error) {
	return r.byApproval(false), nil
}

func (r *fakeCourseRepo) GetByEducatorID(_ context.Context, educatorID uint) ([]domain.Course, error) {
	var courses []domain.Course
	for _, c := range r.courses {
		if c.EducatorID == educatorID {
			courses = append(courses, *c)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) IncrementViews(_ context.Context, id uint) error {
	if c, ok := r.courses[id]; ok {
		c.Views++
	}
	return nil
}

func (r *fakeCourseRepo) IncrementEnrolled(_ context.Context, id uint) error {
	if c, ok := r.courses[id]; ok {
		c.EnrolledCount++
	}
	return nil
}

func (r *fakeCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

func (r *fakeCourseRepo) CountPending(_ context.Context) (int64, error) {
	return int64(len(r.byApproval(false))), nil
}

// ========== MODULE ==========

type fakeModuleRepo struct {
	modules map[string]*domain.Module
	nextID  int
}

func newFakeModuleRepo() *fakeModuleRepo {
	return &fakeModuleRepo{modules: make(map[string]*domain.Module), nextID: 1}
}

func (r *fakeModuleRepo) Create(_ context.Context, module *domain.Module) error {
	if module.ID == "" {
		module.ID = fmt.Sprintf("m%d", r.nextID)
		r.nextID++
	}
	for _, m := range r.modules {
		if m.CourseID == module.CourseID && m.Order == module.Order {
			return domain.ErrConflict
		}
	}
	cp := *module
	r.modules[module.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) GetByID(_ context.Context, id string) (*domain.Module, error) {
	module, ok := r.modules[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *module
	return &cp, nil
}

func (r *fakeModuleRepo) GetByCourseID(_ context.Context, courseID uint) ([]domain.Module, error) {
	var modules []domain.Module
	for _, m := range r.modules {
		if m.CourseID == courseID {
			modules = append(modules, *m)
		}
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })
	return modules, nil
}

// orderHeld enforces the unique (course_id, order) index on every write
// path, exactly like the real store.
func (r *fakeModuleRepo) orderHeld(courseID uint, order int, exceptID string) bool {
	for id, m := range r.modules {
		if id != exceptID && m.CourseID == courseID && m.Order == order {
			return true
		}
	}
	return false
}

func (r *fakeModuleRepo) Update(_ context.Context, module *domain.Module) error {
	if _, ok := r.modules[module.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.orderHeld(module.CourseID, module.Order, module.ID) {
		return domain.ErrConflict
	}
	cp := *module
	r.modules[module.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) UpdateOrder(_ context.Context, id string, order int) error {
	module, ok := r.modules[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.orderHeld(module.CourseID, order, id) {
		return domain.ErrConflict
	}
	module.Order = order
	return nil
}

func (r *fakeModuleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.modules[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.modules, id)
	return nil
}

func (r *fakeModuleRepo) DeleteByCourseID(_ context.Context, courseID uint) error {
	for id, m := range r.modules {
		if m.CourseID == courseID {
			delete(r.modules, id)
		}
	}
	return nil
}

// ========== VIDEO ==========

type fakeVideoRepo struct {
	videos map[string]*domain.Video
	nextID int
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[string]*domain.Video), nextID: 1}
}

func (r *fakeVideoRepo) Create(_ context.Context, video *domain.Video) error {
	if video.ID == "" {
		video.ID = fmt.Sprintf("v%d", r.nextID)
		r.nextID++
	}
	for _, v := range r.videos {
		if v.ModuleID == video.ModuleID && v.Order == video.Order {
			return domain.ErrConflict
		}
	}
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id string) (*domain.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *video
	return &cp, nil
}

func (r *fakeVideoRepo) GetByModuleID(_ context.Context, moduleID string) ([]domain.Video, error) {
	var videos []domain.Video
	for _, v := range r.videos {
		if v.ModuleID == moduleID {
			videos = append(videos, *v)
		}
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].Order < videos[j].Order })
	return videos, nil
}

func (r *fakeVideoRepo) GetByModuleIDs(_ context.Context, moduleIDs []string) ([]domain.Video, error) {
	wanted := make(map[string]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		wanted[id] = true
	}
	var videos []domain.Video
	for _, v := range r.videos {
		if wanted[v.ModuleID] {
			videos = append(videos, *v)
		}
	}
	return videos, nil
}

// orderHeld enforces the unique (module_id, order) index on every write
// path, exactly like the real store.
func (r *fakeVideoRepo) orderHeld(moduleID string, order int, exceptID string) bool {
	for id, v := range r.videos {
		if id != exceptID && v.ModuleID == moduleID && v.Order == order {
			return true
		}
	}
	return false
}

func (r *fakeVideoRepo) Update(_ context.Context, video *domain.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.orderHeld(video.ModuleID, video.Order, video.ID) {
		return domain.ErrConflict
	}
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) UpdateOrder(_ context.Context, id string, order int) error {
	video, ok := r.videos[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.orderHeld(video.ModuleID, order, id) {
		return domain.ErrConflict
	}
	video.Order = order
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.videos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) DeleteByModuleID(_ context.Context, moduleID string) error {
	for id, v := range r.videos {
		if v.ModuleID == moduleID {
			delete(r.videos, id)
		}
	}
	return nil
}

// ========== ENROLLMENT ==========

type fakeEnrollmentRepo struct {
	enrollments map[uint]*domain.Enrollment
	watched     map[uint][]domain.WatchedVideo
	nextID      uint
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		enrollments: make(map[uint]*domain.Enrollment),
		watched:     make(map[uint][]domain.WatchedVideo),
		nextID:      1,
	}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *domain.Enrollment) error {
	for _, e := range r.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return domain.ErrConflict
		}
	}
	enrollment.ID = r.nextID
	r.nextID++
	cp := *enrollment
	r.enrollments[enrollment.ID] = &cp
	return nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id uint) (*domain.Enrollment, error) {
	enrollment, ok := r.enrollments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *enrollment
	cp.WatchedVideos = append([]domain.WatchedVideo(nil), r.watched[id]...)
	return &cp, nil
}

func (r *fakeEnrollmentRepo) GetByStudentAndCourse(_ context.Context, studentID, courseID uint) (*domain.Enrollment, error) {
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) GetByStudentID(_ context.Context, studentID uint) ([]domain.EnrollmentWithCourse, error) {
	var rows []domain.EnrollmentWithCourse
	for _, e := range r.enrollments {
		if e.StudentID == studentID {
			rows = append(rows, domain.EnrollmentWithCourse{Enrollment: *e})
		}
	}
	return rows, nil
}

func (r *fakeEnrollmentRepo) Update(_ context.Context, enrollment *domain.Enrollment) error {
	stored, ok := r.enrollments[enrollment.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Progress = enrollment.Progress
	stored.Completed = enrollment.Completed
	stored.LastAccessed = enrollment.LastAccessed
	return nil
}

func (r *fakeEnrollmentRepo) AddWatched(_ context.Context, watched *domain.WatchedVideo) error {
	for _, w := range r.watched[watched.EnrollmentID] {
		if w.VideoID == watched.VideoID {
			return domain.ErrConflict
		}
	}
	r.watched[watched.EnrollmentID] = append(r.watched[watched.EnrollmentID], *watched)
	return nil
}

func (r *fakeEnrollmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.enrollments)), nil
}

// ========== CART ==========

type fakeCartRepo struct {
	carts   map[uint]*domain.Cart
	courses *fakeCourseRepo
	nextID  uint
}

func newFakeCartRepo(courses *fakeCourseRepo) *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*domain.Cart), courses: courses, nextID: 1}
}

func (r *fakeCartRepo) Create(_ context.Context, cart *domain.Cart) error {
	for _, c := range r.carts {
		if c.StudentID == cart.StudentID {
			return domain.ErrConflict
		}
	}
	cart.ID = r.nextID
	r.nextID++
	cp := *cart
	r.carts[cart.ID] = &cp
	return nil
}

func (r *fakeCartRepo) GetByStudentID(_ context.Context, studentID uint) (*domain.Cart, error) {
	for _, c := range r.carts {
		if c.StudentID == studentID {
			cp := *c
			cp.Items = make([]domain.CartItem, len(c.Items))
			for i, item := range c.Items {
				cp.Items[i] = item
				if course, ok := r.courses.courses[item.CourseID]; ok {
					cp.Items[i].Course = *course
				}
			}
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCartRepo) AddItem(_ context.Context, item *domain.CartItem) error {
	cart, ok := r.carts[item.CartID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, existing := range cart.Items {
		if existing.CourseID == item.CourseID {
			return domain.ErrConflict
		}
	}
	cart.Items = append(cart.Items, *item)
	return nil
}

func (r *fakeCartRepo) RemoveItem(_ context.Context, cartID, courseID uint) error {
	cart, ok := r.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, item := range cart.Items {
		if item.CourseID == courseID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeCartRepo) ClearItems(_ context.Context, cartID uint) error {
	if cart, ok := r.carts[cartID]; ok {
		cart.Items = nil
	}
	return nil
}
