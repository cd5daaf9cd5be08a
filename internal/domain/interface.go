package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByRole(ctx context.Context, role Role) ([]User, error)
	Update(ctx context.Context, user *User) error
	CountByRole(ctx context.Context, role Role) (int64, error)
	CountPendingByRole(ctx context.Context, role Role) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Course, error)
	GetApproved(ctx context.Context) ([]CourseWithEducator, error)
	GetPending(ctx context.Context) ([]CourseWithEducator, error)
	GetByEducatorID(ctx context.Context, educatorID uint) ([]Course, error)
	IncrementViews(ctx context.Context, id uint) error
	IncrementEnrolled(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	GetByID(ctx context.Context, id uint) (*Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*Enrollment, error)
	GetByStudentID(ctx context.Context, studentID uint) ([]EnrollmentWithCourse, error)
	Update(ctx context.Context, enrollment *Enrollment) error
	AddWatched(ctx context.Context, watched *WatchedVideo) error
	Count(ctx context.Context) (int64, error)
}

type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	GetByStudentID(ctx context.Context, studentID uint) (*Cart, error)
	AddItem(ctx context.Context, item *CartItem) error
	RemoveItem(ctx context.Context, cartID, courseID uint) error
	ClearItems(ctx context.Context, cartID uint) error
}

type ModuleRepository interface { // MongoDB
	Create(ctx context.Context, module *Module) error
	GetByID(ctx context.Context, id string) (*Module, error)
	GetByCourseID(ctx context.Context, courseID uint) ([]Module, error) // sorted by order asc
	Update(ctx context.Context, module *Module) error
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
	DeleteByCourseID(ctx context.Context, courseID uint) error
}

type VideoRepository interface { // MongoDB
	Create(ctx context.Context, video *Video) error
	GetByID(ctx context.Context, id string) (*Video, error)
	GetByModuleID(ctx context.Context, moduleID string) ([]Video, error) // sorted by order asc
	GetByModuleIDs(ctx context.Context, moduleIDs []string) ([]Video, error)
	Update(ctx context.Context, video *Video) error
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
	DeleteByModuleID(ctx context.Context, moduleID string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string, role Role) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, caller Caller, name, password, profileImage string) (*User, error)
}

type UserUsecase interface {
	GetAllUsers(ctx context.Context, caller Caller) ([]User, error)
	GetEducators(ctx context.Context, caller Caller) ([]User, error)
	ApproveEducator(ctx context.Context, caller Caller, userID uint) (*User, error)
	CreateEducator(ctx context.Context, caller Caller, name, email, password string) (*User, error)
}

// CourseUpdate carries a partial course edit. A nil Price leaves the price
// alone so a course can still be made free explicitly.
type CourseUpdate struct {
	Title       string
	Description string
	Category    string
	Image       string
	Price       *float64
}

type CourseUsecase interface {
	GetApprovedCourses(ctx context.Context) ([]CourseWithEducator, error)
	GetCourseByID(ctx context.Context, id uint) (*Course, error)
	GetCourseContent(ctx context.Context, id uint) (*CourseContent, error)
	CreateCourse(ctx context.Context, caller Caller, course *Course) error
	UpdateCourse(ctx context.Context, caller Caller, courseID uint, upd CourseUpdate) (*Course, error)
	DeleteCourse(ctx context.Context, caller Caller, id uint) error
	GetEducatorCourses(ctx context.Context, caller Caller) ([]Course, error)
	GetPendingCourses(ctx context.Context, caller Caller) ([]CourseWithEducator, error)
	ApproveCourse(ctx context.Context, caller Caller, id uint) (*Course, error)
}

// ModuleUpdate carries a partial module edit. A nil Order leaves the
// position alone; a non-nil Order repositions the module within its course.
type ModuleUpdate struct {
	Title       string
	Description string
	Order       *int
}

// VideoUpdate carries a partial video edit, same contract as ModuleUpdate.
type VideoUpdate struct {
	Title    string
	VideoURL string
	Duration *int
	Order    *int
}

type ContentUsecase interface {
	GetModulesByCourse(ctx context.Context, courseID uint) ([]Module, error)
	AddModule(ctx context.Context, caller Caller, module *Module) error
	UpdateModule(ctx context.Context, caller Caller, moduleID string, upd ModuleUpdate) (*Module, error)
	DeleteModule(ctx context.Context, caller Caller, moduleID string) error

	GetVideosByModule(ctx context.Context, moduleID string) ([]Video, error)
	AddVideo(ctx context.Context, caller Caller, video *Video) error
	UpdateVideo(ctx context.Context, caller Caller, videoID string, upd VideoUpdate) (*Video, error)
	DeleteVideo(ctx context.Context, caller Caller, videoID string) error
}

// ProgressUpdate is the payload of a progress event. VideoID marks a video
// watched; Completed explicitly overrides the completion flag.
type ProgressUpdate struct {
	VideoID   string
	Completed *bool
}

type EnrollmentUsecase interface {
	GetStudentEnrollments(ctx context.Context, caller Caller) ([]EnrollmentWithCourse, error)
	Enroll(ctx context.Context, caller Caller, courseID uint) (*Enrollment, error)
	RecordProgress(ctx context.Context, caller Caller, enrollmentID uint, upd ProgressUpdate) (*Enrollment, error)
}

type CartUsecase interface {
	GetCart(ctx context.Context, caller Caller) (*Cart, error)
	AddToCart(ctx context.Context, caller Caller, courseID uint) (*Cart, error)
	RemoveFromCart(ctx context.Context, caller Caller, courseID uint) (*Cart, error)
	Checkout(ctx context.Context, caller Caller) ([]Enrollment, error)
}

type DashboardUsecase interface {
	GetAdminDashboard(ctx context.Context, caller Caller) (*AdminDashboardData, error)
}
