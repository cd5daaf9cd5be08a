package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleEducator Role = "educator"
	RoleAdmin    Role = "admin"
)

// Caller is the authenticated identity attached to every operation.
// Handlers build it from the verified token and pass it down explicitly;
// usecases never read ambient request state.
type Caller struct {
	ID       uint
	Role     Role
	Approved bool
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);default:'student'"`
	IsApproved   bool      `json:"is_approved" gorm:"default:false"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewUser builds a user with the creation rules applied up front: the
// password is hashed and students are the only role approved on sign-up.
// Educators stay unapproved until an admin reviews them.
func NewUser(name, email, plainPassword string, role Role) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 14)
	if err != nil {
		return nil, err
	}
	return &User{
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Role:       role,
		IsApproved: role == RoleStudent,
	}, nil
}

type Course struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"default:0"`
	Category      string    `json:"category" gorm:"not null"`
	Image         string    `json:"image"`
	EducatorID    uint      `json:"educator_id" gorm:"not null;index"`
	IsApproved    bool      `json:"is_approved" gorm:"default:false"`
	EnrolledCount int       `json:"enrolled_count" gorm:"default:0"`
	Rating        float64   `json:"rating" gorm:"default:0"`
	Views         int       `json:"views" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Educator User `json:"educator,omitempty" gorm:"foreignKey:EducatorID"`
}

// Enrollment ties a student to a course. Progress is derived from the
// watched set and is always kept in [0,100].
type Enrollment struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	StudentID    uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_student_course"`
	CourseID     uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_student_course"`
	Progress     int       `json:"progress" gorm:"default:0"`
	Completed    bool      `json:"completed" gorm:"default:false"`
	EnrolledAt   time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
	LastAccessed time.Time `json:"last_accessed"`

	// Relations
	Course        Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	WatchedVideos []WatchedVideo `json:"watched_videos,omitempty" gorm:"foreignKey:EnrollmentID"`
}

// HasWatched reports whether videoID is already in the watched set.
func (e *Enrollment) HasWatched(videoID string) bool {
	for _, w := range e.WatchedVideos {
		if w.VideoID == videoID {
			return true
		}
	}
	return false
}

// WatchedVideo is one element of an enrollment's watched set. The set only
// grows; rows are never removed except when the enrollment itself goes.
type WatchedVideo struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	EnrollmentID uint      `json:"-" gorm:"not null;uniqueIndex:idx_enrollment_video"`
	VideoID      string    `json:"video_id" gorm:"not null;uniqueIndex:idx_enrollment_video"` // MongoDB ObjectID hex
	CreatedAt    time.Time `json:"watched_at" gorm:"autoCreateTime"`
}

type Cart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Items []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// Contains reports whether courseID is already in the cart.
func (c *Cart) Contains(courseID uint) bool {
	for _, item := range c.Items {
		if item.CourseID == courseID {
			return true
		}
	}
	return false
}

type CartItem struct {
	ID       uint `json:"-" gorm:"primaryKey"`
	CartID   uint `json:"-" gorm:"not null;uniqueIndex:idx_cart_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_cart_course"`

	// Relations
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// ========== MONGODB MODELS ==========

// Module - ordered lecture group inside a course. Stored in MongoDB; a
// unique compound index on (course_id, order) keeps sibling orders dense.
type Module struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	CourseID    uint      `json:"course_id" bson:"course_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Order       int       `json:"order" bson:"order"` // 1..N within the course
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

func (m *Module) Position() int       { return m.Order }
func (m *Module) SetPosition(pos int) { m.Order = pos }

// Video - ordered item inside a module. Same dense-order contract as
// Module, scoped by (module_id, order).
type Video struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ModuleID  string    `json:"module_id" bson:"module_id"`
	Title     string    `json:"title" bson:"title"`
	VideoURL  string    `json:"video_url" bson:"video_url"`
	Order     int       `json:"order" bson:"order"`       // 1..N within the module
	Duration  int       `json:"duration" bson:"duration"` // seconds
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (v *Video) Position() int       { return v.Order }
func (v *Video) SetPosition(pos int) { v.Order = pos }

// ========== RESPONSE DTOs ==========

// CourseWithEducator - course joined with its educator's public fields.
// Replaces the implicit populate joins of the old API with an explicit view.
type CourseWithEducator struct {
	Course
	EducatorName  string `json:"educator_name"`
	EducatorImage string `json:"educator_image"`
}

// EnrollmentWithCourse - enrollment plus the course card shown on the
// student's learning page.
type EnrollmentWithCourse struct {
	Enrollment
	CourseTitle    string `json:"course_title"`
	CourseImage    string `json:"course_image"`
	CourseCategory string `json:"course_category"`
	EducatorName   string `json:"educator_name"`
}

// CourseContent - the full ordered tree under one course.
type CourseContent struct {
	Course  Course          `json:"course"`
	Modules []ModuleContent `json:"modules"`
}

type ModuleContent struct {
	Module
	Videos []Video `json:"videos"`
}

// AdminDashboardData - counters for the admin overview screen.
type AdminDashboardData struct {
	TotalUsers       int64 `json:"total_users"`
	TotalStudents    int64 `json:"total_students"`
	TotalEducators   int64 `json:"total_educators"`
	PendingEducators int64 `json:"pending_educators"`
	TotalCourses     int64 `json:"total_courses"`
	PendingCourses   int64 `json:"pending_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
}
