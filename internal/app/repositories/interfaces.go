package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
)

// Store interfaces consumed by the service layer. Stores whose operations
// participate in the grade-write transaction expose WithTx, returning a copy
// bound to the given transaction.

// UserStore handles user persistence.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// CourseStore handles course persistence.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ModuleStore handles module persistence.
type ModuleStore interface {
	WithTx(tx pgx.Tx) ModuleStore
	Create(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, id int64) (*models.Module, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Module, error)
	// ResolveCourseID returns the course owning the module.
	ResolveCourseID(ctx context.Context, moduleID int64) (int64, error)
}

// EnrollmentStore handles enrollment persistence and the progress counts.
type EnrollmentStore interface {
	WithTx(tx pgx.Tx) EnrollmentStore
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	// GetByUserAndCourseForUpdate locks the enrollment row for the duration
	// of the surrounding transaction.
	GetByUserAndCourseForUpdate(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Enrollment, error)
	UpdateProgress(ctx context.Context, id int64, progress float64, lastAccessed time.Time) error
	Delete(ctx context.Context, userID, courseID int64) error
	// CountProgress returns the distinct graded module count and the total
	// module count for the (user, course) pair.
	CountProgress(ctx context.Context, userID, courseID int64) (completed, total int64, err error)
}

// AssessmentStore handles assessment persistence.
type AssessmentStore interface {
	WithTx(tx pgx.Tx) AssessmentStore
	// GetOrCreate returns the assessment for the (user, module) pair,
	// creating an ungraded row when none exists. This is the only way
	// assessments come into existence.
	GetOrCreate(ctx context.Context, userID, moduleID int64) (*models.Assessment, error)
	UpdateGrade(ctx context.Context, id int64, grade float64, at time.Time) error
	ListByUserAndCourse(ctx context.Context, userID, courseID int64) ([]*models.Assessment, error)
}

// FeedbackStore handles course feedback persistence.
type FeedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Feedback, error)
	Delete(ctx context.Context, id int64) error
}

// AttachmentStore handles attachment metadata persistence.
type AttachmentStore interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id int64) (*models.Attachment, error)
	ListByModule(ctx context.Context, moduleID int64) ([]*models.Attachment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Attachment, error)
	Delete(ctx context.Context, id int64) error
}

// NotificationStore handles notification persistence.
type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// StatsStore runs the read-only aggregation reports.
type StatsStore interface {
	PopularCourses(ctx context.Context) ([]dto.PopularCourseRow, error)
	CourseStatistics(ctx context.Context) ([]dto.CourseStatsRow, error)
	CourseModuleStatistics(ctx context.Context, since time.Time) ([]dto.CourseModuleStatsRow, error)
	UserPerformance(ctx context.Context) ([]dto.UserPerformanceRow, error)
	UserActivity(ctx context.Context) ([]dto.UserActivityRow, error)
	NotificationStatistics(ctx context.Context) ([]dto.NotificationStatsRow, error)
}
