package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all store implementations over one connection pool.
type Repositories struct {
	Users         UserStore
	Courses       CourseStore
	Modules       ModuleStore
	Enrollments   EnrollmentStore
	Assessments   AssessmentStore
	Feedbacks     FeedbackStore
	Attachments   AttachmentStore
	Notifications NotificationStore
	Stats         StatsStore
}

// NewRepositories creates all repositories backed by the given pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Courses:       NewCourseRepository(db),
		Modules:       NewModuleRepository(db),
		Enrollments:   NewEnrollmentRepository(db),
		Assessments:   NewAssessmentRepository(db),
		Feedbacks:     NewFeedbackRepository(db),
		Attachments:   NewAttachmentRepository(db),
		Notifications: NewNotificationRepository(db),
		Stats:         NewStatsRepository(db),
	}
}
