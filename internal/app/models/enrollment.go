package models

import "time"

// Enrollment binds one learner to one course and carries the derived
// progress percentage. At most one row exists per (user, course) pair,
// enforced by the uq_user_course constraint.
type Enrollment struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	Progress       float64   `json:"progress" db:"progress"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
	LastAccessed   time.Time `json:"lastAccessed" db:"last_accessed"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// Assessment is a per-module grade record for one learner. Grade 0 is the
// ungraded sentinel, not an earned score. Rows are created lazily through
// get-or-create and mutated thereafter; there is no structural uniqueness
// on (user, module).
type Assessment struct {
	ID             int64     `json:"id" db:"id"`
	ModuleID       int64     `json:"moduleId" db:"module_id"`
	UserID         int64     `json:"userId" db:"user_id"`
	Grade          float64   `json:"grade" db:"grade"`
	AssessmentDate time.Time `json:"assessmentDate" db:"assessment_date"`
}

// Completed reports whether the assessment counts toward progress.
func (a *Assessment) Completed() bool {
	return a.Grade > 0
}
