package models

import "time"

// Feedback is a learner's rating of a course, unique per (user, course).
// Rating is checked to the 1-5 range by the check_rating_range constraint.
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Comment   *string   `json:"comment,omitempty" db:"comment"` // Nullable
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
