package dto

// CreateCourseRequest is the payload for course creation.
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
}

// CreateModuleRequest is the payload for adding a module to a course.
type CreateModuleRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required"`
}

// CreateFeedbackRequest is the payload for submitting course feedback.
type CreateFeedbackRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment,omitempty"`
}

// SubmitGradeRequest is the payload for recording a grade on a module.
// UserID is optional; admins may grade on behalf of a learner.
type SubmitGradeRequest struct {
	Grade  float64 `json:"grade"`
	UserID *int64  `json:"userId,omitempty"`
}

// SubmitGradeResponse reports the written grade and the recomputed progress.
type SubmitGradeResponse struct {
	AssessmentID int64   `json:"assessmentId"`
	ModuleID     int64   `json:"moduleId"`
	UserID       int64   `json:"userId"`
	Grade        float64 `json:"grade"`
	Progress     float64 `json:"progress"`
}

// ProgressResponse is the persisted progress view for one enrollment.
type ProgressResponse struct {
	CourseID     int64   `json:"courseId"`
	UserID       int64   `json:"userId"`
	Progress     float64 `json:"progress"`
	LastAccessed string  `json:"lastAccessed"`
}

// CreateNotificationRequest is the payload for admin-created notifications.
type CreateNotificationRequest struct {
	UserID  int64  `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

// UnreadCountResponse carries the number of unread notifications.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}
