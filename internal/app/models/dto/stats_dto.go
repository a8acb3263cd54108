package dto

// Report row records returned by the aggregation queries. Percentage fields
// that divide by a possibly-zero denominator are computed null-safe in SQL
// and always come back as plain zeros.

// PopularCourseRow is one course passing the popularity thresholds
// (at least five enrollments and a mean rating above 3.5).
type PopularCourseRow struct {
	CourseID        int64   `json:"courseId"`
	CourseTitle     string  `json:"courseTitle"`
	EnrollmentCount int64   `json:"enrollmentCount"`
	AverageRating   float64 `json:"averageRating"`
}

// CourseStatsRow is the per-course statistics record.
type CourseStatsRow struct {
	CourseID               int64   `json:"courseId"`
	CourseTitle            string  `json:"courseTitle"`
	ModuleCount            int64   `json:"moduleCount"`
	StudentCount           int64   `json:"studentCount"`
	EnrollmentPercentage   float64 `json:"enrollmentPercentage"`
	AverageRating          float64 `json:"averageRating"`
	SatisfactionPercentage float64 `json:"satisfactionPercentage"`
}

// CourseModuleStatsRow aggregates module and assessment facts per course
// created within the report window.
type CourseModuleStatsRow struct {
	CourseID        int64   `json:"courseId"`
	CourseTitle     string  `json:"courseTitle"`
	ModuleCount     int64   `json:"moduleCount"`
	AssessmentCount int64   `json:"assessmentCount"`
	AverageGrade    float64 `json:"averageGrade"`
}

// UserPerformanceRow is the per-student performance record. Category is
// derived from the mean grade by threshold.
type UserPerformanceRow struct {
	UserID                int64   `json:"userId"`
	UserName              string  `json:"userName"`
	CompletedAssessments  int64   `json:"completedAssessments"`
	AverageGrade          float64 `json:"averageGrade"`
	PerformancePercentage float64 `json:"performancePercentage"`
	PerformanceCategory   string  `json:"performanceCategory"`
}

// UserActivityRow is the per-student activity record.
type UserActivityRow struct {
	UserID               int64   `json:"userId"`
	UserName             string  `json:"userName"`
	EnrolledCourses      int64   `json:"enrolledCourses"`
	CompletedAssessments int64   `json:"completedAssessments"`
	CompletionRate       float64 `json:"completionRate"`
	AverageProgress      float64 `json:"averageProgress"`
	AverageFeedback      float64 `json:"averageFeedback"`
}

// NotificationStatsRow is the per-user notification delivery record,
// restricted to users with at least one notification.
type NotificationStatsRow struct {
	UserID              int64   `json:"userId"`
	UserName            string  `json:"userName"`
	UserEmail           string  `json:"userEmail"`
	TotalNotifications  int64   `json:"totalNotifications"`
	UnreadNotifications int64   `json:"unreadNotifications"`
	ReadPercentage      float64 `json:"readPercentage"`
}
