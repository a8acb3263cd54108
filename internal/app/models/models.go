package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// PerformanceCategory is the label derived from a student's mean grade.
type PerformanceCategory string

const (
	PerformanceExcellent      PerformanceCategory = "Excellent"
	PerformanceGood           PerformanceCategory = "Good"
	PerformanceSatisfactory   PerformanceCategory = "Satisfactory"
	PerformanceUnsatisfactory PerformanceCategory = "Unsatisfactory"
)

// Grade and rating bounds. Assessments use a 0-5 scale where 0 marks an
// ungraded module; feedback ratings use a checked 1-5 scale. The two scales
// stay separate because the satisfaction aggregates divide by the 5.0 maximum.
const (
	GradeMin  = 0.0
	GradeMax  = 5.0
	RatingMin = 1
	RatingMax = 5
)
