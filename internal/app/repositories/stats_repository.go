package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/zhanel/coursehub/internal/app/models/dto"
)

// StatsRepository runs the read-only aggregation reports. All percentage
// expressions guard the denominator with NULLIF and collapse NULL back to
// zero with COALESCE, so an empty platform yields empty or zeroed rows
// instead of a division error.
type StatsRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db Querier) *StatsRepository {
	return &StatsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StatsRepository) popularCoursesSQL() (string, []interface{}, error) {
	return r.sb.
		Select(
			"c.id",
			"c.title",
			"COUNT(DISTINCT e.id) AS enrollment_count",
			"COALESCE(AVG(f.rating), 0) AS average_rating",
		).
		From("courses c").
		LeftJoin("enrollments e ON e.course_id = c.id").
		LeftJoin("feedbacks f ON f.course_id = c.id").
		GroupBy("c.id", "c.title").
		Having("COUNT(DISTINCT e.id) >= 5 AND AVG(f.rating) > 3.5").
		OrderBy("enrollment_count DESC", "average_rating DESC").
		ToSql()
}

// PopularCourses returns courses with at least five enrollments and a mean
// rating above 3.5, most enrolled first.
func (r *StatsRepository) PopularCourses(ctx context.Context) ([]dto.PopularCourseRow, error) {
	query, args, err := r.popularCoursesSQL()
	if err != nil {
		return nil, fmt.Errorf("error building popular courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying popular courses: %w", err)
	}
	defer rows.Close()

	results := []dto.PopularCourseRow{}
	for rows.Next() {
		var row dto.PopularCourseRow
		if err := rows.Scan(&row.CourseID, &row.CourseTitle, &row.EnrollmentCount, &row.AverageRating); err != nil {
			return nil, fmt.Errorf("error scanning popular course row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CourseStatistics returns per-course counts, the share of the student body
// enrolled, and rating-derived satisfaction.
func (r *StatsRepository) CourseStatistics(ctx context.Context) ([]dto.CourseStatsRow, error) {
	// Correlated subselects rather than joins: joining modules, enrollments
	// and feedbacks together multiplies rows and skews every aggregate.
	query := `
		SELECT
			c.id,
			c.title,
			(SELECT COUNT(*) FROM modules m WHERE m.course_id = c.id) AS module_count,
			(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS student_count,
			COALESCE(
				(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) * 100.0
					/ NULLIF((SELECT COUNT(*) FROM users u WHERE u.role = 'student'), 0),
				0) AS enrollment_percentage,
			COALESCE((SELECT AVG(f.rating) FROM feedbacks f WHERE f.course_id = c.id), 0) AS average_rating,
			COALESCE((SELECT AVG(f.rating) FROM feedbacks f WHERE f.course_id = c.id) / 5.0 * 100.0, 0) AS satisfaction_percentage
		FROM courses c
		ORDER BY student_count DESC, c.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying course statistics: %w", err)
	}
	defer rows.Close()

	results := []dto.CourseStatsRow{}
	for rows.Next() {
		var row dto.CourseStatsRow
		if err := rows.Scan(
			&row.CourseID,
			&row.CourseTitle,
			&row.ModuleCount,
			&row.StudentCount,
			&row.EnrollmentPercentage,
			&row.AverageRating,
			&row.SatisfactionPercentage,
		); err != nil {
			return nil, fmt.Errorf("error scanning course statistics row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *StatsRepository) courseModuleStatisticsSQL(since time.Time) (string, []interface{}, error) {
	return r.sb.
		Select(
			"c.id",
			"c.title",
			"(SELECT COUNT(*) FROM modules m WHERE m.course_id = c.id) AS module_count",
			`(SELECT COUNT(*) FROM assessments a
				JOIN modules m ON m.id = a.module_id
				WHERE m.course_id = c.id AND a.grade > 0) AS assessment_count`,
			`COALESCE((SELECT AVG(a.grade) FROM assessments a
				JOIN modules m ON m.id = a.module_id
				WHERE m.course_id = c.id AND a.grade > 0), 0) AS average_grade`,
		).
		From("courses c").
		Where(squirrel.GtOrEq{"c.created_at": since}).
		OrderBy("c.created_at DESC").
		ToSql()
}

// CourseModuleStatistics aggregates module and assessment facts for courses
// created since the given cut-off.
func (r *StatsRepository) CourseModuleStatistics(ctx context.Context, since time.Time) ([]dto.CourseModuleStatsRow, error) {
	query, args, err := r.courseModuleStatisticsSQL(since)
	if err != nil {
		return nil, fmt.Errorf("error building course module statistics query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying course module statistics: %w", err)
	}
	defer rows.Close()

	results := []dto.CourseModuleStatsRow{}
	for rows.Next() {
		var row dto.CourseModuleStatsRow
		if err := rows.Scan(
			&row.CourseID,
			&row.CourseTitle,
			&row.ModuleCount,
			&row.AssessmentCount,
			&row.AverageGrade,
		); err != nil {
			return nil, fmt.Errorf("error scanning course module statistics row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// UserPerformance returns per-student grade aggregates over graded
// assessments. The performance category is derived in the service layer.
func (r *StatsRepository) UserPerformance(ctx context.Context) ([]dto.UserPerformanceRow, error) {
	query := `
		SELECT
			u.id,
			u.name,
			COUNT(a.id) FILTER (WHERE a.grade > 0) AS completed_assessments,
			COALESCE(AVG(a.grade) FILTER (WHERE a.grade > 0), 0) AS average_grade,
			COALESCE(AVG(a.grade) FILTER (WHERE a.grade > 0) / 5.0 * 100.0, 0) AS performance_percentage
		FROM users u
		LEFT JOIN assessments a ON a.user_id = u.id
		WHERE u.role = 'student'
		GROUP BY u.id, u.name
		ORDER BY average_grade DESC, u.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying user performance: %w", err)
	}
	defer rows.Close()

	results := []dto.UserPerformanceRow{}
	for rows.Next() {
		var row dto.UserPerformanceRow
		if err := rows.Scan(
			&row.UserID,
			&row.UserName,
			&row.CompletedAssessments,
			&row.AverageGrade,
			&row.PerformancePercentage,
		); err != nil {
			return nil, fmt.Errorf("error scanning user performance row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// UserActivity returns per-student enrollment and completion aggregates.
func (r *StatsRepository) UserActivity(ctx context.Context) ([]dto.UserActivityRow, error) {
	query := `
		SELECT
			u.id,
			u.name,
			(SELECT COUNT(*) FROM enrollments e WHERE e.user_id = u.id) AS enrolled_courses,
			(SELECT COUNT(DISTINCT a.module_id) FROM assessments a WHERE a.user_id = u.id AND a.grade > 0) AS completed_assessments,
			COALESCE(
				(SELECT COUNT(DISTINCT a.module_id) FROM assessments a WHERE a.user_id = u.id AND a.grade > 0) * 100.0
					/ NULLIF((SELECT COUNT(*)
						FROM modules m
						JOIN enrollments e ON e.course_id = m.course_id
						WHERE e.user_id = u.id), 0),
				0) AS completion_rate,
			COALESCE((SELECT AVG(e.progress) FROM enrollments e WHERE e.user_id = u.id), 0) AS average_progress,
			COALESCE((SELECT AVG(f.rating) FROM feedbacks f WHERE f.user_id = u.id), 0) AS average_feedback
		FROM users u
		WHERE u.role = 'student'
		ORDER BY enrolled_courses DESC, u.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying user activity: %w", err)
	}
	defer rows.Close()

	results := []dto.UserActivityRow{}
	for rows.Next() {
		var row dto.UserActivityRow
		if err := rows.Scan(
			&row.UserID,
			&row.UserName,
			&row.EnrolledCourses,
			&row.CompletedAssessments,
			&row.CompletionRate,
			&row.AverageProgress,
			&row.AverageFeedback,
		); err != nil {
			return nil, fmt.Errorf("error scanning user activity row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// NotificationStatistics returns per-user delivery aggregates, restricted
// to users that have received at least one notification.
func (r *StatsRepository) NotificationStatistics(ctx context.Context) ([]dto.NotificationStatsRow, error) {
	query := `
		SELECT
			u.id,
			u.name,
			u.email,
			COUNT(n.id) AS total_notifications,
			COUNT(n.id) FILTER (WHERE NOT n.is_read) AS unread_notifications,
			COALESCE(COUNT(n.id) FILTER (WHERE n.is_read) * 100.0 / NULLIF(COUNT(n.id), 0), 0) AS read_percentage
		FROM users u
		LEFT JOIN notifications n ON n.user_id = u.id
		GROUP BY u.id, u.name, u.email
		HAVING COUNT(n.id) > 0
		ORDER BY total_notifications DESC, u.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying notification statistics: %w", err)
	}
	defer rows.Close()

	results := []dto.NotificationStatsRow{}
	for rows.Next() {
		var row dto.NotificationStatsRow
		if err := rows.Scan(
			&row.UserID,
			&row.UserName,
			&row.UserEmail,
			&row.TotalNotifications,
			&row.UnreadNotifications,
			&row.ReadPercentage,
		); err != nil {
			return nil, fmt.Errorf("error scanning notification statistics row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
