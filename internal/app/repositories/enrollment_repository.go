package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
	"github.com/zhanel/coursehub/internal/pkg/dberrors"
)

// Constraint names on the enrollments table.
const (
	uqUserCourse       = "uq_user_course"
	fkEnrollmentUser   = "fk_enrollment_user"
	fkEnrollmentCourse = "fk_enrollment_course"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db Querier
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db Querier) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *EnrollmentRepository) WithTx(tx pgx.Tx) EnrollmentStore {
	return &EnrollmentRepository{db: tx}
}

// Create inserts a new enrollment. Violating the one-enrollment-per-pair
// constraint is translated to apperrors.ErrAlreadyEnrolled.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, course_id, progress)
		VALUES ($1, $2, $3)
		RETURNING id, enrollment_date, last_accessed
	`

	err := r.db.QueryRow(ctx, query, enrollment.UserID, enrollment.CourseID, enrollment.Progress).
		Scan(&enrollment.ID, &enrollment.EnrollmentDate, &enrollment.LastAccessed)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, uqUserCourse) {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyConstraintError(err, fkEnrollmentUser) {
			return apperrors.ErrUserNotFound
		}
		if dberrors.IsForeignKeyConstraintError(err, fkEnrollmentCourse) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByUserAndCourse retrieves the enrollment for a (user, course) pair
func (r *EnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, progress, enrollment_date, last_accessed
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2
	`
	return r.scanOne(r.db.QueryRow(ctx, query, userID, courseID))
}

// GetByUserAndCourseForUpdate retrieves the enrollment with a row lock held
// until the surrounding transaction ends. Callers must run inside a
// transaction; against the pool the lock is released immediately.
func (r *EnrollmentRepository) GetByUserAndCourseForUpdate(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, progress, enrollment_date, last_accessed
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2
		FOR UPDATE
	`
	return r.scanOne(r.db.QueryRow(ctx, query, userID, courseID))
}

func (r *EnrollmentRepository) scanOne(row pgx.Row) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := row.Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.EnrollmentDate,
		&enrollment.LastAccessed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return &enrollment, nil
}

// ListByCourse retrieves all enrollments of a course
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, progress, enrollment_date, last_accessed
		FROM enrollments
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course enrollments: %w", err)
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// ListByUser retrieves all enrollments of a user together with the course
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, e.progress, e.enrollment_date, e.last_accessed,
		       c.id, c.title, c.description, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.enrollment_date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.Progress,
			&enrollment.EnrollmentDate,
			&enrollment.LastAccessed,
			&course.ID,
			&course.Title,
			&course.Description,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		enrollment.Course = &course
		enrollments = append(enrollments, &enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return enrollments, nil
}

func scanEnrollments(rows pgx.Rows) ([]*models.Enrollment, error) {
	enrollments := []*models.Enrollment{}
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.Progress,
			&enrollment.EnrollmentDate,
			&enrollment.LastAccessed,
		); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		enrollments = append(enrollments, &enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}
	return enrollments, nil
}

// UpdateProgress writes the recomputed progress percentage and refreshes
// the last access timestamp.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, id int64, progress float64, lastAccessed time.Time) error {
	query := `
		UPDATE enrollments
		SET progress = $2, last_accessed = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, progress, lastAccessed)
	if err != nil {
		return fmt.Errorf("error updating enrollment progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// Delete removes the enrollment for a (user, course) pair
func (r *EnrollmentRepository) Delete(ctx context.Context, userID, courseID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// CountProgress returns the number of distinct modules the user has a
// positive grade on and the total module count of the course. Grade 0 rows
// are ungraded placeholders and do not count as completed.
func (r *EnrollmentRepository) CountProgress(ctx context.Context, userID, courseID int64) (int64, int64, error) {
	query := `
		SELECT
			(SELECT COUNT(DISTINCT a.module_id)
			 FROM assessments a
			 JOIN modules m ON m.id = a.module_id
			 WHERE a.user_id = $1 AND m.course_id = $2 AND a.grade > 0),
			(SELECT COUNT(*) FROM modules m WHERE m.course_id = $2)
	`

	var completed, total int64
	if err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&completed, &total); err != nil {
		return 0, 0, fmt.Errorf("error counting progress: %w", err)
	}
	return completed, total, nil
}
