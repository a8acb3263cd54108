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

// AssessmentRepository handles database operations for assessments
type AssessmentRepository struct {
	db Querier
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db Querier) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *AssessmentRepository) WithTx(tx pgx.Tx) AssessmentStore {
	return &AssessmentRepository{db: tx}
}

// GetOrCreate returns the assessment for the (user, module) pair, inserting
// an ungraded row when none exists yet. When several rows exist for the pair
// the oldest one is the canonical record.
func (r *AssessmentRepository) GetOrCreate(ctx context.Context, userID, moduleID int64) (*models.Assessment, error) {
	query := `
		SELECT id, module_id, user_id, grade, assessment_date
		FROM assessments
		WHERE user_id = $1 AND module_id = $2
		ORDER BY id
		LIMIT 1
	`

	var assessment models.Assessment
	err := r.db.QueryRow(ctx, query, userID, moduleID).Scan(
		&assessment.ID,
		&assessment.ModuleID,
		&assessment.UserID,
		&assessment.Grade,
		&assessment.AssessmentDate,
	)
	if err == nil {
		return &assessment, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error retrieving assessment: %w", err)
	}

	insert := `
		INSERT INTO assessments (user_id, module_id, grade)
		VALUES ($1, $2, 0)
		RETURNING id, module_id, user_id, grade, assessment_date
	`
	err = r.db.QueryRow(ctx, insert, userID, moduleID).Scan(
		&assessment.ID,
		&assessment.ModuleID,
		&assessment.UserID,
		&assessment.Grade,
		&assessment.AssessmentDate,
	)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error creating assessment: %w", err)
	}

	return &assessment, nil
}

// UpdateGrade writes the grade and stamps the assessment date
func (r *AssessmentRepository) UpdateGrade(ctx context.Context, id int64, grade float64, at time.Time) error {
	query := `
		UPDATE assessments
		SET grade = $2, assessment_date = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, grade, at)
	if err != nil {
		return fmt.Errorf("error updating assessment grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListByUserAndCourse retrieves the user's assessments across a course
func (r *AssessmentRepository) ListByUserAndCourse(ctx context.Context, userID, courseID int64) ([]*models.Assessment, error) {
	query := `
		SELECT a.id, a.module_id, a.user_id, a.grade, a.assessment_date
		FROM assessments a
		JOIN modules m ON m.id = a.module_id
		WHERE a.user_id = $1 AND m.course_id = $2
		ORDER BY a.module_id, a.id
	`

	rows, err := r.db.Query(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing assessments: %w", err)
	}
	defer rows.Close()

	assessments := []*models.Assessment{}
	for rows.Next() {
		var assessment models.Assessment
		if err := rows.Scan(
			&assessment.ID,
			&assessment.ModuleID,
			&assessment.UserID,
			&assessment.Grade,
			&assessment.AssessmentDate,
		); err != nil {
			return nil, fmt.Errorf("error scanning assessment: %w", err)
		}
		assessments = append(assessments, &assessment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}

	return assessments, nil
}
