package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
	"github.com/zhanel/coursehub/internal/pkg/dberrors"
)

// Constraint names on the feedbacks table.
const (
	uqUserFeedback   = "uq_user_feedback"
	checkRatingRange = "check_rating_range"
)

// FeedbackRepository handles database operations for course feedback
type FeedbackRepository struct {
	db Querier
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db Querier) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts new feedback. A second submission for the same
// (user, course) pair is translated to apperrors.ErrDuplicateFeedback,
// and an out-of-range rating to apperrors.ErrInvalidRating.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedbacks (course_id, user_id, comment, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, feedback.CourseID, feedback.UserID, feedback.Comment, feedback.Rating).
		Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, uqUserFeedback) {
			return apperrors.ErrDuplicateFeedback
		}
		if dberrors.IsCheckViolation(err, checkRatingRange) {
			return apperrors.ErrInvalidRating
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating feedback: %w", err)
	}

	return nil
}

// GetByID retrieves feedback by ID
func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	query := `
		SELECT id, course_id, user_id, comment, rating, created_at
		FROM feedbacks
		WHERE id = $1
	`

	var feedback models.Feedback
	err := r.db.QueryRow(ctx, query, id).Scan(
		&feedback.ID,
		&feedback.CourseID,
		&feedback.UserID,
		&feedback.Comment,
		&feedback.Rating,
		&feedback.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	return &feedback, nil
}

// ListByCourse retrieves all feedback of a course, newest first
func (r *FeedbackRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Feedback, error) {
	query := `
		SELECT id, course_id, user_id, comment, rating, created_at
		FROM feedbacks
		WHERE course_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := []*models.Feedback{}
	for rows.Next() {
		var feedback models.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.CourseID,
			&feedback.UserID,
			&feedback.Comment,
			&feedback.Rating,
			&feedback.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning feedback: %w", err)
		}
		feedbacks = append(feedbacks, &feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return feedbacks, nil
}

// Delete removes feedback by ID
func (r *FeedbackRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}
