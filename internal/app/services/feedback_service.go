package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
	"github.com/zhanel/coursehub/internal/pkg/validation"
)

// FeedbackService defines the interface for course feedback operations
type FeedbackService interface {
	Submit(ctx context.Context, userID, courseID int64, req *dto.CreateFeedbackRequest) (*models.Feedback, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Feedback, error)
	Delete(ctx context.Context, user *models.User, feedbackID int64) error
}

// feedbackServiceImpl implements FeedbackService
type feedbackServiceImpl struct {
	feedbackRepo repositories.FeedbackStore
	courseRepo   repositories.CourseStore
	logger       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(
	feedbackRepo repositories.FeedbackStore,
	courseRepo repositories.CourseStore,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		courseRepo:   courseRepo,
		logger:       logger,
	}
}

// Submit records the user's feedback on a course. One submission per
// (user, course) pair; a second attempt returns ErrDuplicateFeedback.
func (s *feedbackServiceImpl) Submit(ctx context.Context, userID, courseID int64, req *dto.CreateFeedbackRequest) (*models.Feedback, error) {
	if !validation.ValidRating(req.Rating) {
		return nil, apperrors.ErrInvalidRating
	}

	exists, err := s.courseRepo.ExistsByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	feedback := &models.Feedback{
		CourseID: courseID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userId", userID).
		Int64("courseId", courseID).
		Int("rating", req.Rating).
		Msg("Feedback submitted")

	return feedback, nil
}

// ListByCourse retrieves all feedback of a course
func (s *feedbackServiceImpl) ListByCourse(ctx context.Context, courseID int64) ([]*models.Feedback, error) {
	exists, err := s.courseRepo.ExistsByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.feedbackRepo.ListByCourse(ctx, courseID)
}

// Delete removes feedback. Only the author or an admin may delete it.
func (s *feedbackServiceImpl) Delete(ctx context.Context, user *models.User, feedbackID int64) error {
	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	if feedback.UserID != user.ID && !user.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	return s.feedbackRepo.Delete(ctx, feedbackID)
}
