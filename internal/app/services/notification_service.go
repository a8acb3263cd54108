package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// ContentNotifier is the fan-out surface consumed by the catalog services.
// Implementations must tolerate being called from detached goroutines:
// delivery failures are logged, never propagated to the content write.
type ContentNotifier interface {
	NotifyModuleCreated(ctx context.Context, course *models.Course, module *models.Module)
	NotifyAttachmentAdded(ctx context.Context, course *models.Course, module *models.Module, attachment *models.Attachment)
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	ContentNotifier
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*models.Notification, error)
	List(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, notificationID int64) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo repositories.NotificationStore
	enrollmentRepo   repositories.EnrollmentStore
	userRepo         repositories.UserStore
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.NotificationStore,
	enrollmentRepo repositories.EnrollmentStore,
	userRepo repositories.UserStore,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		enrollmentRepo:   enrollmentRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// NotifyModuleCreated writes one notification per student enrolled at the
// time of the fan-out. Students enrolling later receive nothing for this
// module.
func (s *notificationServiceImpl) NotifyModuleCreated(ctx context.Context, course *models.Course, module *models.Module) {
	title := "New module available"
	message := fmt.Sprintf("A new module %q was added to the course %q.", module.Title, course.Title)
	s.fanOut(ctx, course.ID, title, message)
}

// NotifyAttachmentAdded writes one notification per current enrollee about
// new module material.
func (s *notificationServiceImpl) NotifyAttachmentAdded(ctx context.Context, course *models.Course, module *models.Module, attachment *models.Attachment) {
	title := "New course material"
	message := fmt.Sprintf("The file %q was attached to module %q in the course %q.",
		attachment.Filename, module.Title, course.Title)
	s.fanOut(ctx, course.ID, title, message)
}

func (s *notificationServiceImpl) fanOut(ctx context.Context, courseID int64, title, message string) {
	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error().Err(err).Int64("courseId", courseID).Msg("Fan-out aborted, could not list enrollments")
		return
	}
	if len(enrollments) == 0 {
		return
	}

	notifications := make([]*models.Notification, 0, len(enrollments))
	for _, enrollment := range enrollments {
		notifications = append(notifications, &models.Notification{
			UserID:  enrollment.UserID,
			Title:   title,
			Message: message,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error().Err(err).
			Int64("courseId", courseID).
			Int("recipients", len(notifications)).
			Msg("Fan-out failed")
		return
	}

	s.logger.Debug().
		Int64("courseId", courseID).
		Int("recipients", len(notifications)).
		Msg("Notifications delivered")
}

// Create writes a notification addressed to one user directly
func (s *notificationServiceImpl) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*models.Notification, error) {
	exists, err := s.userRepo.ExistsByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// List retrieves the user's notifications
func (s *notificationServiceImpl) List(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly)
}

// CountUnread returns the user's unread notification count
func (s *notificationServiceImpl) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead flips one of the user's own notifications to read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead flips all of the user's unread notifications to read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's own notifications
func (s *notificationServiceImpl) Delete(ctx context.Context, userID, notificationID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}
