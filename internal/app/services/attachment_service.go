package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/pkg/filestorage"
)

// AttachmentService defines the interface for module attachment operations
type AttachmentService interface {
	Upload(ctx context.Context, moduleID int64, fileHeader *multipart.FileHeader) (*models.Attachment, error)
	Get(ctx context.Context, id int64) (*models.Attachment, error)
	ListByModule(ctx context.Context, moduleID int64) ([]*models.Attachment, error)
	Delete(ctx context.Context, id int64) error
}

// attachmentServiceImpl implements AttachmentService
type attachmentServiceImpl struct {
	attachmentRepo repositories.AttachmentStore
	moduleRepo     repositories.ModuleStore
	courseRepo     repositories.CourseStore
	fileStorage    *filestorage.LocalStorage
	notifier       ContentNotifier
	logger         zerolog.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	attachmentRepo repositories.AttachmentStore,
	moduleRepo repositories.ModuleStore,
	courseRepo repositories.CourseStore,
	fileStorage *filestorage.LocalStorage,
	notifier ContentNotifier,
	logger zerolog.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		moduleRepo:     moduleRepo,
		courseRepo:     courseRepo,
		fileStorage:    fileStorage,
		notifier:       notifier,
		logger:         logger,
	}
}

// Upload stores the file and records its metadata on the module. The
// enrolled students are notified afterwards; delivery runs detached from
// the request and never fails the upload.
func (s *attachmentServiceImpl) Upload(ctx context.Context, moduleID int64, fileHeader *multipart.FileHeader) (*models.Attachment, error) {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, module.CourseID)
	if err != nil {
		return nil, err
	}

	stored, err := s.fileStorage.SaveFile(fileHeader, fmt.Sprintf("modules/%d", moduleID))
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		ModuleID: moduleID,
		Filename: stored.Filename,
		FilePath: stored.Path,
		FileType: stored.Type,
		FileSize: stored.Size,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// Keep storage and metadata aligned when the insert fails.
		if delErr := s.fileStorage.DeleteFile(stored.Path); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", stored.Path).Msg("Failed to remove orphaned file")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("attachmentId", attachment.ID).
		Int64("moduleId", moduleID).
		Str("filename", attachment.Filename).
		Msg("Attachment uploaded")

	go s.notifier.NotifyAttachmentAdded(context.WithoutCancel(ctx), course, module, attachment)

	return attachment, nil
}

// Get retrieves attachment metadata by ID
func (s *attachmentServiceImpl) Get(ctx context.Context, id int64) (*models.Attachment, error) {
	return s.attachmentRepo.GetByID(ctx, id)
}

// ListByModule retrieves all attachments of a module
func (s *attachmentServiceImpl) ListByModule(ctx context.Context, moduleID int64) ([]*models.Attachment, error) {
	if _, err := s.moduleRepo.GetByID(ctx, moduleID); err != nil {
		return nil, err
	}
	return s.attachmentRepo.ListByModule(ctx, moduleID)
}

// Delete removes the metadata row and the stored file
func (s *attachmentServiceImpl) Delete(ctx context.Context, id int64) error {
	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(attachment.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("path", attachment.FilePath).Msg("Failed to delete stored file")
	}
	return nil
}
