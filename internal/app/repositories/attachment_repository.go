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

// AttachmentRepository handles database operations for module attachments
type AttachmentRepository struct {
	db Querier
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db Querier) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create inserts attachment metadata
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	query := `
		INSERT INTO attachments (module_id, filename, file_path, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		attachment.ModuleID,
		attachment.Filename,
		attachment.FilePath,
		attachment.FileType,
		attachment.FileSize,
	).Scan(&attachment.ID, &attachment.UploadedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrModuleNotFound
		}
		return fmt.Errorf("error creating attachment: %w", err)
	}

	return nil
}

// GetByID retrieves an attachment by ID
func (r *AttachmentRepository) GetByID(ctx context.Context, id int64) (*models.Attachment, error) {
	query := `
		SELECT id, module_id, filename, file_path, file_type, file_size, uploaded_at
		FROM attachments
		WHERE id = $1
	`

	var attachment models.Attachment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&attachment.ID,
		&attachment.ModuleID,
		&attachment.Filename,
		&attachment.FilePath,
		&attachment.FileType,
		&attachment.FileSize,
		&attachment.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("error retrieving attachment: %w", err)
	}

	return &attachment, nil
}

// ListByModule retrieves all attachments of a module
func (r *AttachmentRepository) ListByModule(ctx context.Context, moduleID int64) ([]*models.Attachment, error) {
	query := `
		SELECT id, module_id, filename, file_path, file_type, file_size, uploaded_at
		FROM attachments
		WHERE module_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.Query(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("error listing attachments: %w", err)
	}
	defer rows.Close()

	return scanAttachments(rows)
}

// ListByCourse retrieves all attachments across a course's modules
func (r *AttachmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Attachment, error) {
	query := `
		SELECT a.id, a.module_id, a.filename, a.file_path, a.file_type, a.file_size, a.uploaded_at
		FROM attachments a
		JOIN modules m ON m.id = a.module_id
		WHERE m.course_id = $1
		ORDER BY a.uploaded_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course attachments: %w", err)
	}
	defer rows.Close()

	return scanAttachments(rows)
}

func scanAttachments(rows pgx.Rows) ([]*models.Attachment, error) {
	attachments := []*models.Attachment{}
	for rows.Next() {
		var attachment models.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.ModuleID,
			&attachment.Filename,
			&attachment.FilePath,
			&attachment.FileType,
			&attachment.FileSize,
			&attachment.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning attachment: %w", err)
		}
		attachments = append(attachments, &attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachments: %w", err)
	}
	return attachments, nil
}

// Delete removes attachment metadata by ID
func (r *AttachmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attachment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttachmentNotFound
	}
	return nil
}
