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

// ModuleRepository handles database operations for course modules
type ModuleRepository struct {
	db Querier
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db Querier) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ModuleRepository) WithTx(tx pgx.Tx) ModuleStore {
	return &ModuleRepository{db: tx}
}

// Create inserts a new module
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	query := `
		INSERT INTO modules (course_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, module.CourseID, module.Title, module.Content).
		Scan(&module.ID, &module.CreatedAt, &module.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating module: %w", err)
	}

	return nil
}

// GetByID retrieves a module by ID
func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	query := `
		SELECT id, course_id, title, content, created_at, updated_at
		FROM modules
		WHERE id = $1
	`

	var module models.Module
	err := r.db.QueryRow(ctx, query, id).Scan(
		&module.ID,
		&module.CourseID,
		&module.Title,
		&module.Content,
		&module.CreatedAt,
		&module.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}

	return &module, nil
}

// GetByCourseID retrieves all modules of a course ordered by ID
func (r *ModuleRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Module, error) {
	query := `
		SELECT id, course_id, title, content, created_at, updated_at
		FROM modules
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing modules: %w", err)
	}
	defer rows.Close()

	modules := []*models.Module{}
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(
			&module.ID,
			&module.CourseID,
			&module.Title,
			&module.Content,
			&module.CreatedAt,
			&module.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning module: %w", err)
		}
		modules = append(modules, &module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating modules: %w", err)
	}

	return modules, nil
}

// ResolveCourseID returns the ID of the course owning the module
func (r *ModuleRepository) ResolveCourseID(ctx context.Context, moduleID int64) (int64, error) {
	var courseID int64
	err := r.db.QueryRow(ctx, `SELECT course_id FROM modules WHERE id = $1`, moduleID).Scan(&courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrModuleNotFound
		}
		return 0, fmt.Errorf("error resolving module course: %w", err)
	}
	return courseID, nil
}
