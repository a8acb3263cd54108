package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// errQuerier fails every statement with a fixed error, letting tests exercise
// the constraint-to-domain-error translation without a database.
type errQuerier struct {
	err error
}

func (q *errQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q *errQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q *errQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: q.err}
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

func TestEnrollmentRepository_Create_ConstraintTranslation(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		wantErr error
	}{
		{
			name:    "duplicate enrollment",
			pgErr:   &pgconn.PgError{Code: "23505", ConstraintName: uqUserCourse},
			wantErr: apperrors.ErrAlreadyEnrolled,
		},
		{
			name:    "missing user",
			pgErr:   &pgconn.PgError{Code: "23503", ConstraintName: fkEnrollmentUser},
			wantErr: apperrors.ErrUserNotFound,
		},
		{
			name:    "missing course",
			pgErr:   &pgconn.PgError{Code: "23503", ConstraintName: fkEnrollmentCourse},
			wantErr: apperrors.ErrCourseNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewEnrollmentRepository(&errQuerier{err: tt.pgErr})

			err := repo.Create(context.Background(), &models.Enrollment{UserID: 7, CourseID: 3})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEnrollmentRepository_Create_UnrelatedErrorWrapped(t *testing.T) {
	cause := &pgconn.PgError{Code: "57014", Message: "canceling statement"}
	repo := NewEnrollmentRepository(&errQuerier{err: cause})

	err := repo.Create(context.Background(), &models.Enrollment{UserID: 7, CourseID: 3})
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, apperrors.ErrCourseNotFound)
}
