package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/db"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
	"github.com/zhanel/coursehub/internal/pkg/validation"
)

// AssessmentService defines the interface for grade operations
type AssessmentService interface {
	SubmitGrade(ctx context.Context, userID, moduleID int64, grade float64) (*dto.SubmitGradeResponse, error)
	ListByUserAndCourse(ctx context.Context, userID, courseID int64) ([]*models.Assessment, error)
}

// assessmentServiceImpl implements AssessmentService
type assessmentServiceImpl struct {
	txManager      db.TxManager
	assessmentRepo repositories.AssessmentStore
	enrollmentRepo repositories.EnrollmentStore
	moduleRepo     repositories.ModuleStore
	logger         zerolog.Logger
}

// NewAssessmentService creates a new AssessmentService
func NewAssessmentService(
	txManager db.TxManager,
	assessmentRepo repositories.AssessmentStore,
	enrollmentRepo repositories.EnrollmentStore,
	moduleRepo repositories.ModuleStore,
	logger zerolog.Logger,
) AssessmentService {
	return &assessmentServiceImpl{
		txManager:      txManager,
		assessmentRepo: assessmentRepo,
		enrollmentRepo: enrollmentRepo,
		moduleRepo:     moduleRepo,
		logger:         logger,
	}
}

// SubmitGrade records a grade on a module and reconciles the enrollment it
// belongs to, all in one transaction. This is the single place progress is
// recomputed after a grade write: the assessment is fetched or created, the
// grade written, the enrollment row locked, and the stored percentage
// replaced with the value derived from the graded modules. A student graded
// on a course they never enrolled in is enrolled on the spot.
func (s *assessmentServiceImpl) SubmitGrade(ctx context.Context, userID, moduleID int64, grade float64) (*dto.SubmitGradeResponse, error) {
	if !validation.ValidGrade(grade) {
		return nil, apperrors.ErrInvalidGrade
	}

	var response *dto.SubmitGradeResponse

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		assessments := s.assessmentRepo.WithTx(tx)
		enrollments := s.enrollmentRepo.WithTx(tx)
		modules := s.moduleRepo.WithTx(tx)

		courseID, err := modules.ResolveCourseID(ctx, moduleID)
		if err != nil {
			return err
		}

		assessment, err := assessments.GetOrCreate(ctx, userID, moduleID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := assessments.UpdateGrade(ctx, assessment.ID, grade, now); err != nil {
			return err
		}
		assessment.Grade = grade
		assessment.AssessmentDate = now

		enrollment, err := s.lockEnrollment(ctx, enrollments, userID, courseID)
		if err != nil {
			return err
		}

		completed, total, err := enrollments.CountProgress(ctx, userID, courseID)
		if err != nil {
			return err
		}

		progress := ProgressPercentage(completed, total)
		if err := enrollments.UpdateProgress(ctx, enrollment.ID, progress, now); err != nil {
			return err
		}

		response = &dto.SubmitGradeResponse{
			AssessmentID: assessment.ID,
			ModuleID:     moduleID,
			UserID:       userID,
			Grade:        grade,
			Progress:     progress,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userId", userID).
		Int64("moduleId", moduleID).
		Float64("grade", grade).
		Float64("progress", response.Progress).
		Msg("Grade recorded")

	return response, nil
}

// lockEnrollment locks the enrollment row for the grade write, enrolling the
// user first when no row exists. A concurrent enroll between the lookup and
// the insert surfaces as ErrAlreadyEnrolled; the lock is then retried once.
// Failing past that retry is a consistency failure, not silence.
func (s *assessmentServiceImpl) lockEnrollment(ctx context.Context, enrollments repositories.EnrollmentStore, userID, courseID int64) (*models.Enrollment, error) {
	enrollment, err := enrollments.GetByUserAndCourseForUpdate(ctx, userID, courseID)
	if err == nil {
		return enrollment, nil
	}
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return nil, err
	}

	s.logger.Debug().
		Int64("userId", userID).
		Int64("courseId", courseID).
		Msg("Grade for unenrolled user, enrolling")

	created := &models.Enrollment{UserID: userID, CourseID: courseID, Progress: 0}
	if err := enrollments.Create(ctx, created); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return nil, err
		}
	} else {
		return created, nil
	}

	enrollment, err = enrollments.GetByUserAndCourseForUpdate(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil, apperrors.ErrConsistencyFailure
		}
		return nil, err
	}
	return enrollment, nil
}

// ListByUserAndCourse retrieves the user's assessments across a course
func (s *assessmentServiceImpl) ListByUserAndCourse(ctx context.Context, userID, courseID int64) ([]*models.Assessment, error) {
	return s.assessmentRepo.ListByUserAndCourse(ctx, userID, courseID)
}
