package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      float64
	}{
		{"empty course", 0, 0, 0},
		{"nothing graded", 0, 4, 0},
		{"one of four", 1, 4, 25},
		{"half", 2, 4, 50},
		{"all graded", 4, 4, 100},
		{"thirds", 1, 3, 100.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProgressPercentage(tt.completed, tt.total), 1e-9)
		})
	}
}

type enrollmentFixture struct {
	state       *fakeState
	txManager   *fakeTxManager
	enrollments *mockEnrollmentStore
	service     EnrollmentService
}

func newEnrollmentFixture() *enrollmentFixture {
	state := newFakeState()
	txManager := &fakeTxManager{}
	enrollments := &mockEnrollmentStore{state: state}
	service := NewEnrollmentService(txManager, enrollments, &mockCourseStore{state: state}, zerolog.Nop())
	return &enrollmentFixture{state: state, txManager: txManager, enrollments: enrollments, service: service}
}

func TestEnrollmentService_Enroll(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")

	enrollment, err := f.service.Enroll(context.Background(), 7, course.ID)
	require.NoError(t, err)
	assert.NotZero(t, enrollment.ID)
	assert.Equal(t, 0.0, enrollment.Progress)
}

func TestEnrollmentService_Enroll_CourseNotFound(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.Enroll(context.Background(), 7, 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollmentService_Enroll_Duplicate(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")

	_, err := f.service.Enroll(context.Background(), 7, course.ID)
	require.NoError(t, err)

	_, err = f.service.Enroll(context.Background(), 7, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollmentService_Unenroll_NotEnrolled(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")

	err := f.service.Unenroll(context.Background(), 7, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestEnrollmentService_ReEnrollRestoresProgress(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")
	module := f.state.addModule(course.ID, "Basics")
	f.state.addModule(course.ID, "Concurrency")
	f.state.addEnrollment(7, course.ID)
	f.state.addAssessment(7, module.ID, 4)

	require.NoError(t, f.service.Unenroll(context.Background(), 7, course.ID))

	// Assessments survive the unenroll, so the recomputed progress after
	// re-enrolling picks the graded module back up.
	_, err := f.service.Enroll(context.Background(), 7, course.ID)
	require.NoError(t, err)

	progress, err := f.service.RefreshProgress(context.Background(), 7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, progress.Progress)
}

func TestEnrollmentService_RefreshProgress_Idempotent(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")
	module := f.state.addModule(course.ID, "Basics")
	f.state.addModule(course.ID, "Concurrency")
	f.state.addEnrollment(7, course.ID)
	f.state.addAssessment(7, module.ID, 3)

	first, err := f.service.RefreshProgress(context.Background(), 7, course.ID)
	require.NoError(t, err)
	second, err := f.service.RefreshProgress(context.Background(), 7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Progress, second.Progress)
	assert.Equal(t, 50.0, second.Progress)
}

func TestEnrollmentService_GetProgress_NotEnrolled(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")

	_, err := f.service.GetProgress(context.Background(), 7, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
}

func TestEnrollmentService_RefreshProgress_NotEnrolled(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")

	_, err := f.service.RefreshProgress(context.Background(), 7, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
}

func TestEnrollmentService_RefreshProgress_CountsGradesCommittedBeforeLock(t *testing.T) {
	f := newEnrollmentFixture()
	course := f.state.addCourse("Go Fundamentals")
	module := f.state.addModule(course.ID, "Basics")
	f.state.addEnrollment(7, course.ID)

	// A grade write lands between the refresh starting and the row lock
	// being granted. Counting after the lock must observe it.
	f.enrollments.lockHook = func() {
		f.state.addAssessment(7, module.ID, 5)
	}

	progress, err := f.service.RefreshProgress(context.Background(), 7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress.Progress)

	stored, err := f.enrollments.GetByUserAndCourse(context.Background(), 7, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.Progress)

	assert.Equal(t, 1, f.txManager.calls)
	assert.GreaterOrEqual(t, f.enrollments.forUpdateCalls, 1)
}

func TestEnrollmentService_ListByUser(t *testing.T) {
	f := newEnrollmentFixture()
	first := f.state.addCourse("Go Fundamentals")
	second := f.state.addCourse("Rust Fundamentals")
	f.state.addEnrollment(7, first.ID)
	f.state.addEnrollment(7, second.ID)
	f.state.addEnrollment(8, first.ID)

	enrollments, err := f.service.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
}
