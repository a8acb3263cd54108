package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

type feedbackFixture struct {
	state   *fakeState
	service FeedbackService
}

func newFeedbackFixture() *feedbackFixture {
	state := newFakeState()
	service := NewFeedbackService(
		&mockFeedbackStore{state: state},
		&mockCourseStore{state: state},
		zerolog.Nop(),
	)
	return &feedbackFixture{state: state, service: service}
}

func TestFeedbackService_Submit(t *testing.T) {
	f := newFeedbackFixture()
	course := f.state.addCourse("Go Fundamentals")

	comment := "Solid introduction"
	feedback, err := f.service.Submit(context.Background(), 7, course.ID, &dto.CreateFeedbackRequest{
		Rating:  5,
		Comment: &comment,
	})
	require.NoError(t, err)
	assert.NotZero(t, feedback.ID)
	assert.Equal(t, 5, feedback.Rating)
}

func TestFeedbackService_Submit_InvalidRating(t *testing.T) {
	f := newFeedbackFixture()
	course := f.state.addCourse("Go Fundamentals")

	for _, rating := range []int{0, 6, -1} {
		_, err := f.service.Submit(context.Background(), 7, course.ID, &dto.CreateFeedbackRequest{Rating: rating})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating, "rating %d", rating)
	}
}

func TestFeedbackService_Submit_CourseNotFound(t *testing.T) {
	f := newFeedbackFixture()

	_, err := f.service.Submit(context.Background(), 7, 404, &dto.CreateFeedbackRequest{Rating: 3})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestFeedbackService_Submit_Duplicate(t *testing.T) {
	f := newFeedbackFixture()
	course := f.state.addCourse("Go Fundamentals")

	_, err := f.service.Submit(context.Background(), 7, course.ID, &dto.CreateFeedbackRequest{Rating: 4})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), 7, course.ID, &dto.CreateFeedbackRequest{Rating: 2})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateFeedback)
}

func TestFeedbackService_Delete_AuthorOrAdmin(t *testing.T) {
	f := newFeedbackFixture()
	course := f.state.addCourse("Go Fundamentals")

	feedback, err := f.service.Submit(context.Background(), 7, course.ID, &dto.CreateFeedbackRequest{Rating: 4})
	require.NoError(t, err)

	stranger := &models.User{ID: 8, Role: models.RoleStudent}
	err = f.service.Delete(context.Background(), stranger, feedback.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	author := &models.User{ID: 7, Role: models.RoleStudent}
	require.NoError(t, f.service.Delete(context.Background(), author, feedback.ID))

	// Admin may delete someone else's feedback.
	feedback, err = f.service.Submit(context.Background(), 7, course.ID, &dto.CreateFeedbackRequest{Rating: 4})
	require.NoError(t, err)
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	require.NoError(t, f.service.Delete(context.Background(), admin, feedback.ID))
}

func TestFeedbackService_Delete_NotFound(t *testing.T) {
	f := newFeedbackFixture()

	author := &models.User{ID: 7, Role: models.RoleStudent}
	err := f.service.Delete(context.Background(), author, 404)
	assert.ErrorIs(t, err, apperrors.ErrFeedbackNotFound)
}

func TestFeedbackService_ListByCourse(t *testing.T) {
	f := newFeedbackFixture()
	course := f.state.addCourse("Go Fundamentals")

	_, err := f.service.Submit(context.Background(), 7, course.ID, &dto.CreateFeedbackRequest{Rating: 5})
	require.NoError(t, err)
	_, err = f.service.Submit(context.Background(), 8, course.ID, &dto.CreateFeedbackRequest{Rating: 3})
	require.NoError(t, err)

	feedbacks, err := f.service.ListByCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Len(t, feedbacks, 2)

	_, err = f.service.ListByCourse(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
