package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// recordingNotifier captures fan-out calls and signals each one, so tests
// can wait for the detached delivery goroutine.
type recordingNotifier struct {
	moduleCalls     chan *models.Module
	attachmentCalls chan *models.Attachment
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		moduleCalls:     make(chan *models.Module, 8),
		attachmentCalls: make(chan *models.Attachment, 8),
	}
}

func (n *recordingNotifier) NotifyModuleCreated(_ context.Context, _ *models.Course, module *models.Module) {
	n.moduleCalls <- module
}

func (n *recordingNotifier) NotifyAttachmentAdded(_ context.Context, _ *models.Course, _ *models.Module, attachment *models.Attachment) {
	n.attachmentCalls <- attachment
}

func (n *recordingNotifier) awaitModule(t *testing.T) *models.Module {
	t.Helper()
	select {
	case module := <-n.moduleCalls:
		return module
	case <-time.After(time.Second):
		t.Fatal("notifier was not called")
		return nil
	}
}

type courseFixture struct {
	state    *fakeState
	notifier *recordingNotifier
	service  CourseService
}

func newCourseFixture() *courseFixture {
	state := newFakeState()
	notifier := newRecordingNotifier()
	service := NewCourseService(
		&mockCourseStore{state: state},
		&mockModuleStore{state: state},
		notifier,
		zerolog.Nop(),
	)
	return &courseFixture{state: state, notifier: notifier, service: service}
}

func TestCourseService_CreateAndGetCourse(t *testing.T) {
	f := newCourseFixture()

	description := "An introduction"
	course, err := f.service.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Title:       "Go Fundamentals",
		Description: &description,
	})
	require.NoError(t, err)
	require.NotZero(t, course.ID)

	f.state.addModule(course.ID, "Basics")
	f.state.addModule(course.ID, "Concurrency")

	fetched, err := f.service.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", fetched.Title)
	assert.Len(t, fetched.Modules, 2)
}

func TestCourseService_GetCourse_NotFound(t *testing.T) {
	f := newCourseFixture()

	_, err := f.service.GetCourse(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseService_CreateModule_NotifiesEnrollees(t *testing.T) {
	f := newCourseFixture()
	course := f.state.addCourse("Go Fundamentals")

	module, err := f.service.CreateModule(context.Background(), course.ID, &dto.CreateModuleRequest{
		Title:   "Concurrency",
		Content: "Goroutines and channels",
	})
	require.NoError(t, err)
	require.NotZero(t, module.ID)

	notified := f.notifier.awaitModule(t)
	assert.Equal(t, module.ID, notified.ID)
}

func TestCourseService_CreateModule_CourseNotFound(t *testing.T) {
	f := newCourseFixture()

	_, err := f.service.CreateModule(context.Background(), 404, &dto.CreateModuleRequest{
		Title:   "Concurrency",
		Content: "Goroutines and channels",
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	select {
	case <-f.notifier.moduleCalls:
		t.Fatal("no notification expected for a failed module creation")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCourseService_ListModules_CourseNotFound(t *testing.T) {
	f := newCourseFixture()

	_, err := f.service.ListModules(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseService_DeleteCourse(t *testing.T) {
	f := newCourseFixture()
	course := f.state.addCourse("Go Fundamentals")

	require.NoError(t, f.service.DeleteCourse(context.Background(), course.ID))
	assert.ErrorIs(t, f.service.DeleteCourse(context.Background(), course.ID), apperrors.ErrCourseNotFound)
}
