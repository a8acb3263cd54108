package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/db"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// fakeState is the shared in-memory backing for the mock stores, so the
// counts the enrollment store reports stay consistent with the assessments
// the assessment store writes.
type fakeState struct {
	nextID      int64
	users       map[int64]*models.User
	courses     map[int64]*models.Course
	modules     map[int64]*models.Module
	enrollments []*models.Enrollment
	assessments []*models.Assessment
}

func newFakeState() *fakeState {
	return &fakeState{
		nextID:  1,
		users:   make(map[int64]*models.User),
		courses: make(map[int64]*models.Course),
		modules: make(map[int64]*models.Module),
	}
}

func (s *fakeState) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeState) addCourse(title string) *models.Course {
	course := &models.Course{ID: s.id(), Title: title, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.courses[course.ID] = course
	return course
}

func (s *fakeState) addModule(courseID int64, title string) *models.Module {
	module := &models.Module{ID: s.id(), CourseID: courseID, Title: title, Content: "content"}
	s.modules[module.ID] = module
	return module
}

func (s *fakeState) addEnrollment(userID, courseID int64) *models.Enrollment {
	enrollment := &models.Enrollment{
		ID:             s.id(),
		UserID:         userID,
		CourseID:       courseID,
		EnrollmentDate: time.Now(),
		LastAccessed:   time.Now(),
	}
	s.enrollments = append(s.enrollments, enrollment)
	return enrollment
}

func (s *fakeState) addAssessment(userID, moduleID int64, grade float64) *models.Assessment {
	assessment := &models.Assessment{
		ID:             s.id(),
		ModuleID:       moduleID,
		UserID:         userID,
		Grade:          grade,
		AssessmentDate: time.Now(),
	}
	s.assessments = append(s.assessments, assessment)
	return assessment
}

// ── fake transaction manager ──

// fakeTxManager satisfies db.TxManager without a database. The callback
// receives a nil transaction; the mock stores ignore it.
type fakeTxManager struct {
	failWith error
	calls    int
}

var _ db.TxManager = (*fakeTxManager)(nil)

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	m.calls++
	if m.failWith != nil {
		return m.failWith
	}
	return fn(ctx, nil)
}

// ── mock user store ──

type mockUserStore struct {
	state *fakeState
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range m.state.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = m.state.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.state.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.state.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.state.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := m.state.users[id]
	return ok, nil
}

// ── mock course store ──

type mockCourseStore struct {
	state *fakeState
}

func (m *mockCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = m.state.id()
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	m.state.courses[course.ID] = course
	return nil
}

func (m *mockCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := m.state.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m *mockCourseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	for _, c := range m.state.courses {
		courses = append(courses, c)
	}
	return courses, nil
}

func (m *mockCourseStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := m.state.courses[id]
	return ok, nil
}

func (m *mockCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.state.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(m.state.courses, id)
	return nil
}

// ── mock module store ──

type mockModuleStore struct {
	state *fakeState
}

func (m *mockModuleStore) WithTx(_ pgx.Tx) repositories.ModuleStore { return m }

func (m *mockModuleStore) Create(_ context.Context, module *models.Module) error {
	if _, ok := m.state.courses[module.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	module.ID = m.state.id()
	module.CreatedAt = time.Now()
	module.UpdatedAt = module.CreatedAt
	m.state.modules[module.ID] = module
	return nil
}

func (m *mockModuleStore) GetByID(_ context.Context, id int64) (*models.Module, error) {
	if mod, ok := m.state.modules[id]; ok {
		return mod, nil
	}
	return nil, apperrors.ErrModuleNotFound
}

func (m *mockModuleStore) GetByCourseID(_ context.Context, courseID int64) ([]*models.Module, error) {
	modules := []*models.Module{}
	for _, mod := range m.state.modules {
		if mod.CourseID == courseID {
			modules = append(modules, mod)
		}
	}
	return modules, nil
}

func (m *mockModuleStore) ResolveCourseID(_ context.Context, moduleID int64) (int64, error) {
	if mod, ok := m.state.modules[moduleID]; ok {
		return mod.CourseID, nil
	}
	return 0, apperrors.ErrModuleNotFound
}

// ── mock enrollment store ──

type mockEnrollmentStore struct {
	state *fakeState

	// lockFailures makes the next N FOR UPDATE lookups report a missing row,
	// and createConflict forces Create to report the unique violation. Set
	// together they simulate losing the enroll race.
	lockFailures   int
	createConflict bool

	// lockHook, when set, runs as the FOR UPDATE lookup returns a row. It
	// stands in for a concurrent writer whose commit the row lock serialized
	// ahead of the caller's transaction.
	lockHook func()

	forUpdateCalls int
}

func (m *mockEnrollmentStore) WithTx(_ pgx.Tx) repositories.EnrollmentStore { return m }

func (m *mockEnrollmentStore) Create(_ context.Context, enrollment *models.Enrollment) error {
	if m.createConflict {
		return apperrors.ErrAlreadyEnrolled
	}
	for _, e := range m.state.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	enrollment.ID = m.state.id()
	enrollment.EnrollmentDate = time.Now()
	enrollment.LastAccessed = enrollment.EnrollmentDate
	m.state.enrollments = append(m.state.enrollments, enrollment)
	return nil
}

func (m *mockEnrollmentStore) find(userID, courseID int64) *models.Enrollment {
	for _, e := range m.state.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return e
		}
	}
	return nil
}

func (m *mockEnrollmentStore) GetByUserAndCourse(_ context.Context, userID, courseID int64) (*models.Enrollment, error) {
	if e := m.find(userID, courseID); e != nil {
		return e, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (m *mockEnrollmentStore) GetByUserAndCourseForUpdate(_ context.Context, userID, courseID int64) (*models.Enrollment, error) {
	m.forUpdateCalls++
	if m.lockFailures > 0 {
		m.lockFailures--
		return nil, apperrors.ErrEnrollmentNotFound
	}
	if e := m.find(userID, courseID); e != nil {
		if m.lockHook != nil {
			m.lockHook()
		}
		return e, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (m *mockEnrollmentStore) ListByCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	enrollments := []*models.Enrollment{}
	for _, e := range m.state.enrollments {
		if e.CourseID == courseID {
			enrollments = append(enrollments, e)
		}
	}
	return enrollments, nil
}

func (m *mockEnrollmentStore) ListByUser(_ context.Context, userID int64) ([]*models.Enrollment, error) {
	enrollments := []*models.Enrollment{}
	for _, e := range m.state.enrollments {
		if e.UserID == userID {
			enrollments = append(enrollments, e)
		}
	}
	return enrollments, nil
}

func (m *mockEnrollmentStore) UpdateProgress(_ context.Context, id int64, progress float64, lastAccessed time.Time) error {
	for _, e := range m.state.enrollments {
		if e.ID == id {
			e.Progress = progress
			e.LastAccessed = lastAccessed
			return nil
		}
	}
	return apperrors.ErrEnrollmentNotFound
}

func (m *mockEnrollmentStore) Delete(_ context.Context, userID, courseID int64) error {
	for i, e := range m.state.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			m.state.enrollments = append(m.state.enrollments[:i], m.state.enrollments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrEnrollmentNotFound
}

func (m *mockEnrollmentStore) CountProgress(_ context.Context, userID, courseID int64) (int64, int64, error) {
	var total int64
	for _, mod := range m.state.modules {
		if mod.CourseID == courseID {
			total++
		}
	}

	graded := map[int64]bool{}
	for _, a := range m.state.assessments {
		if a.UserID != userID || a.Grade <= 0 {
			continue
		}
		mod, ok := m.state.modules[a.ModuleID]
		if ok && mod.CourseID == courseID {
			graded[a.ModuleID] = true
		}
	}
	return int64(len(graded)), total, nil
}

// ── mock assessment store ──

type mockAssessmentStore struct {
	state *fakeState
}

func (m *mockAssessmentStore) WithTx(_ pgx.Tx) repositories.AssessmentStore { return m }

func (m *mockAssessmentStore) GetOrCreate(_ context.Context, userID, moduleID int64) (*models.Assessment, error) {
	if _, ok := m.state.modules[moduleID]; !ok {
		return nil, apperrors.ErrModuleNotFound
	}
	for _, a := range m.state.assessments {
		if a.UserID == userID && a.ModuleID == moduleID {
			return a, nil
		}
	}
	assessment := &models.Assessment{
		ID:             m.state.id(),
		ModuleID:       moduleID,
		UserID:         userID,
		Grade:          0,
		AssessmentDate: time.Now(),
	}
	m.state.assessments = append(m.state.assessments, assessment)
	return assessment, nil
}

func (m *mockAssessmentStore) UpdateGrade(_ context.Context, id int64, grade float64, at time.Time) error {
	for _, a := range m.state.assessments {
		if a.ID == id {
			a.Grade = grade
			a.AssessmentDate = at
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (m *mockAssessmentStore) ListByUserAndCourse(_ context.Context, userID, courseID int64) ([]*models.Assessment, error) {
	assessments := []*models.Assessment{}
	for _, a := range m.state.assessments {
		if a.UserID != userID {
			continue
		}
		if mod, ok := m.state.modules[a.ModuleID]; ok && mod.CourseID == courseID {
			assessments = append(assessments, a)
		}
	}
	return assessments, nil
}

// ── mock feedback store ──

type mockFeedbackStore struct {
	state     *fakeState
	feedbacks []*models.Feedback
}

func (m *mockFeedbackStore) Create(_ context.Context, feedback *models.Feedback) error {
	for _, f := range m.feedbacks {
		if f.UserID == feedback.UserID && f.CourseID == feedback.CourseID {
			return apperrors.ErrDuplicateFeedback
		}
	}
	if feedback.Rating < models.RatingMin || feedback.Rating > models.RatingMax {
		return apperrors.ErrInvalidRating
	}
	feedback.ID = m.state.id()
	feedback.CreatedAt = time.Now()
	m.feedbacks = append(m.feedbacks, feedback)
	return nil
}

func (m *mockFeedbackStore) GetByID(_ context.Context, id int64) (*models.Feedback, error) {
	for _, f := range m.feedbacks {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, apperrors.ErrFeedbackNotFound
}

func (m *mockFeedbackStore) ListByCourse(_ context.Context, courseID int64) ([]*models.Feedback, error) {
	feedbacks := []*models.Feedback{}
	for _, f := range m.feedbacks {
		if f.CourseID == courseID {
			feedbacks = append(feedbacks, f)
		}
	}
	return feedbacks, nil
}

func (m *mockFeedbackStore) Delete(_ context.Context, id int64) error {
	for i, f := range m.feedbacks {
		if f.ID == id {
			m.feedbacks = append(m.feedbacks[:i], m.feedbacks[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrFeedbackNotFound
}

// ── mock notification store ──

type mockNotificationStore struct {
	state         *fakeState
	notifications []*models.Notification
}

func (m *mockNotificationStore) Create(_ context.Context, notification *models.Notification) error {
	notification.ID = m.state.id()
	notification.CreatedAt = time.Now()
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockNotificationStore) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	for _, n := range notifications {
		if err := m.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationStore) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	for _, n := range m.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, apperrors.ErrNotificationNotFound
}

func (m *mockNotificationStore) ListByUser(_ context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	notifications := []*models.Notification{}
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (m *mockNotificationStore) CountUnread(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStore) MarkRead(_ context.Context, id int64) error {
	for _, n := range m.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (m *mockNotificationStore) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStore) Delete(_ context.Context, id int64) error {
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}
