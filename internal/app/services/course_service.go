package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zhanel/coursehub/internal/app/models"
	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/repositories"
	"github.com/zhanel/coursehub/internal/pkg/apperrors"
)

// CourseService defines the interface for course catalog operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	CreateModule(ctx context.Context, courseID int64, req *dto.CreateModuleRequest) (*models.Module, error)
	GetModule(ctx context.Context, id int64) (*models.Module, error)
	ListModules(ctx context.Context, courseID int64) ([]*models.Module, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo repositories.CourseStore
	moduleRepo repositories.ModuleStore
	notifier   ContentNotifier
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.CourseStore,
	moduleRepo repositories.ModuleStore,
	notifier ContentNotifier,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseId", course.ID).Str("title", course.Title).Msg("Course created")
	return course, nil
}

// GetCourse retrieves a course together with its modules
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	modules, err := s.moduleRepo.GetByCourseID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Modules = modules

	return course, nil
}

// ListCourses retrieves all courses
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// DeleteCourse removes a course and everything hanging off it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseId", id).Msg("Course deleted")
	return nil
}

// CreateModule adds a module to a course. Once the module is persisted the
// enrolled students are notified; delivery runs detached from the request
// and never fails the creation.
func (s *courseServiceImpl) CreateModule(ctx context.Context, courseID int64, req *dto.CreateModuleRequest) (*models.Module, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	module := &models.Module{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("moduleId", module.ID).
		Int64("courseId", courseID).
		Msg("Module created")

	go s.notifier.NotifyModuleCreated(context.WithoutCancel(ctx), course, module)

	return module, nil
}

// GetModule retrieves a module by ID
func (s *courseServiceImpl) GetModule(ctx context.Context, id int64) (*models.Module, error) {
	return s.moduleRepo.GetByID(ctx, id)
}

// ListModules retrieves all modules of a course
func (s *courseServiceImpl) ListModules(ctx context.Context, courseID int64) ([]*models.Module, error) {
	exists, err := s.courseRepo.ExistsByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.moduleRepo.GetByCourseID(ctx, courseID)
}
