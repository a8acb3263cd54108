package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/middleware"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles course creation (admin only)
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourse retrieves a course with its modules
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// ListCourses retrieves all courses
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// DeleteCourse removes a course (admin only)
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted"))
}

// CreateModule adds a module to a course (admin only)
func (c *CourseController) CreateModule(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateModuleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	module, err := c.courseService.CreateModule(ctx, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(module))
}

// GetModule retrieves a module
func (c *CourseController) GetModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "moduleId")
	if !ok {
		return
	}

	module, err := c.courseService.GetModule(ctx, moduleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(module))
}

// ListModules retrieves all modules of a course
func (c *CourseController) ListModules(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	modules, err := c.courseService.ListModules(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(modules))
}
