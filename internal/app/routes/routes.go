package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/controllers"
	"github.com/zhanel/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	assessmentController *controllers.AssessmentController,
	feedbackController *controllers.FeedbackController,
	attachmentController *controllers.AttachmentController,
	notificationController *controllers.NotificationController,
	statsController *controllers.StatsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:courseId", courseController.GetCourse)
			courses.GET("/:courseId/modules", courseController.ListModules)

			// Enrollment and progress, always for the authenticated user
			courses.POST("/:courseId/enroll", enrollmentController.Enroll)
			courses.DELETE("/:courseId/enroll", enrollmentController.Unenroll)
			courses.GET("/:courseId/progress", enrollmentController.GetProgress)
			courses.POST("/:courseId/progress/refresh", enrollmentController.RefreshProgress)
			courses.GET("/:courseId/assessments", assessmentController.ListMyAssessments)

			// Feedback
			courses.POST("/:courseId/feedback", feedbackController.Submit)
			courses.GET("/:courseId/feedback", feedbackController.ListByCourse)
		}

		modules := authenticated.Group("/modules")
		{
			modules.GET("/:moduleId", courseController.GetModule)
			modules.GET("/:moduleId/attachments", attachmentController.ListByModule)
			modules.POST("/:moduleId/grade", assessmentController.SubmitGrade)
		}

		authenticated.GET("/attachments/:attachmentId", attachmentController.Get)
		authenticated.GET("/enrollments", enrollmentController.ListMyEnrollments)
		authenticated.DELETE("/feedback/:feedbackId", feedbackController.Delete)

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.CountUnread)
			notifications.PATCH("/:notificationId/read", notificationController.MarkRead)
			notifications.PATCH("/read-all", notificationController.MarkAllRead)
			notifications.DELETE("/:notificationId", notificationController.Delete)
		}

		// --- Admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.POST("/courses", courseController.CreateCourse)
			admin.DELETE("/courses/:courseId", courseController.DeleteCourse)
			admin.POST("/courses/:courseId/modules", courseController.CreateModule)
			admin.POST("/modules/:moduleId/attachments", attachmentController.Upload)
			admin.DELETE("/attachments/:attachmentId", attachmentController.Delete)
			admin.POST("/notifications", notificationController.Create)

			stats := admin.Group("/stats")
			{
				stats.GET("/popular-courses", statsController.PopularCourses)
				stats.GET("/courses", statsController.CourseStatistics)
				stats.GET("/course-modules", statsController.CourseModuleStatistics)
				stats.GET("/user-performance", statsController.UserPerformance)
				stats.GET("/user-activity", statsController.UserActivity)
				stats.GET("/notifications", statsController.NotificationStatistics)
			}
		}
	}
}
