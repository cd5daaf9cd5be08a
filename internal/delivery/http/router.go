package http

import (
	"coursehub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func InitRouter(handler *Handler) *gin.Engine {
	r := gin.Default()

	// Public Routes
	api := r.Group("/api/v1")
	{
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)

		api.GET("/courses", handler.GetAllCourses)
		api.GET("/courses/:id", handler.GetCourseByID)
		api.GET("/assets/:id", handler.StreamAsset)
	}

	// Protected Routes (any authenticated user)
	protected := api.Group("/")
	protected.Use(AuthMiddleware())
	{
		protected.GET("/me", handler.GetCurrentUser)
		protected.PUT("/profile", handler.UpdateProfile)
		protected.GET("/courses/:id/content", handler.GetCourseContent)
		protected.GET("/courses/:id/modules", handler.GetModulesByCourse)
		protected.GET("/modules/:moduleId/videos", handler.GetVideosByModule)
	}

	// Student Only
	student := api.Group("/student")
	student.Use(AuthMiddleware(domain.RoleStudent))
	{
		student.GET("/enrollments", handler.GetMyEnrollments)
		student.POST("/enrollments", handler.EnrollCourse)
		student.PATCH("/enrollments/:id/progress", handler.UpdateProgress)

		student.GET("/cart", handler.GetCart)
		student.POST("/cart", handler.AddToCart)
		student.DELETE("/cart/:courseId", handler.RemoveFromCart)
		student.POST("/cart/checkout", handler.Checkout)
	}

	// Educator & Admin Only
	educator := api.Group("/educator")
	educator.Use(AuthMiddleware(domain.RoleEducator, domain.RoleAdmin), RequireApproved())
	{
		educator.GET("/courses", handler.GetEducatorCourses)
		educator.POST("/courses", handler.CreateCourse)
		educator.PUT("/courses/:id", handler.UpdateCourse)
		educator.DELETE("/courses/:id", handler.DeleteCourse)

		educator.POST("/modules", handler.CreateModule)
		educator.PUT("/modules/:moduleId", handler.UpdateModule)
		educator.DELETE("/modules/:moduleId", handler.DeleteModule)

		educator.POST("/videos", handler.CreateVideo)
		educator.PUT("/videos/:videoId", handler.UpdateVideo)
		educator.DELETE("/videos/:videoId", handler.DeleteVideo)

		educator.POST("/assets", handler.UploadAsset)
	}

	// Admin Only
	admin := api.Group("/admin")
	admin.Use(AuthMiddleware(domain.RoleAdmin))
	{
		admin.GET("/dashboard", handler.GetAdminDashboard)

		admin.GET("/users", handler.GetAllUsers)
		admin.GET("/educators", handler.GetEducators)
		admin.POST("/educators", handler.CreateEducator)
		admin.PATCH("/educators/:id/approve", handler.ApproveEducator)

		admin.GET("/courses/pending", handler.GetPendingCourses)
		admin.PATCH("/courses/:id/approve", handler.ApproveCourse)
	}

	return r
}
