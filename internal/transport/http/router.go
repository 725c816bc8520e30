package handlers

import (
	"strings"
	"time"

	"courseplatform/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	authHandler *AuthHandler,
	courseHandler *CourseHandler,
	adminCourseHandler *AdminCourseHandler,
	accessHandler *AccessHandler,
	tokenValidator middleware.TokenValidator,
	limiter *middleware.RateLimiter,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowedOrigins, ",")
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			// Залогиненных с регистрации/логина уводим по роли
			auth.POST("/register", middleware.GuestOnly(tokenValidator), authHandler.Register)
			auth.POST("/login", middleware.GuestOnly(tokenValidator), limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		// Публичный каталог — без требований
		api.GET("/courses", courseHandler.List)

		// Просмотр контента: страничный режим, нужен действующий доступ
		watch := api.Group("/courses/:id/watch")
		watch.Use(middleware.AuthMiddleware(tokenValidator, middleware.ModePage))
		{
			watch.GET("", courseHandler.Watch)
			watch.GET("/:videoId", courseHandler.WatchVideo)
		}

		client := api.Group("")
		client.Use(middleware.AuthMiddleware(tokenValidator, middleware.ModeAPI))
		{
			client.GET("/my/courses", courseHandler.MyCourses)
			client.POST("/videos/:id/progress", courseHandler.SaveProgress)
		}

		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(tokenValidator, middleware.ModeAPI),
			middleware.AdminOnly(middleware.ModeAPI),
		)
		{
			admin.POST("/courses", adminCourseHandler.Create)
			admin.GET("/courses/:id", adminCourseHandler.GetOne)
			admin.PUT("/courses/:id", adminCourseHandler.Update)
			admin.DELETE("/courses/:id", adminCourseHandler.Delete)

			admin.POST("/courses/:id/videos", adminCourseHandler.AddVideo)
			admin.PUT("/courses/:id/videos/reorder", adminCourseHandler.ReorderVideos)
			admin.PUT("/videos/:videoId", adminCourseHandler.UpdateVideo)
			admin.DELETE("/videos/:videoId", adminCourseHandler.DeleteVideo)

			admin.POST("/access", accessHandler.Grant)
			admin.DELETE("/access", accessHandler.Revoke)
			admin.GET("/access", accessHandler.List)

			// Отдельный /search: статичный сегмент рядом с /courses/:id
			// роутер gin не зарегистрирует
			admin.GET("/search/users", accessHandler.SearchUsers)
			admin.GET("/search/courses", accessHandler.SearchCourses)
		}
	}

	return r
}
