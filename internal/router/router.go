package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/dentodent/content-api/internal/config"
	"github.com/dentodent/content-api/internal/handler"
	"github.com/dentodent/content-api/internal/middleware"
	"github.com/dentodent/content-api/internal/store"
)

// Setup configures the Gin engine and wires all routes.
func Setup(st store.Store, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORS(cfg.AllowedOrigins))

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("dentodent_session", sessionStore))

	// Uploaded files are served straight from the public directory.
	r.Static("/assets", cfg.PublicDir+"/assets")

	a := handler.NewAPI(st, cfg)

	r.GET("/health", a.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/health", a.HealthCheck)
		api.POST("/login", a.Login)
		api.POST("/logout", a.Logout)

		api.GET("/content", a.GetContent)
		api.GET("/content/:section", a.GetContentSection)
		api.GET("/media", a.ListMedia)
		api.GET("/media/:id", a.GetMedia)
		api.GET("/images", a.ListImages)
		api.GET("/banners", a.ListBanners)
		api.GET("/banners/:id", a.GetBanner)

		// Writes require an authenticated admin session.
		auth := api.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.POST("/content/:section", a.CreateContentSection)
			auth.PUT("/content/:section", a.UpdateContentSection)
			auth.DELETE("/content/:section", a.DeleteContentSection)

			auth.POST("/media", a.CreateMedia)
			auth.PUT("/media/:id", a.UpdateMedia)
			auth.DELETE("/media/:id", a.DeleteMedia)

			auth.POST("/images", a.CreateImage)
			auth.DELETE("/images/:id", a.DeleteImage)

			auth.POST("/banners", a.CreateBanner)
			auth.PUT("/banners/:id", a.UpdateBanner)
			auth.DELETE("/banners/:id", a.DeleteBanner)

			auth.POST("/upload/media", a.UploadMedia)
			auth.POST("/upload/image", a.UploadImage)
		}
	}

	return r
}
