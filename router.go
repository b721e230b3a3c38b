package main

import (
	"photomind/config"
	"photomind/handlers"
	"photomind/utils"
	"photomind/web"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func setupRouter(photos *handlers.Photos, live *handlers.LiveFeed) *gin.Engine {
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	_ = router.SetTrustedProxies([]string{})
	router.Use(gin.Logger(), handlers.Recovery())
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  config.CorsOrigins(),
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		// Images are already compressed and websockets cannot be wrapped
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/images/", "/api/photos/live"})))
	}
	router.Use(utils.Cache(utils.CacheNoCache)) // No cache by default, individual end-points can override that
	router.Use(handlers.ErrorHandler)

	// HTML templates
	router.SetHTMLTemplate(web.Templates())

	// Photo API
	api := router.Group("/api/photos")
	api.GET("", photos.List)
	api.GET("/search", photos.SearchPhotos)
	api.POST("/upload", photos.Upload)
	api.GET("/live", live.WebSocket)
	// Stored images, S3 redirects to presigned URLs that expire
	imageCache := utils.CacheDay
	if photos.Storage.GetBucket().IsS3() {
		imageCache = utils.CacheNoCache
	}
	router.GET("/images/*name", utils.Cache(imageCache), photos.Image)

	/*
	 *	Web interface
	 */
	router.GET("/", web.Gallery)
	// Misc
	router.GET("/robots.txt", web.DisallowRobots)
	router.GET("/health", web.Health)
	return router
}
