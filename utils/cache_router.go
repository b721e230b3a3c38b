package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
	CacheDay     = 86400
)

// Cache sets the cache-control header for all responses going through it.
// Handlers can still override it when CacheCustom is used.
func Cache(seconds int) gin.HandlerFunc {
	value := "no-cache"
	if seconds > 0 {
		value = "public, max-age=" + strconv.Itoa(seconds)
	}
	return func(c *gin.Context) {
		if seconds != CacheCustom {
			c.Header("cache-control", value)
		}
		c.Next()
	}
}
