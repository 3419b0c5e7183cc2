package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig 注入应用标识（支持依赖注入）
func AppInfoWithConfig(name string, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)

		c.Next()
	}
}
