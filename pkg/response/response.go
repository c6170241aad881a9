package response

import (
	"github.com/gin-gonic/gin"
)

// Bodies follow the wire contract of the API: plain JSON objects, errors as
// {"detail": "..."} with an optional machine-readable "code", validation
// failures as a field -> message map.

// Detail writes {"detail": msg} with the given status.
func Detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// DetailCode writes {"detail": msg, "code": code} with the given status.
func DetailCode(c *gin.Context, status int, msg, code string) {
	c.JSON(status, gin.H{"detail": msg, "code": code})
}

// Fields writes a field -> message map with the given status.
func Fields(c *gin.Context, status int, fields map[string]string) {
	c.JSON(status, fields)
}

// AbortDetail aborts the request with {"detail": msg}.
func AbortDetail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// AbortDetailCode aborts the request with {"detail": msg, "code": code}.
func AbortDetailCode(c *gin.Context, status int, msg, code string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg, "code": code})
}
