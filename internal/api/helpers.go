package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, log *zap.SugaredLogger, status int, message string) {
	if status >= 500 {
		log.Errorw(message, "path", c.Request.URL.Path, "status", status)
	} else {
		log.Infow(message, "path", c.Request.URL.Path, "status", status)
	}

	c.JSON(status, gin.H{"error": message})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
