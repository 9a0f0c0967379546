package handlers

import (
	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	utils.Success(c, gin.H{"status": "ok"})
}
