package handlers

import (
	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")
	out, err := getServices().Profile.BuildProfile(c.Request.Context(), userID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func GetAdminStats(c *gin.Context) {
	out, err := getServices().Profile.BuildAdminStats(c.Request.Context())
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}
