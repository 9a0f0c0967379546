package handlers

import (
	"net/http"
	"strconv"

	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
)

type CreateFolderRequest struct {
	Name     string `json:"foldername" binding:"required"`
	ParentID *uint  `json:"parentid"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func ListFolders(c *gin.Context) {
	userID := c.GetUint("user_id")
	folders, err := getServices().Folders.ListFolders(c.Request.Context(), userID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"folders": folders})
}

func CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	userID := c.GetUint("user_id")
	folder, err := getServices().Folders.CreateFolder(c.Request.Context(), userID, req.Name, req.ParentID)
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, folder)
}

func GetFolderDetails(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.GetUint("user_id")
	details, err := getServices().Folders.GetFolderDetails(c.Request.Context(), userID, folderID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, details)
}

func DeleteFolder(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.GetUint("user_id")
	err := getServices().Folders.DeleteFolder(c.Request.Context(), userID, folderID)
	if respondServiceError(c, err) {
		return
	}
	utils.Message(c, "folder deleted")
}
