package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Esaius2058/drive-x/config"
	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/services"
	"github.com/Esaius2058/drive-x/utils"

	"github.com/gin-gonic/gin"
)

type RenameFileRequest struct {
	Name string `json:"newName" binding:"required"`
}

func parseFolderIDForm(c *gin.Context) (*uint, bool) {
	raw := c.PostForm("folderid")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "invalid folderid")
		return nil, false
	}
	folderID := uint(id)
	return &folderID, true
}

func readUploadPart(header *multipart.FileHeader) (services.UploadInput, error) {
	part, err := header.Open()
	if err != nil {
		return services.UploadInput{}, err
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return services.UploadInput{}, err
	}

	return services.UploadInput{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// UploadFile stores a single multipart file. Size is checked against
// the declared header before any bytes are read, so an oversized
// upload never reaches the object store.
func UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "missing upload file")
		return
	}

	if header.Size > config.AppConfig.Storage.MaxFileSize {
		utils.Error(c, http.StatusBadRequest,
			fmt.Sprintf("file exceeds the %d byte limit", config.AppConfig.Storage.MaxFileSize))
		return
	}

	folderID, ok := parseFolderIDForm(c)
	if !ok {
		return
	}

	in, err := readUploadPart(header)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to read upload file")
		return
	}
	in.FolderID = folderID

	userID := c.GetUint("user_id")
	file, err := getServices().Files.Upload(c.Request.Context(), userID, in)
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, file)
}

// UploadFiles stores up to the configured number of multipart files in
// one request. The whole batch is size-checked first; one bad file
// rejects the batch before anything is stored.
func UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		utils.Error(c, http.StatusBadRequest, "no upload files provided")
		return
	}
	maxFiles := config.AppConfig.Storage.MaxUploadFiles
	if len(headers) > maxFiles {
		utils.Error(c, http.StatusBadRequest,
			fmt.Sprintf("at most %d files per upload", maxFiles))
		return
	}
	for _, h := range headers {
		if h.Size > config.AppConfig.Storage.MaxFileSize {
			utils.Error(c, http.StatusBadRequest,
				fmt.Sprintf("%s exceeds the %d byte limit", h.Filename, config.AppConfig.Storage.MaxFileSize))
			return
		}
	}

	folderID, ok := parseFolderIDForm(c)
	if !ok {
		return
	}

	userID := c.GetUint("user_id")
	uploaded := make([]models.File, 0, len(headers))
	for _, h := range headers {
		in, err := readUploadPart(h)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "failed to read upload file "+h.Filename)
			return
		}
		in.FolderID = folderID

		file, err := getServices().Files.Upload(c.Request.Context(), userID, in)
		if respondServiceError(c, err) {
			return
		}
		uploaded = append(uploaded, file)
	}
	utils.Created(c, gin.H{"files": uploaded})
}

func DownloadFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.GetUint("user_id")
	out, err := getServices().Files.Download(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func RenameFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RenameFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	userID := c.GetUint("user_id")
	file, err := getServices().Files.Rename(c.Request.Context(), userID, fileID, req.Name)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, file)
}

func ToggleFileTrash(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.GetUint("user_id")
	file, err := getServices().Files.ToggleTrash(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}
	message := "file restored"
	if file.IsDeleted {
		message = "file moved to trash"
	}
	utils.Success(c, gin.H{"message": message, "file": file})
}

func DeleteFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.GetUint("user_id")
	err := getServices().Files.PermanentDelete(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}
	utils.Message(c, "file deleted")
}
