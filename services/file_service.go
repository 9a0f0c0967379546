package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Esaius2058/drive-x/config"
	"github.com/Esaius2058/drive-x/logger"
	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/repositories"
	"github.com/Esaius2058/drive-x/storage"

	"gorm.io/gorm"
)

type UploadInput struct {
	Name     string
	MimeType string
	FolderID *uint
	Data     []byte
}

type DownloadOutput struct {
	URL       string `json:"signedUrl"`
	ExpiresIn int    `json:"expires_in"`
}

type FileService interface {
	Upload(ctx context.Context, userID uint, in UploadInput) (models.File, error)
	Download(ctx context.Context, userID uint, fileID uint) (DownloadOutput, error)
	Rename(ctx context.Context, userID uint, fileID uint, newName string) (models.File, error)
	ToggleTrash(ctx context.Context, userID uint, fileID uint) (models.File, error)
	PermanentDelete(ctx context.Context, userID uint, fileID uint) error
}

type fileService struct {
	txManager TxManager
	files     repositories.FileRepository
	folders   repositories.FolderRepository
	fileLogs  repositories.FileLogRepository
	objects   storage.ObjectStore
	guard     ownershipGuard
	resolver  folderResolver
}

func NewFileService(
	txManager TxManager,
	files repositories.FileRepository,
	folders repositories.FolderRepository,
	fileLogs repositories.FileLogRepository,
	objects storage.ObjectStore,
) FileService {
	return &fileService{
		txManager: txManager,
		files:     files,
		folders:   folders,
		fileLogs:  fileLogs,
		objects:   objects,
		guard:     ownershipGuard{files: files, folders: folders},
		resolver:  folderResolver{folders: folders},
	}
}

// Upload validates before any blob write, stores the blob, then commits
// metadata and the audit entry in one transaction. A failed commit
// deletes the just-written blob so no orphan survives the request.
func (s *fileService) Upload(ctx context.Context, userID uint, in UploadInput) (models.File, error) {
	size := int64(len(in.Data))
	if size == 0 {
		return models.File{}, newAppError(http.StatusBadRequest, "file is empty", nil)
	}
	if maxSize := config.AppConfig.Storage.MaxFileSize; size > maxSize {
		return models.File{}, newAppError(http.StatusBadRequest,
			fmt.Sprintf("file exceeds the %d byte limit", maxSize), nil)
	}
	if !isMimeTypeAllowed(in.MimeType) {
		return models.File{}, newAppError(http.StatusBadRequest, "file type is not allowed", nil)
	}

	var folderID uint
	if in.FolderID != nil {
		folder, err := s.guard.folder(ctx, nil, *in.FolderID, userID)
		if err != nil {
			return models.File{}, err
		}
		folderID = folder.ID
	} else {
		root, err := s.resolver.getOrCreateUserRootFolder(ctx, nil, userID)
		if err != nil {
			return models.File{}, newAppError(http.StatusInternalServerError, "failed to resolve root folder", err)
		}
		folderID = root.ID
	}

	file := models.File{
		Name:        sanitizeFilename(in.Name),
		UserID:      userID,
		FolderID:    &folderID,
		Size:        size,
		MimeType:    in.MimeType,
		StoragePath: buildStorageKey(userID, in.Name),
	}
	if isImageMimeType(in.MimeType) {
		if w, h, ok := imageDimensions(in.Data); ok {
			file.Width = w
			file.Height = h
		}
	}

	if err := s.objects.Put(ctx, file.StoragePath, in.MimeType, bytes.NewReader(in.Data)); err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to store file", err)
	}

	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.files.Create(ctx, tx, &file); err != nil {
			return err
		}
		return s.fileLogs.Create(ctx, tx, &models.FileLog{
			FileID:   file.ID,
			UserID:   userID,
			Action:   models.FileActionCreated,
			NewValue: file.Name,
		})
	})
	if err != nil {
		if delErr := s.objects.Delete(ctx, file.StoragePath); delErr != nil {
			logger.Errorf("orphaned blob %s after failed upload commit: %v", file.StoragePath, delErr)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to save file", err)
	}
	return file, nil
}

// Download never streams bytes through the API. It answers with a
// signed URL whose lifetime comes from configuration.
func (s *fileService) Download(ctx context.Context, userID uint, fileID uint) (DownloadOutput, error) {
	file, err := s.guard.file(ctx, nil, fileID, userID)
	if err != nil {
		return DownloadOutput{}, err
	}
	if file.IsDeleted {
		return DownloadOutput{}, newAppError(http.StatusBadRequest, "file is in trash", nil)
	}

	ttl := time.Duration(config.AppConfig.Storage.SignedURLTTL) * time.Second
	url, err := s.objects.SignedURL(ctx, file.StoragePath, ttl)
	if err != nil {
		return DownloadOutput{}, newAppError(http.StatusInternalServerError, "failed to sign download url", err)
	}
	return DownloadOutput{URL: url, ExpiresIn: int(ttl.Seconds())}, nil
}

// Rename changes display metadata only; the storage key is immutable
// for the life of the file. Renaming to the current name is a no-op
// that still succeeds.
func (s *fileService) Rename(ctx context.Context, userID uint, fileID uint, newName string) (models.File, error) {
	file, err := s.guard.file(ctx, nil, fileID, userID)
	if err != nil {
		return models.File{}, err
	}

	newName = sanitizeFilename(newName)
	if newName == file.Name {
		return file, nil
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.files.UpdateByID(ctx, tx, file.ID, map[string]interface{}{"name": newName}); err != nil {
			return err
		}
		return s.fileLogs.Create(ctx, tx, &models.FileLog{
			FileID:   file.ID,
			UserID:   userID,
			Action:   models.FileActionRenamed,
			OldValue: file.Name,
			NewValue: newName,
		})
	})
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to rename file", err)
	}
	file.Name = newName
	return file, nil
}

// ToggleTrash flips the trash flag. Trash is reversible metadata; the
// blob stays in place either way.
func (s *fileService) ToggleTrash(ctx context.Context, userID uint, fileID uint) (models.File, error) {
	file, err := s.guard.file(ctx, nil, fileID, userID)
	if err != nil {
		return models.File{}, err
	}

	newState := !file.IsDeleted
	action := models.FileActionTrashed
	if !newState {
		action = models.FileActionRestored
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.files.UpdateByID(ctx, tx, file.ID, map[string]interface{}{"is_deleted": newState}); err != nil {
			return err
		}
		return s.fileLogs.Create(ctx, tx, &models.FileLog{
			FileID:   file.ID,
			UserID:   userID,
			Action:   action,
			NewValue: file.Name,
		})
	})
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to update file", err)
	}
	file.IsDeleted = newState
	return file, nil
}

// PermanentDelete removes the row and logs the deletion atomically,
// then removes the blob. The audit entry outlives the file. Blob
// removal failures are logged and swallowed: the row is gone, so the
// blob is unreachable and can be swept later.
func (s *fileService) PermanentDelete(ctx context.Context, userID uint, fileID uint) error {
	file, err := s.guard.file(ctx, nil, fileID, userID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.files.DeleteByID(ctx, tx, file.ID); err != nil {
			return err
		}
		return s.fileLogs.Create(ctx, tx, &models.FileLog{
			FileID:   file.ID,
			UserID:   userID,
			Action:   models.FileActionDeleted,
			OldValue: file.Name,
		})
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete file", err)
	}

	if err := s.objects.Delete(ctx, file.StoragePath); err != nil {
		logger.Errorf("file %d deleted but blob %s remains: %v", file.ID, file.StoragePath, err)
	}
	return nil
}
