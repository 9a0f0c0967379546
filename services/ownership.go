package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/repositories"

	"gorm.io/gorm"
)

// ownershipGuard binds a mutating or entity-specific read to the
// entity's recorded owner. The entity is fetched by primary key alone:
// a missing row is 404, a row owned by someone else is 403. The check
// runs on every call and is never cached across requests.
type ownershipGuard struct {
	files   repositories.FileRepository
	folders repositories.FolderRepository
}

func (g ownershipGuard) file(ctx context.Context, tx *gorm.DB, fileID uint, requesterID uint) (models.File, error) {
	file, err := g.files.GetByID(ctx, tx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.File{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to query file", err)
	}
	if file.UserID != requesterID {
		return models.File{}, newAppError(http.StatusForbidden, "you do not own this file", nil)
	}
	return file, nil
}

func (g ownershipGuard) folder(ctx context.Context, tx *gorm.DB, folderID uint, requesterID uint) (models.Folder, error) {
	folder, err := g.folders.GetByID(ctx, tx, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Folder{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to query folder", err)
	}
	if folder.UserID != requesterID {
		return models.Folder{}, newAppError(http.StatusForbidden, "you do not own this folder", nil)
	}
	return folder, nil
}
