package services

import (
	"context"
	"net/http"

	"github.com/Esaius2058/drive-x/logger"
	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/repositories"
	"github.com/Esaius2058/drive-x/storage"
	"github.com/Esaius2058/drive-x/utils"

	"gorm.io/gorm"
)

type FolderDetails struct {
	Folder     models.Folder   `json:"folder"`
	Files      []models.File   `json:"files"`
	Subfolders []models.Folder `json:"subfolders"`
}

type FolderService interface {
	ListFolders(ctx context.Context, userID uint) ([]models.Folder, error)
	CreateFolder(ctx context.Context, userID uint, name string, parentID *uint) (models.Folder, error)
	GetFolderDetails(ctx context.Context, userID uint, folderID uint) (FolderDetails, error)
	DeleteFolder(ctx context.Context, userID uint, folderID uint) error
}

type folderService struct {
	txManager TxManager
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	objects   storage.ObjectStore
	guard     ownershipGuard
	resolver  folderResolver
}

func NewFolderService(
	txManager TxManager,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	objects storage.ObjectStore,
) FolderService {
	return &folderService{
		txManager: txManager,
		folders:   folders,
		files:     files,
		objects:   objects,
		guard:     ownershipGuard{files: files, folders: folders},
		resolver:  folderResolver{folders: folders},
	}
}

func (s *folderService) ListFolders(ctx context.Context, userID uint) ([]models.Folder, error) {
	folders, err := s.folders.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to list folders", err)
	}
	return folders, nil
}

// CreateFolder places the new folder under the given parent, or under
// the account root when no parent is named. Sibling names must be
// unique within a parent.
func (s *folderService) CreateFolder(ctx context.Context, userID uint, name string, parentID *uint) (models.Folder, error) {
	if err := utils.ValidateFolderName(name); err != nil {
		return models.Folder{}, newAppError(http.StatusBadRequest, err.Error(), nil)
	}

	var parent models.Folder
	if parentID != nil {
		p, err := s.guard.folder(ctx, nil, *parentID, userID)
		if err != nil {
			return models.Folder{}, err
		}
		parent = p
	} else {
		root, err := s.resolver.getOrCreateUserRootFolder(ctx, nil, userID)
		if err != nil {
			return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to resolve root folder", err)
		}
		parent = root
	}

	count, err := s.folders.CountByParentAndName(ctx, nil, userID, &parent.ID, name)
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to check folder name", err)
	}
	if count > 0 {
		return models.Folder{}, newAppError(http.StatusBadRequest, "a folder with this name already exists here", nil)
	}

	folder := models.Folder{
		Name:     name,
		ParentID: &parent.ID,
		UserID:   userID,
		Path:     buildChildFolderPath(parent.Path, name),
	}
	if err := s.folders.Create(ctx, nil, &folder); err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to create folder", err)
	}
	return folder, nil
}

// GetFolderDetails returns the folder with its direct files and direct
// subfolders. Descendants deeper than one level are not expanded.
func (s *folderService) GetFolderDetails(ctx context.Context, userID uint, folderID uint) (FolderDetails, error) {
	folder, err := s.guard.folder(ctx, nil, folderID, userID)
	if err != nil {
		return FolderDetails{}, err
	}

	files, err := s.files.ListByFolder(ctx, nil, userID, folder.ID)
	if err != nil {
		return FolderDetails{}, newAppError(http.StatusInternalServerError, "failed to list files", err)
	}
	subfolders, err := s.folders.ListByParent(ctx, nil, userID, folder.ID)
	if err != nil {
		return FolderDetails{}, newAppError(http.StatusInternalServerError, "failed to list subfolders", err)
	}

	return FolderDetails{Folder: folder, Files: files, Subfolders: subfolders}, nil
}

// DeleteFolder removes the folder and everything beneath it. The
// subtree is resolved through the materialized path, rows go in one
// transaction, and blobs are cleared afterwards best effort. The root
// folder cannot be deleted.
func (s *folderService) DeleteFolder(ctx context.Context, userID uint, folderID uint) error {
	folder, err := s.guard.folder(ctx, nil, folderID, userID)
	if err != nil {
		return err
	}
	if folder.IsRoot != nil && *folder.IsRoot {
		return newAppError(http.StatusBadRequest, "the root folder cannot be deleted", nil)
	}

	folderIDs, err := s.folders.PluckIDsByPathPrefix(ctx, nil, userID, folder.ID, folder.Path)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to resolve folder tree", err)
	}

	files, err := s.files.ListByFolderIDs(ctx, nil, userID, folderIDs)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to list files", err)
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.files.DeleteByFolderIDs(ctx, tx, userID, folderIDs); err != nil {
			return err
		}
		return s.folders.DeleteByIDs(ctx, tx, folderIDs)
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete folder", err)
	}

	for _, f := range files {
		if err := s.objects.Delete(ctx, f.StoragePath); err != nil {
			logger.Errorf("folder %d deleted but blob %s remains: %v", folder.ID, f.StoragePath, err)
		}
	}
	return nil
}
