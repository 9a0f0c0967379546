package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/repositories"

	"gorm.io/gorm"
)

type folderResolver struct {
	folders repositories.FolderRepository
}

// Every account owns exactly one root folder, created at sign-up. The
// get-or-create fallback covers accounts that predate that rule.
func (r folderResolver) getOrCreateUserRootFolder(ctx context.Context, tx *gorm.DB, userID uint) (models.Folder, error) {
	root, err := r.folders.GetRootByUser(ctx, tx, userID)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Folder{}, err
	}

	isRoot := true
	root = models.Folder{
		Name:   "root",
		UserID: userID,
		IsRoot: &isRoot,
		Path:   "/",
	}
	if err := r.folders.Create(ctx, tx, &root); err != nil {
		return models.Folder{}, err
	}
	return root, nil
}

func buildChildFolderPath(parentPath, childName string) string {
	if parentPath == "" || parentPath == "/" {
		return "/" + childName
	}
	return strings.TrimRight(parentPath, "/") + "/" + childName
}
