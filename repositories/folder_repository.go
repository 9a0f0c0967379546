package repositories

import (
	"context"
	"strings"

	"github.com/Esaius2058/drive-x/models"

	"gorm.io/gorm"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) GetByID(_ context.Context, tx *gorm.DB, folderID uint) (models.Folder, error) {
	var folder models.Folder
	err := useTx(r.db, tx).First(&folder, folderID).Error
	return folder, err
}

func (r *GormFolderRepository) GetRootByUser(_ context.Context, tx *gorm.DB, userID uint) (models.Folder, error) {
	var folder models.Folder
	err := useTx(r.db, tx).Where("user_id = ? AND is_root = ?", userID, true).First(&folder).Error
	return folder, err
}

func (r *GormFolderRepository) Create(_ context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(r.db, tx).Create(folder).Error
}

func (r *GormFolderRepository) ListByUser(_ context.Context, tx *gorm.DB, userID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := useTx(r.db, tx).Where("user_id = ?", userID).Order("id").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListByParent(_ context.Context, tx *gorm.DB, userID uint, parentID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := useTx(r.db, tx).Where("user_id = ? AND parent_id = ?", userID, parentID).Order("id").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) CountByParentAndName(_ context.Context, tx *gorm.DB, userID uint, parentID *uint, name string) (int64, error) {
	query := useTx(r.db, tx).Model(&models.Folder{}).Where("user_id = ? AND name = ?", userID, name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// escapeLikePattern neutralizes LIKE metacharacters in a literal path
// so folder names containing % or _ cannot widen the match. The escape
// character is "!" because a quoted backslash is read differently by
// MySQL and SQLite.
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}

// PluckIDsByPathPrefix returns the folder itself plus every descendant,
// resolved through the materialized path. The path is matched as a
// literal prefix; a folder named "d%" must never capture "/docs".
func (r *GormFolderRepository) PluckIDsByPathPrefix(_ context.Context, tx *gorm.DB, userID uint, rootID uint, rootPath string) ([]uint, error) {
	var ids []uint
	err := useTx(r.db, tx).Model(&models.Folder{}).
		Where("user_id = ? AND (id = ? OR path LIKE ? ESCAPE '!')", userID, rootID, escapeLikePattern(rootPath)+"/%").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GormFolderRepository) DeleteByIDs(_ context.Context, tx *gorm.DB, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("id IN ?", folderIDs).Delete(&models.Folder{}).Error
}

func (r *GormFolderRepository) DeleteByUser(_ context.Context, tx *gorm.DB, userID uint) error {
	return useTx(r.db, tx).Where("user_id = ?", userID).Delete(&models.Folder{}).Error
}
