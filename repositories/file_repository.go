package repositories

import (
	"context"

	"github.com/Esaius2058/drive-x/models"

	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(_ context.Context, tx *gorm.DB, file *models.File) error {
	return useTx(r.db, tx).Create(file).Error
}

func (r *GormFileRepository) GetByID(_ context.Context, tx *gorm.DB, fileID uint) (models.File, error) {
	var file models.File
	err := useTx(r.db, tx).First(&file, fileID).Error
	return file, err
}

func (r *GormFileRepository) ListRecentByUser(_ context.Context, tx *gorm.DB, userID uint, limit int) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("updated_at DESC").Limit(limit).Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListAllByUser(_ context.Context, tx *gorm.DB, userID uint) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Where("user_id = ?", userID).Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListByFolder(_ context.Context, tx *gorm.DB, userID uint, folderID uint) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Where("user_id = ? AND folder_id = ? AND is_deleted = ?", userID, folderID, false).
		Order("id").Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListByFolderIDs(_ context.Context, tx *gorm.DB, userID uint, folderIDs []uint) ([]models.File, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	var files []models.File
	err := useTx(r.db, tx).Where("user_id = ? AND folder_id IN ?", userID, folderIDs).Find(&files).Error
	return files, err
}

func (r *GormFileRepository) UpdateByID(_ context.Context, tx *gorm.DB, fileID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.File{}).Where("id = ?", fileID).Updates(updates).Error
}

func (r *GormFileRepository) DeleteByID(_ context.Context, tx *gorm.DB, fileID uint) error {
	return useTx(r.db, tx).Delete(&models.File{}, fileID).Error
}

func (r *GormFileRepository) DeleteByFolderIDs(_ context.Context, tx *gorm.DB, userID uint, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("user_id = ? AND folder_id IN ?", userID, folderIDs).Delete(&models.File{}).Error
}

func (r *GormFileRepository) DeleteByUser(_ context.Context, tx *gorm.DB, userID uint) error {
	return useTx(r.db, tx).Where("user_id = ?", userID).Delete(&models.File{}).Error
}

func (r *GormFileRepository) Count(_ context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.File{}).Count(&count).Error
	return count, err
}

func (r *GormFileRepository) SumSize(_ context.Context, tx *gorm.DB) (int64, error) {
	var total int64
	err := useTx(r.db, tx).Model(&models.File{}).
		Select("COALESCE(SUM(size), 0)").Scan(&total).Error
	return total, err
}
