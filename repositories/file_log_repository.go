package repositories

import (
	"context"

	"github.com/Esaius2058/drive-x/models"

	"gorm.io/gorm"
)

type GormFileLogRepository struct {
	db *gorm.DB
}

func NewGormFileLogRepository(db *gorm.DB) *GormFileLogRepository {
	return &GormFileLogRepository{db: db}
}

func (r *GormFileLogRepository) Create(_ context.Context, tx *gorm.DB, entry *models.FileLog) error {
	return useTx(r.db, tx).Create(entry).Error
}

func (r *GormFileLogRepository) ListRecent(_ context.Context, tx *gorm.DB, limit int) ([]models.FileLog, error) {
	var logs []models.FileLog
	err := useTx(r.db, tx).Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
