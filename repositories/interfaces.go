package repositories

import (
	"context"
	"time"

	"github.com/Esaius2058/drive-x/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository interface {
	CountByEmail(ctx context.Context, email string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (models.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, userID uint) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]models.User, error)
}

type FolderRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, folderID uint) (models.Folder, error)
	GetRootByUser(ctx context.Context, tx *gorm.DB, userID uint) (models.Folder, error)
	Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Folder, error)
	ListByParent(ctx context.Context, tx *gorm.DB, userID uint, parentID uint) ([]models.Folder, error)
	CountByParentAndName(ctx context.Context, tx *gorm.DB, userID uint, parentID *uint, name string) (int64, error)
	PluckIDsByPathPrefix(ctx context.Context, tx *gorm.DB, userID uint, rootID uint, rootPath string) ([]uint, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, folderIDs []uint) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

type FileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, file *models.File) error
	GetByID(ctx context.Context, tx *gorm.DB, fileID uint) (models.File, error)
	ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]models.File, error)
	ListAllByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.File, error)
	ListByFolder(ctx context.Context, tx *gorm.DB, userID uint, folderID uint) ([]models.File, error)
	ListByFolderIDs(ctx context.Context, tx *gorm.DB, userID uint, folderIDs []uint) ([]models.File, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, fileID uint, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, fileID uint) error
	DeleteByFolderIDs(ctx context.Context, tx *gorm.DB, userID uint, folderIDs []uint) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	SumSize(ctx context.Context, tx *gorm.DB) (int64, error)
}

type FileLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.FileLog) error
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]models.FileLog, error)
}

// RevokedTokenRepository backs log-out: a revoked bearer token stays
// denied until its natural expiry, after which the entry lapses.
type RevokedTokenRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type Container struct {
	TxManager     TxManager
	Users         UserRepository
	Folders       FolderRepository
	Files         FileRepository
	FileLogs      FileLogRepository
	RevokedTokens RevokedTokenRepository
}
