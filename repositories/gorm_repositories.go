package repositories

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type GormRepositories struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewGormRepositories(db *gorm.DB, redisClient *redis.Client) *GormRepositories {
	return &GormRepositories{db: db, redis: redisClient}
}

func (g *GormRepositories) BuildContainer() Container {
	return Container{
		TxManager:     &GormTxManager{db: g.db},
		Users:         NewGormUserRepository(g.db),
		Folders:       NewGormFolderRepository(g.db),
		Files:         NewGormFileRepository(g.db),
		FileLogs:      NewGormFileLogRepository(g.db),
		RevokedTokens: NewRedisRevokedTokenRepository(g.redis),
	}
}

type GormTxManager struct {
	db *gorm.DB
}

func (m *GormTxManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}

func useTx(db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
