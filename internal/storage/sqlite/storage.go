package sqlite

import (
	"context"
	"teamTasks/internal/logger"
	"teamTasks/internal/storage"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Entry - одна строка таблицы kv_store
type Entry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kv_store"
}

type Storage struct {
	db *gorm.DB
}

func Open(path string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open sqlite database '%s'", path)
	}

	s, err := New(db)
	if err != nil {
		return nil, err
	}

	logger.Info("Storage: база SQLite открыта", zap.String("path", path))
	return s, nil
}

func New(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, errors.Wrap(err, "could not migrate kv_store table")
	}
	return &Storage{db: db}, nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sqlDB.PingContext(ctx))
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	var entry Entry
	if err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "could not read key '%s'", key)
	}

	return entry.Value, nil
}

// Put - один upsert, строка заменяется целиком или не меняется вовсе
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	if value == nil {
		value = []byte{}
	}

	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return errors.Wrapf(err, "could not write key '%s'", key)
	}

	return nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sqlDB.Close())
}
