package services

import (
	"context"
	"errors"
	"time"

	"salonbook-client/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys of the device key-value store.
const (
	keyAuthToken = "auth_token"
	keyPushToken = "push_token"
	keyLocation  = "location"
)

// DeviceStore is the persistent key-value storage the app keeps on the
// device.
type DeviceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type GormDeviceStore struct {
	db *gorm.DB
}

func NewGormDeviceStore(db *gorm.DB) *GormDeviceStore {
	return &GormDeviceStore{db: db}
}

func (s *GormDeviceStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.DeviceEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GormDeviceStore) Set(ctx context.Context, key, value string) error {
	entry := models.DeviceEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormDeviceStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.DeviceEntry{}, "key = ?", key).Error
}
