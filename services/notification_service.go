package services

import (
	"context"
	"errors"

	"salonbook-client/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService keeps push payloads in device storage.
type NotificationService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewNotificationService(db *gorm.DB, logger *zap.Logger) *NotificationService {
	return &NotificationService{db: db, logger: logger}
}

// Record stores one notification. bookingID is set for booking reminders.
func (s *NotificationService) Record(ctx context.Context, title, body string, data models.JSONB, bookingID string) (*models.Notification, error) {
	n := models.Notification{
		Title:     title,
		Body:      body,
		Data:      data,
		BookingID: bookingID,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	s.logger.Debug("notification stored", zap.String("id", n.ID.String()), zap.String("title", title))
	return &n, nil
}

// List returns all notifications, newest first.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.WithContext(ctx).Order("received_at desc").Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Notification{}).Error
}

// HasBookingReminder reports whether a reminder for bookingID was stored.
func (s *NotificationService) HasBookingReminder(ctx context.Context, bookingID string) (bool, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).Select("id").Where("booking_id = ?", bookingID).Take(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
