package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"bankflow.backend/internal/domain/entities"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/models"
)

// NotificationRepository implements dispatched-email record operations
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create appends a notification record
func (r *NotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	m := &models.Notification{
		ID:      notification.ID,
		UserID:  notification.UserID,
		Type:    string(notification.Type),
		Title:   notification.Title,
		Content: notification.Content,
	}
	if notification.SentAt.Valid {
		sentAt := notification.SentAt.Time
		m.SentAt = &sentAt
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	notification.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Notification, error) {
	var m models.Notification
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return notificationToEntity(&m), nil
}

// ListByUser lists notifications for a user, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entities.Notification, int64, error) {
	query := r.conn(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notificationModels []models.Notification
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*entities.Notification, 0, len(notificationModels))
	for i := range notificationModels {
		notifications = append(notifications, notificationToEntity(&notificationModels[i]))
	}
	return notifications, total, nil
}

// Delete removes a notification
func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every notification of a user (admin cascade)
func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.conn(ctx).Delete(&models.Notification{}, "user_id = ?", userID).Error
}

func notificationToEntity(m *models.Notification) *entities.Notification {
	return &entities.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      entities.NotificationType(m.Type),
		Title:     m.Title,
		Content:   m.Content,
		SentAt:    null.TimeFromPtr(m.SentAt),
		CreatedAt: m.CreatedAt,
	}
}
