package repository

import (
	"github.com/shopworks/storefront-backend/internal/app/model"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *model.ContactMessage) error
	FindAll(limit, offset int) ([]model.ContactMessage, error)
	FindByID(id uint) (*model.ContactMessage, error)
	MarkRead(id uint) error
	CountUnread() (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *model.ContactMessage) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"email":   message.Email,
		"subject": message.Subject,
	})

	if err := r.db.Create(message).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": message.Email,
		})
		return err
	}
	return nil
}

func (r *contactRepository) FindAll(limit, offset int) ([]model.ContactMessage, error) {
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var messages []model.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		logger.Error("Failed to find contact messages in database", err, nil)
		return nil, err
	}
	return messages, nil
}

func (r *contactRepository) FindByID(id uint) (*model.ContactMessage, error) {
	var message model.ContactMessage
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) MarkRead(id uint) error {
	err := r.db.Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		logger.Error("Failed to mark contact message read in database", err, map[string]interface{}{
			"message_id": id,
		})
		return err
	}
	return nil
}

func (r *contactRepository) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&model.ContactMessage{}).
		Where("is_read = ?", false).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count unread contact messages in database", err, nil)
		return 0, err
	}
	return count, nil
}
