package repository

import (
	"github.com/tsukihara/groupboard-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindInGroup finds a message by ID scoped to a group, with optional preloading
func (r *GormMessageRepository) FindInGroup(groupID, id uint64, preload ...string) (*models.Message, error) {
	var message models.Message
	query := r.db.Where("group_id = ?", groupID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&message, id).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// ListByGroup lists a group's messages ascending by sent_at. The persisted
// ordering is the source of truth; broadcasts are only a hint to clients.
func (r *GormMessageRepository) ListByGroup(groupID uint64) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.
		Where("group_id = ?", groupID).
		Order("sent_at ASC").
		Preload("Sender").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Update updates a message
func (r *GormMessageRepository) Update(message *models.Message) error {
	return r.db.Save(message).Error
}

// Delete soft deletes a message
func (r *GormMessageRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Message{}, id).Error
}
