package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a chat message scoped to a single group. GroupID and SenderID are
// fixed at creation; only Content (and with it Edited) may change afterwards.
type Message struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	GroupID   uint64         `gorm:"not null;index" json:"group_id"`
	SenderID  uint64         `gorm:"not null;index" json:"sender_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	SentAt    time.Time      `gorm:"not null;index" json:"sent_at"`
	Edited    bool           `gorm:"not null;default:false" json:"edited"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Group  Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Sender User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
