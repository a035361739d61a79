package dto

import (
	"time"

	"github.com/tsukihara/groupboard-api/internal/models"
)

// MessageDTO represents a chat message in API responses and broadcasts
type MessageDTO struct {
	ID       uint64    `json:"id"`
	GroupID  uint64    `json:"group_id"`
	SenderID uint64    `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
	Edited   bool      `json:"edited"`
	Sender   *UserDTO  `json:"sender,omitempty"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	dto := MessageDTO{
		ID:       message.ID,
		GroupID:  message.GroupID,
		SenderID: message.SenderID,
		Content:  message.Content,
		SentAt:   message.SentAt,
		Edited:   message.Edited,
	}

	// Include sender if preloaded
	if message.Sender.ID != 0 {
		sender := ToUserDTO(message.Sender)
		dto.Sender = &sender
	}

	return dto
}

// ToMessageDTOs converts a slice of messages preserving order
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = ToMessageDTO(message)
	}
	return dtos
}
