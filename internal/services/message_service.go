package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tsukihara/groupboard-api/internal/authz"
	"github.com/tsukihara/groupboard-api/internal/models"
	"github.com/tsukihara/groupboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound        = errors.New("message not found")
	ErrNotMessageSender       = errors.New("only the sender can edit this message")
	ErrMessageDeleteForbidden = errors.New("only the sender or the group admin can delete this message")
	ErrContentRequired        = errors.New("message content is required")
)

// Notifier receives newly created messages for best-effort fan-out to
// connected clients. Implementations must not block and must never return the
// failure to the caller: persistence success is independent of notification.
type Notifier interface {
	MessageCreated(groupID uint64, message models.Message)
}

// MessageService handles chat message business logic. Callers pass the
// verified membership resolved by the route middleware; the service never
// re-queries membership.
type MessageService struct {
	messageRepo repository.MessageRepository
	notifier    Notifier
}

// NewMessageService creates a new MessageService. notifier may be nil.
func NewMessageService(messageRepo repository.MessageRepository, notifier Notifier) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

// ListMessages returns the member's group messages ascending by sent_at.
// A group without messages yields an empty slice, not an error.
func (s *MessageService) ListMessages(member models.GroupMember) ([]models.Message, error) {
	messages, err := s.messageRepo.ListByGroup(member.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// GetMessage returns a single message in the member's group.
func (s *MessageService) GetMessage(member models.GroupMember, messageID uint64) (*models.Message, error) {
	message, err := s.messageRepo.FindInGroup(member.GroupID, messageID, "Sender")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return message, nil
}

// CreateMessage persists a new message from the member and hands it to the
// notifier. Notification failure never rolls back persistence.
func (s *MessageService) CreateMessage(member models.GroupMember, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	message := &models.Message{
		GroupID:  member.GroupID,
		SenderID: member.UserID,
		Content:  content,
		SentAt:   time.Now(),
		Edited:   false,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	created, err := s.messageRepo.FindInGroup(member.GroupID, message.ID, "Sender")
	if err != nil {
		return nil, fmt.Errorf("failed to reload message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(created.GroupID, *created)
	}

	return created, nil
}

// UpdateMessage replaces a message's content and forces the edited flag.
// Editing is sender-only; the group admin gets no bypass.
func (s *MessageService) UpdateMessage(member models.GroupMember, messageID uint64, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	message, err := s.messageRepo.FindInGroup(member.GroupID, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if !authz.Can(member, message.SenderID, authz.ResourceMessage, authz.ActionUpdate) {
		return nil, ErrNotMessageSender
	}

	message.Content = content
	message.Edited = true

	if err := s.messageRepo.Update(message); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}

	return s.messageRepo.FindInGroup(member.GroupID, message.ID, "Sender")
}

// DeleteMessage removes a message. Permitted for the sender or the group
// admin. Deleting an already-deleted message reports not found.
func (s *MessageService) DeleteMessage(member models.GroupMember, messageID uint64) error {
	message, err := s.messageRepo.FindInGroup(member.GroupID, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to find message: %w", err)
	}

	if !authz.Can(member, message.SenderID, authz.ResourceMessage, authz.ActionDelete) {
		return ErrMessageDeleteForbidden
	}

	if err := s.messageRepo.Delete(message.ID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
