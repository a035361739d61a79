package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tsukihara/groupboard-api/internal/dto"
	apierrors "github.com/tsukihara/groupboard-api/internal/errors"
	"github.com/tsukihara/groupboard-api/internal/middleware"
	"github.com/tsukihara/groupboard-api/internal/services"
)

// MessageHandler coordinates chat message HTTP handlers. All routes sit
// behind RequireGroupAccess, so the verified membership is always in context.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// ListMessages returns the group's messages ascending by sent_at.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	messages, err := h.messageService.ListMessages(member)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToMessageDTOs(messages),
	})
}

// GetMessage returns a single message.
func (h *MessageHandler) GetMessage(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("messageId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	message, err := h.messageService.GetMessage(member, messageID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToMessageDTO(*message),
	})
}

// CreateMessage posts a new message to the group channel.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	type CreateMessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.CreateMessage(member, req.Content)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dto.ToMessageDTO(*message),
	})
}

// UpdateMessage edits a message's content. Sender only.
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("messageId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	type UpdateMessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.UpdateMessage(member, messageID, req.Content)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToMessageDTO(*message),
	})
}

// DeleteMessage removes a message. Sender or group admin.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("messageId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	if err := h.messageService.DeleteMessage(member, messageID); err != nil {
		respondMessageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMessageNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotMessageSender),
		errors.Is(err, services.ErrMessageDeleteForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
