package handler

import (
	"net/http"

	"hireboard/internal/middleware"
	"hireboard/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Send handles POST /messages {receiverId, content, applicationId?, jobId?}.
func (h *MessageHandler) Send(c *gin.Context) {
	var req service.SendMessageInput
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.svc.Send(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MessageHandler) ListConversations(c *gin.Context) {
	list, err := h.svc.ListConversations(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// GetConversation handles GET /messages/conversation/:userId. Opening a
// conversation marks it read.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	otherID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	res, err := h.svc.GetConversation(c.Request.Context(), middleware.GetUserID(c), otherID, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	otherID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	n, err := h.svc.MarkConversationRead(c.Request.Context(), middleware.GetUserID(c), otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	n, err := h.svc.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": n})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
