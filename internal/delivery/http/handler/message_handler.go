package handler

import (
	"net/http"

	"hamrah-bazaar/internal/usecase/message"
	"hamrah-bazaar/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *message.Service
}

func NewMessageHandler(service *message.Service) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup) {
	messages := router.Group("/messages")
	{
		messages.POST("", h.Send)
		messages.GET("", h.Inbox)
		messages.GET("/unread-count", h.UnreadCount)
		messages.GET("/conversation/:listing_id/:user_id", h.Conversation)
		messages.POST("/:message_id/read", h.MarkRead)
	}
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req message.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sent, err := h.service.Send(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Message sent successfully", sent)
}

func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	messages, err := h.service.Inbox(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully", messages)
}

func (h *MessageHandler) Conversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}
	otherID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	messages, err := h.service.Conversation(c.Request.Context(), listingID, userID, otherID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Conversation retrieved successfully", messages)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "message_id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), messageID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message marked as read", nil)
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unread count retrieved successfully", count)
}
