package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadmatch/academic-matchmaker/services"
	"github.com/acadmatch/academic-matchmaker/utils"
)

type ChatController struct {
	Chats *services.ChatService
}

func NewChatController(chats *services.ChatService) *ChatController {
	return &ChatController{Chats: chats}
}

// OpenChat -> get-or-create the conversation with a partner
func (cc *ChatController) OpenChat(c *gin.Context) {
	var body struct {
		PartnerID string `json:"partner_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	selfID := c.GetString("user_id")
	chat, err := cc.Chats.GetOrCreate(selfID, body.PartnerID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidParticipants) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chat ready", chat)
}

// GetMyChats -> list the caller's conversations
func (cc *ChatController) GetMyChats(c *gin.Context) {
	chats, err := cc.Chats.ChatsFor(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My chats", chats)
}

// GetMessages -> full ordered history of one chat
func (cc *ChatController) GetMessages(c *gin.Context) {
	chatID := c.Param("chat_id")
	if !cc.requireParticipant(c, chatID) {
		return
	}

	msgs, err := cc.Chats.Messages(chatID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Messages", msgs)
}

// SendMessage -> append to the chat; notification to the other party is
// handled inside the service
func (cc *ChatController) SendMessage(c *gin.Context) {
	chatID := c.Param("chat_id")
	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	msg, err := cc.Chats.SendMessage(chatID, c.GetString("user_id"), body.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChatNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrEmptyMessage):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrNotParticipant):
			utils.RespondError(c, http.StatusForbidden, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Message sent", msg)
}

// DeleteChat -> explicit user deletion, cascades to messages
func (cc *ChatController) DeleteChat(c *gin.Context) {
	chatID := c.Param("chat_id")
	if !cc.requireParticipant(c, chatID) {
		return
	}

	if err := cc.Chats.Delete(chatID); err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chat deleted", gin.H{"chat_id": chatID})
}

// PinChat -> flip the pin flag only
func (cc *ChatController) PinChat(c *gin.Context) {
	chatID := c.Param("chat_id")
	if !cc.requireParticipant(c, chatID) {
		return
	}

	var body struct {
		Pinned *bool `json:"pinned" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := cc.Chats.SetPinned(chatID, *body.Pinned); err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chat pin updated", gin.H{"chat_id": chatID, "pinned": *body.Pinned})
}

func (cc *ChatController) requireParticipant(c *gin.Context, chatID string) bool {
	ok, err := cc.Chats.IsParticipant(chatID, c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return false
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return false
	}
	if !ok {
		utils.RespondError(c, http.StatusForbidden, services.ErrNotParticipant)
		return false
	}
	return true
}
