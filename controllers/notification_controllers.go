package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadmatch/academic-matchmaker/services"
	"github.com/acadmatch/academic-matchmaker/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GetMyNotifications -> caller's notifications, newest first
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	notifs, err := nc.Notifications.ListFor(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// GetUnreadCount
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	count, err := nc.Notifications.UnreadCount(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"unread": count})
}

// MarkRead -> idempotent
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id := c.Param("notif_id")
	if err := nc.Notifications.MarkRead(id); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked read", gin.H{"notif_id": id})
}
