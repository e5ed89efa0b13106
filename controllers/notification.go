package controllers

import (
	"net/http"

	"salonbook-client/models"
	"salonbook-client/services"
	"salonbook-client/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationInput is a push payload handed over by the device.
type NotificationInput struct {
	Title string       `json:"title" binding:"required"`
	Body  string       `json:"body"`
	Data  models.JSONB `json:"data"`
}

type NotificationController struct {
	Notifications *services.NotificationService
}

func (nc *NotificationController) List(c *gin.Context) {
	notifications, err := nc.Notifications.List(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

func (nc *NotificationController) Create(c *gin.Context) {
	var input NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	n, err := nc.Notifications.Record(c.Request.Context(), input.Title, input.Body, input.Data, "")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save notification")
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}
	if err := nc.Notifications.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (nc *NotificationController) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}
	if err := nc.Notifications.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func (nc *NotificationController) Clear(c *gin.Context) {
	if err := nc.Notifications.Clear(c.Request.Context()); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
