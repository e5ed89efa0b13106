package controllers

import (
	"net/http"

	"salonbook-client/services"

	"github.com/gin-gonic/gin"
)

type InviteInput struct {
	Mobile string `json:"mobile" binding:"required"`
}

// InviteController is nil-safe: without Twilio credentials Invites is nil
// and the endpoint answers 503.
type InviteController struct {
	Invites *services.InviteService
}

func (ic *InviteController) Invite(c *gin.Context) {
	if ic.Invites == nil {
		respondError(c, services.ErrInvitesDisabled)
		return
	}

	var input InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, services.ErrInvalidPhone)
		return
	}

	result, err := ic.Invites.Invite(input.Mobile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Invite sent",
		"invite":  result,
	})
}
