package controllers

import (
	"net/http"

	"salonbook-client/services"

	"github.com/gin-gonic/gin"
)

type SendOTPInput struct {
	Mobile string `json:"mobile" binding:"required"`
}

type VerifyOTPInput struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

type AuthController struct {
	Session *services.SessionContext
}

// controllers/auth.go
func (ac *AuthController) SendOTP(c *gin.Context) {
	var input SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, services.ErrInvalidPhone)
		return
	}

	if err := ac.Session.SendOTP(c.Request.Context(), input.Mobile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var input VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, services.ErrInvalidOTP)
		return
	}

	profile, err := ac.Session.VerifyOTP(c.Request.Context(), input.Mobile, input.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    profile,
		"session": ac.Session.Snapshot(),
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.Session.Logout(c.Request.Context())
	c.JSON(http.StatusOK, ac.Session.Snapshot())
}
