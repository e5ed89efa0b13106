package controllers

import (
	"net/http"

	"salonbook-client/models"
	"salonbook-client/services"
	"salonbook-client/utils"

	"github.com/gin-gonic/gin"
)

// ProfileController serves the session, the device registration calls and
// the profile screen.
type ProfileController struct {
	Session *services.SessionContext
}

func (pc *ProfileController) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, pc.Session.Snapshot())
}

// Bootstrap re-runs the start-up sequence, e.g. when the app returns to the
// foreground.
func (pc *ProfileController) Bootstrap(c *gin.Context) {
	c.JSON(http.StatusOK, pc.Session.Bootstrap(c.Request.Context()))
}

func (pc *ProfileController) SetLocation(c *gin.Context) {
	var input models.Location
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	state, err := pc.Session.SetLocation(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (pc *ProfileController) SetPushToken(c *gin.Context) {
	var input services.PushRegistration
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	c.JSON(http.StatusOK, pc.Session.SetPushToken(c.Request.Context(), input))
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile := pc.Session.Profile()
	if profile == nil {
		respondError(c, services.ErrNotLoggedIn)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (pc *ProfileController) RefreshProfile(c *gin.Context) {
	profile, err := pc.Session.RefreshProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}
