package controllers

import (
	"errors"
	"net/http"

	"salonbook-client/backend"
	"salonbook-client/config"
	"salonbook-client/services"
	"salonbook-client/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgLoginRequired = "Please log in to continue."

// respondError turns a service or backend error into the alert envelope.
func respondError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		utils.RespondWithRedirect(c, http.StatusUnauthorized, msgLoginRequired, services.RouteWelcome)
	case services.IsNotFound(err):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case services.IsValidation(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrMapsUnavailable), errors.Is(err, services.ErrInvitesDisabled):
		utils.RespondWithError(c, http.StatusServiceUnavailable, "This feature is not available right now.")
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			utils.RespondWithRedirect(c, apiErr.Status, apiErr.Message, services.RouteWelcome)
		case apiErr.Status >= 400 && apiErr.Status < 500:
			utils.RespondWithError(c, apiErr.Status, apiErr.Message)
		default:
			// Marketplace outages surface like transport failures.
			config.GetLogger().Warn("backend error",
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", apiErr.Status),
			)
			utils.RespondWithError(c, http.StatusBadGateway, apiErr.Message)
		}
	default:
		config.GetLogger().Warn("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.RespondWithError(c, http.StatusBadGateway, backend.AlertMessage(err))
	}
}

// RequireLogin stops requests for screens that need a signed-in user.
func RequireLogin(session *services.SessionContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.Profile() == nil {
			utils.RespondWithRedirect(c, http.StatusUnauthorized, msgLoginRequired, services.RouteWelcome)
			return
		}
		c.Next()
	}
}
