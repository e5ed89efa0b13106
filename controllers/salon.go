package controllers

import (
	"net/http"

	"salonbook-client/services"

	"github.com/gin-gonic/gin"
)

type SalonController struct {
	Salons *services.SalonService
}

func (sc *SalonController) Nearby(c *gin.Context) {
	salons, err := sc.Salons.Nearby(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salons": salons})
}

func (sc *SalonController) MostReviewed(c *gin.Context) {
	salons, err := sc.Salons.MostReviewed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salons": salons})
}

func (sc *SalonController) Detail(c *gin.Context) {
	salon, err := sc.Salons.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salon": salon})
}

// GET /places/autocomplete?input=
func (sc *SalonController) Autocomplete(c *gin.Context) {
	predictions, err := sc.Salons.Autocomplete(c.Request.Context(), c.Query("input"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
