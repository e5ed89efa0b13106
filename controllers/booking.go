package controllers

import (
	"net/http"

	"salonbook-client/services"
	"salonbook-client/utils"

	"github.com/gin-gonic/gin"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type BookingController struct {
	Bookings *services.BookingService
}

// GET /bookings?status=Confirmed
func (bc *BookingController) List(c *gin.Context) {
	bookings, err := bc.Bookings.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (bc *BookingController) Refresh(c *gin.Context) {
	bookings, err := bc.Bookings.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (bc *BookingController) Cancel(c *gin.Context) {
	bookings, err := bc.Bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Booking cancelled",
		"bookings": bookings,
	})
}

func (bc *BookingController) Review(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, services.ErrInvalidRating.Error())
		return
	}

	if err := bc.Bookings.SubmitReview(c.Request.Context(), c.Param("id"), input.Rating, input.Comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for your review"})
}
