package controllers

import (
	"net/http"

	"salonbook-client/models"
	"salonbook-client/services"
	"salonbook-client/utils"

	"github.com/gin-gonic/gin"
)

// StartCheckoutInput is the salon and cart carried over from the salon
// screen.
type StartCheckoutInput struct {
	Salon    models.Salon             `json:"salon"`
	Services []models.SelectedService `json:"services" binding:"required"`
}

type QuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type DateInput struct {
	Date string `json:"date" binding:"required"`
}

type TimeInput struct {
	Time string `json:"time" binding:"required"`
}

type SeatInput struct {
	Seat int `json:"seatNumber" binding:"required,min=1"`
}

type PromoInput struct {
	Code string `json:"code"`
}

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func (cc *CheckoutController) Start(c *gin.Context) {
	var input StartCheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Salon.ID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	view, err := cc.Checkout.Start(input.Salon, input.Services)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (cc *CheckoutController) View(c *gin.Context) {
	respondView(c)(cc.Checkout.Current())
}

func (cc *CheckoutController) Discard(c *gin.Context) {
	cc.Checkout.Discard()
	c.JSON(http.StatusOK, gin.H{"message": "Checkout discarded"})
}

func (cc *CheckoutController) Dates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dates": cc.Checkout.Dates()})
}

func (cc *CheckoutController) SetQuantity(c *gin.Context) {
	var input QuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	respondView(c)(cc.Checkout.SetQuantity(c.Param("serviceId"), *input.Quantity))
}

func (cc *CheckoutController) SelectDate(c *gin.Context) {
	var input DateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, services.ErrInvalidDate)
		return
	}
	respondView(c)(cc.Checkout.SelectDate(c.Request.Context(), input.Date))
}

func (cc *CheckoutController) SelectTime(c *gin.Context) {
	var input TimeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, services.ErrUnknownTime)
		return
	}
	respondView(c)(cc.Checkout.SelectTime(input.Time))
}

func (cc *CheckoutController) SelectSeat(c *gin.Context) {
	var input SeatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, services.ErrSeatUnavailable)
		return
	}
	respondView(c)(cc.Checkout.SelectSeat(input.Seat))
}

func (cc *CheckoutController) ApplyPromo(c *gin.Context) {
	var input PromoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	respondView(c)(cc.Checkout.ApplyPromo(input.Code))
}

// Confirm books the selection. On success the renderer goes to the booking
// list.
func (cc *CheckoutController) Confirm(c *gin.Context) {
	booking, err := cc.Checkout.Confirm(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed",
		"booking": booking,
		"route":   "bookings",
	})
}

func respondView(c *gin.Context) func(services.CheckoutView, error) {
	return func(view services.CheckoutView, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
