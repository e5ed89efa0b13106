package controllers

import (
	"net/http"

	"salonbook-client/services"

	"github.com/gin-gonic/gin"
)

type TopUpInput struct {
	Amount float64 `json:"amount" binding:"required"`
}

type WalletController struct {
	Wallet *services.WalletService
	Poller *services.PaymentPoller
}

func (wc *WalletController) Overview(c *gin.Context) {
	overview, err := wc.Wallet.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// TopUp returns the external payment link. The renderer opens it and then
// starts watching the payment.
func (wc *WalletController) TopUp(c *gin.Context) {
	var input TopUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, services.ErrInvalidAmount)
		return
	}

	topUp, err := wc.Wallet.TopUp(c.Request.Context(), input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, topUp)
}

func (wc *WalletController) WatchPayment(c *gin.Context) {
	c.JSON(http.StatusAccepted, wc.Poller.Watch(c.Param("id")))
}

func (wc *WalletController) PaymentState(c *gin.Context) {
	state, err := wc.Poller.State(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (wc *WalletController) StopPayment(c *gin.Context) {
	state, err := wc.Poller.Stop(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
