package backend

import (
	"context"
	"net/url"

	"salonbook-client/models"
)

type transactionsEnvelope struct {
	Transactions []models.WalletTransaction `json:"transactions"`
}

type paymentStatusEnvelope struct {
	Status string `json:"status"`
}

// WalletPayIn lists credit transactions.
func (c *Client) WalletPayIn(ctx context.Context) ([]models.WalletTransaction, error) {
	var env transactionsEnvelope
	if err := c.Get(ctx, "/wallet/pay-in", nil, &env); err != nil {
		return nil, err
	}
	return env.Transactions, nil
}

// WalletPayOut lists debit transactions.
func (c *Client) WalletPayOut(ctx context.Context) ([]models.WalletTransaction, error) {
	var env transactionsEnvelope
	if err := c.Get(ctx, "/wallet/pay-out", nil, &env); err != nil {
		return nil, err
	}
	return env.Transactions, nil
}

func (c *Client) TopUp(ctx context.Context, amount float64) (*models.TopUp, error) {
	var topUp models.TopUp
	if err := c.Post(ctx, "/wallet/top-up", map[string]float64{"amount": amount}, &topUp); err != nil {
		return nil, err
	}
	if topUp.Amount == 0 {
		topUp.Amount = amount
	}
	return &topUp, nil
}

func (c *Client) PaymentStatus(ctx context.Context, paymentID string) (string, error) {
	var env paymentStatusEnvelope
	if err := c.Get(ctx, "/payments/"+url.PathEscape(paymentID)+"/status", nil, &env); err != nil {
		return "", err
	}
	return env.Status, nil
}
