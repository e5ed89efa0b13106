package services

import (
	"context"

	"salonbook-client/backend"
	"salonbook-client/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type WalletOverview struct {
	Balance float64                    `json:"balance"`
	Credits []models.WalletTransaction `json:"credits"`
	Debits  []models.WalletTransaction `json:"debits"`
}

type WalletService struct {
	api     *backend.Client
	session *SessionContext
	logger  *zap.Logger
}

func NewWalletService(api *backend.Client, session *SessionContext, logger *zap.Logger) *WalletService {
	return &WalletService{api: api, session: session, logger: logger}
}

// Overview returns the balance from the profile and the two transaction
// lists, fetched side by side.
func (s *WalletService) Overview(ctx context.Context) (*WalletOverview, error) {
	profile := s.session.Profile()
	if profile == nil {
		return nil, ErrNotLoggedIn
	}

	overview := &WalletOverview{Balance: profile.WalletBalance}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		credits, err := s.api.WalletPayIn(gctx)
		overview.Credits = credits
		return err
	})
	g.Go(func() error {
		debits, err := s.api.WalletPayOut(gctx)
		overview.Debits = debits
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if overview.Credits == nil {
		overview.Credits = []models.WalletTransaction{}
	}
	if overview.Debits == nil {
		overview.Debits = []models.WalletTransaction{}
	}
	return overview, nil
}

// TopUp asks the backend for a payment link.
func (s *WalletService) TopUp(ctx context.Context, amount float64) (*models.TopUp, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.session.Profile() == nil {
		return nil, ErrNotLoggedIn
	}
	topUp, err := s.api.TopUp(ctx, amount)
	if err != nil {
		return nil, err
	}
	s.logger.Info("top-up started", zap.String("paymentId", topUp.PaymentID), zap.Float64("amount", amount))
	return topUp, nil
}
