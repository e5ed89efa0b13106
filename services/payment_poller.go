package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"salonbook-client/models"

	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 15 * time.Second
	DefaultPollTimeout  = 180 * time.Second
)

// PaymentStatusFetcher is the one backend call the poller needs.
type PaymentStatusFetcher interface {
	PaymentStatus(ctx context.Context, paymentID string) (string, error)
}

// PaymentWatch is the state of one payment being polled.
type PaymentWatch struct {
	PaymentID  string     `json:"paymentId"`
	Status     string     `json:"status"`
	Polls      int        `json:"polls"`
	Done       bool       `json:"done"`
	TimedOut   bool       `json:"timedOut"`
	Stopped    bool       `json:"stopped"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

type watch struct {
	state  PaymentWatch
	cancel context.CancelFunc
	done   chan struct{}
}

// PaymentPoller polls payment status after the user returns from the
// external payment page. Each watch stops on Approved or Failed, on timeout,
// or on Stop, and every exit path releases its ticker and deadline timer.
type PaymentPoller struct {
	fetcher    PaymentStatusFetcher
	onApproved func(ctx context.Context)
	interval   time.Duration
	timeout    time.Duration
	logger     *zap.Logger

	mu      sync.Mutex
	watches map[string]*watch
	wg      sync.WaitGroup
}

func NewPaymentPoller(fetcher PaymentStatusFetcher, interval, timeout time.Duration, logger *zap.Logger) *PaymentPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	return &PaymentPoller{
		fetcher:  fetcher,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		watches:  make(map[string]*watch),
	}
}

// OnApproved registers a callback run once per approved payment, typically
// a profile refresh so the new balance shows.
func (p *PaymentPoller) OnApproved(fn func(ctx context.Context)) {
	p.onApproved = fn
}

// Watch starts polling paymentID. Watching a payment that is already being
// polled returns its current state.
func (p *PaymentPoller) Watch(paymentID string) PaymentWatch {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.watches[paymentID]; ok && !w.state.Done {
		return w.state
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	w := &watch{
		state: PaymentWatch{
			PaymentID: paymentID,
			Status:    models.PaymentPending,
			StartedAt: time.Now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}
	p.watches[paymentID] = w

	p.wg.Add(1)
	go p.run(ctx, w)
	return w.state
}

func (p *PaymentPoller) State(paymentID string) (PaymentWatch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, ok := p.watches[paymentID]
	if !ok {
		return PaymentWatch{}, ErrPaymentNotWatched
	}
	return w.state, nil
}

// Stop ends a watch, e.g. when the payment screen goes away.
func (p *PaymentPoller) Stop(paymentID string) (PaymentWatch, error) {
	p.mu.Lock()
	w, ok := p.watches[paymentID]
	p.mu.Unlock()
	if !ok {
		return PaymentWatch{}, ErrPaymentNotWatched
	}
	w.cancel()
	<-w.done

	p.mu.Lock()
	defer p.mu.Unlock()
	return w.state, nil
}

// Shutdown stops every watch and waits for the pollers to exit.
func (p *PaymentPoller) Shutdown() {
	p.mu.Lock()
	for _, w := range p.watches {
		w.cancel()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *PaymentPoller) run(ctx context.Context, w *watch) {
	defer p.wg.Done()
	paymentID := w.state.PaymentID

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.expire(ctx, w)
			return
		case <-ticker.C:
			status, err := p.fetcher.PaymentStatus(ctx, paymentID)
			p.mu.Lock()
			w.state.Polls++
			p.mu.Unlock()
			// A reply that lands after the deadline or a Stop is discarded.
			if ctx.Err() != nil {
				p.expire(ctx, w)
				return
			}
			if err != nil {
				p.logger.Warn("payment status poll failed", zap.String("paymentId", paymentID), zap.Error(err))
				continue
			}
			if !models.IsTerminalPaymentStatus(status) {
				continue
			}

			p.logger.Info("payment resolved", zap.String("paymentId", paymentID), zap.String("status", status))
			p.finish(w, func(s *PaymentWatch) { s.Status = status })
			if status == models.PaymentApproved && p.onApproved != nil {
				p.onApproved(context.WithoutCancel(ctx))
			}
			return
		}
	}
}

// expire ends a watch whose context is done: timed out when the deadline
// passed, stopped otherwise.
func (p *PaymentPoller) expire(ctx context.Context, w *watch) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		p.logger.Info("payment poll timed out", zap.String("paymentId", w.state.PaymentID))
		p.finish(w, func(s *PaymentWatch) { s.TimedOut = true })
		return
	}
	p.finish(w, func(s *PaymentWatch) { s.Stopped = true })
}

func (p *PaymentPoller) finish(w *watch, apply func(s *PaymentWatch)) {
	p.mu.Lock()
	apply(&w.state)
	now := time.Now()
	w.state.Done = true
	w.state.FinishedAt = &now
	p.mu.Unlock()

	w.cancel()
	close(w.done)
}
