package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"starpro_store/internal/model"
	"starpro_store/internal/repository"
	"starpro_store/internal/view"

	"github.com/shopspring/decimal"
)

var (
	ErrNoSession            = errors.New("no active session")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrEmptyItem            = errors.New("order must contain at least one item")
	ErrSubmissionInProgress = errors.New("an order is already being submitted")
)

// DefaultOrderDelay is the processing time before a submitted order is committed.
const DefaultOrderDelay = 1500 * time.Millisecond

// SubmissionState is the state of the order form.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateCommitted  SubmissionState = "committed"
)

// OrderReceipt describes a committed order.
type OrderReceipt struct {
	Order        model.Order   `json:"order"`
	TotalDisplay string        `json:"total_display"`
	Notification *Notification `json:"notification,omitempty"`
}

// Submission is a pending order. The commit always runs to completion once
// started; Wait only stops the caller from waiting.
type Submission struct {
	done    chan struct{}
	receipt *OrderReceipt
	err     error
}

// Done is closed once the order has been committed or has failed to persist.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Wait blocks until the order is committed or ctx is done.
func (s *Submission) Wait(ctx context.Context) (*OrderReceipt, error) {
	select {
	case <-s.done:
		return s.receipt, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OrderService places orders for the current session and lists them.
type OrderService interface {
	Submit(ctx context.Context, req model.CreateOrderRequest) (*Submission, error)
	State() SubmissionState
	List(ctx context.Context) ([]model.Order, *model.Session, error)
}

type orderService struct {
	mu    sync.Mutex
	state SubmissionState

	store    *repository.RecordStore
	sessions *repository.SessionHolder
	notifier Notifier
	delay    time.Duration
	logger   *slog.Logger
}

// NewOrderService creates a new OrderService. A nil notifier re-renders in place.
func NewOrderService(store *repository.RecordStore, sessions *repository.SessionHolder, notifier Notifier, delay time.Duration, logger *slog.Logger) OrderService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if delay < 0 {
		delay = 0
	}
	return &orderService{
		state:    StateIdle,
		store:    store,
		sessions: sessions,
		notifier: notifier,
		delay:    delay,
		logger:   logger,
	}
}

func (s *orderService) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit validates the order and moves the form to Submitting. The order is
// built and persisted after the processing delay; the form accepts new
// submissions again once it is Committed.
func (s *orderService) Submit(ctx context.Context, req model.CreateOrderRequest) (*Submission, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	items := orderItems(req)
	if len(items) == 0 {
		return nil, ErrEmptyItem
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	order := model.Order{
		CustomerName:  sess.Name,
		CustomerPhone: sess.Phone,
		Items:         items,
		Total:         amount,
		Status:        model.OrderStatusPlaced,
		PaymentStatus: model.PaymentStatusSuccess,
		Method:        strings.TrimSpace(req.Method),
	}

	sub := &Submission{done: make(chan struct{})}
	go s.commit(context.WithoutCancel(ctx), sub, order)
	return sub, nil
}

func (s *orderService) commit(ctx context.Context, sub *Submission, order model.Order) {
	defer close(sub.done)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		<-timer.C
	}

	saved, err := s.store.PrependOrder(ctx, order)
	if err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		s.logger.Error("failed to persist order", "error", err, "customer", order.CustomerName)
		sub.err = fmt.Errorf("failed to place order: %w", err)
		return
	}

	receipt := &OrderReceipt{Order: saved, TotalDisplay: view.FormatINR(saved.Total)}
	note, err := s.notifier.OrderPlaced(ctx, saved)
	if err != nil {
		s.logger.Warn("order notification failed", "error", err, "order_id", saved.ID)
	}
	receipt.Notification = note
	sub.receipt = receipt

	s.mu.Lock()
	s.state = StateCommitted
	s.mu.Unlock()
	s.logger.Info("order placed", "order_id", saved.ID, "customer", saved.CustomerName, "total", saved.Total.String())
}

// List returns the orders visible to the current session.
func (s *orderService) List(ctx context.Context) ([]model.Order, *model.Session, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, ErrNoSession
	}
	return view.VisibleOrders(s.store.Orders(), *sess), sess, nil
}

func orderItems(req model.CreateOrderRequest) []string {
	var items []string
	for _, it := range req.Items {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	if item := strings.TrimSpace(req.Item); item != "" && len(items) == 0 {
		items = append(items, item)
	}
	return items
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return amount, nil
}
