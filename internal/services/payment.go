package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"paperstore/internal/repo"
	"paperstore/pkg/models"
)

// Payment errors surfaced to the handler layer
var (
	ErrPaymentExists   = errors.New("order already has a pending payment")
	ErrPaymentSettled  = errors.New("payment is already settled")
	ErrOrderNotPayable = errors.New("order is not payable")
)

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PaymentService drives the simulated payment gateway. The gateway always
// succeeds after a fixed delay; there are no retry or cancellation
// semantics to reproduce, only the terminal mark-as transitions used by the
// admin console.
type PaymentService struct {
	db           *gorm.DB
	paymentRepo  *repo.PaymentRepository
	feed         *OrderFeed
	confirmDelay time.Duration
	expiry       time.Duration
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, paymentRepo *repo.PaymentRepository, feed *OrderFeed) *PaymentService {
	return &PaymentService{
		db:           db,
		paymentRepo:  paymentRepo,
		feed:         feed,
		confirmDelay: durationEnv("PAYMENT_CONFIRM_DELAY", 2*time.Second),
		expiry:       durationEnv("PAYMENT_EXPIRY", 15*time.Minute),
	}
}

// Initiate creates an INITIATED payment for the order and schedules the
// simulated confirmation. At most one non-terminal attempt exists per
// order; a new attempt is allowed after a failed or expired one.
func (s *PaymentService) Initiate(order *models.Order) (*models.Payment, error) {
	if order.Status == models.OrderCancelled || order.Status == models.OrderReturned {
		return nil, ErrOrderNotPayable
	}

	existing, err := s.paymentRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Status == models.PaymentInitiated {
			return nil, ErrPaymentExists
		}
		if p.Status == models.PaymentSuccess {
			return nil, ErrOrderNotPayable
		}
	}

	payment := &models.Payment{
		OrderID:      order.ID,
		TrackingCode: GenerateTrackingCode(),
		Status:       models.PaymentInitiated,
		Amount:       order.TotalAmount,
		Gateway:      "simulated",
		ExpiresAt:    time.Now().Add(s.expiry),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	// Fire-and-forget gateway simulation: always settles successfully
	// after the configured delay.
	go s.confirmLater(payment.ID)

	return payment, nil
}

func (s *PaymentService) confirmLater(paymentID uuid.UUID) {
	time.Sleep(s.confirmDelay)

	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("simulated gateway lost payment")
		return
	}
	if payment.Status != models.PaymentInitiated {
		return
	}

	reference := fmt.Sprintf("SIM-%d", time.Now().UnixNano())
	if err := s.MarkSuccessful(payment, reference); err != nil {
		log.Error().Err(err).Str("tracking_code", payment.TrackingCode).Msg("failed to settle simulated payment")
		return
	}

	log.Info().
		Str("tracking_code", payment.TrackingCode).
		Int64("amount", payment.Amount).
		Msg("simulated payment settled")

	if s.feed != nil {
		s.feed.Publish(OrderEvent{
			Type:         EventPaymentSettled,
			OrderID:      payment.OrderID,
			Status:       models.PaymentSuccess,
			TotalAmount:  payment.Amount,
			TrackingCode: payment.TrackingCode,
		})
	}
}

// MarkSuccessful settles a payment and flips the order's payment status
func (s *PaymentService) MarkSuccessful(payment *models.Payment, referenceID string) error {
	if payment.Status == models.PaymentSuccess {
		return ErrPaymentSettled
	}

	now := time.Now()
	payment.Status = models.PaymentSuccess
	payment.ReferenceID = referenceID
	payment.CompletedAt = &now
	payment.ErrorMessage = ""

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", payment.OrderID).
			Update("payment_status", "paid").Error
	})
}

// MarkFailed records a failed attempt; the customer may retry
func (s *PaymentService) MarkFailed(payment *models.Payment, errorMessage string) error {
	if payment.Status == models.PaymentSuccess {
		return ErrPaymentSettled
	}
	payment.Status = models.PaymentFailed
	payment.ErrorMessage = errorMessage
	return s.paymentRepo.Update(payment)
}

// MarkExpired expires a stale INITIATED attempt
func (s *PaymentService) MarkExpired(payment *models.Payment) error {
	if payment.Status != models.PaymentInitiated {
		return ErrPaymentSettled
	}
	payment.Status = models.PaymentExpired
	return s.paymentRepo.Update(payment)
}

// GenerateTrackingCode generates a payment tracking code of the form
// PAY-YYYYMMDD-XXXXXX.
func GenerateTrackingCode() string {
	now := time.Now()
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(trackingAlphabet))))
		if err != nil {
			n = big.NewInt(0)
		}
		suffix[i] = trackingAlphabet[n.Int64()]
	}
	return fmt.Sprintf("PAY-%d%02d%02d-%s", now.Year(), now.Month(), now.Day(), suffix)
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := getEnv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid duration, using default")
	}
	return fallback
}
