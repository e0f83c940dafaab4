package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"paperstore/internal/hours"
	"paperstore/pkg/models"
)

// OTP lifetimes, matching the storefront's 60 second resend countdown and
// two minute code validity.
const (
	otpLength     = 6
	otpTTL        = 2 * time.Minute
	otpCooldown   = 60 * time.Second
	otpMaxAttempt = 5
)

// OTP verification errors surfaced to the handler layer
var (
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrOTPCooldown     = errors.New("a code was sent recently, wait before requesting another")
	ErrOTPNotFound     = errors.New("no code requested for this phone")
	ErrOTPExpired      = errors.New("code has expired")
	ErrOTPConsumed     = errors.New("code has already been used")
	ErrOTPMismatch     = errors.New("incorrect code")
	ErrOTPTooManyTries = errors.New("too many incorrect attempts")
)

var iranianMobile = regexp.MustCompile(`^09[0-9]{9}$`)

// ValidMobile reports whether the phone is a well-formed Iranian mobile
// number (09 followed by nine digits).
func ValidMobile(phone string) bool {
	return iranianMobile.MatchString(phone)
}

// OTPRepository is the persistence interface for login codes
type OTPRepository interface {
	Create(code *models.OTPCode) error
	LatestByPhone(phone string) (*models.OTPCode, error)
	Update(code *models.OTPCode) error
}

// OTPService issues and verifies one-time login codes for customers
type OTPService struct {
	repo  OTPRepository
	clock hours.Clock
}

// NewOTPService creates a new OTP service
func NewOTPService(repo OTPRepository, clock hours.Clock) *OTPService {
	if clock == nil {
		clock = hours.SystemClock{}
	}
	return &OTPService{repo: repo, clock: clock}
}

// Issue generates a fresh code for the phone. Requests inside the resend
// cooldown of the previous unconsumed code are rejected.
func (s *OTPService) Issue(phone string) (*models.OTPCode, error) {
	if !ValidMobile(phone) {
		return nil, ErrInvalidPhone
	}

	now := s.clock.Now()
	if last, err := s.repo.LatestByPhone(phone); err == nil && last != nil {
		if !last.Consumed() && now.Sub(last.CreatedAt) < otpCooldown {
			return nil, ErrOTPCooldown
		}
	}

	code := &models.OTPCode{
		Phone:     phone,
		Code:      generateCode(),
		ExpiresAt: now.Add(otpTTL),
	}
	if err := s.repo.Create(code); err != nil {
		return nil, fmt.Errorf("failed to store otp code: %w", err)
	}
	return code, nil
}

// Verify checks a submitted code against the latest one issued for the
// phone and consumes it on success.
func (s *OTPService) Verify(phone, submitted string) error {
	if !ValidMobile(phone) {
		return ErrInvalidPhone
	}

	code, err := s.repo.LatestByPhone(phone)
	if err != nil || code == nil {
		return ErrOTPNotFound
	}

	if code.Consumed() {
		return ErrOTPConsumed
	}

	now := s.clock.Now()
	if now.After(code.ExpiresAt) {
		return ErrOTPExpired
	}

	if code.Attempts >= otpMaxAttempt {
		return ErrOTPTooManyTries
	}

	if subtle.ConstantTimeCompare([]byte(code.Code), []byte(submitted)) != 1 {
		code.Attempts++
		if err := s.repo.Update(code); err != nil {
			return fmt.Errorf("failed to record failed attempt: %w", err)
		}
		return ErrOTPMismatch
	}

	code.ConsumedAt = &now
	if err := s.repo.Update(code); err != nil {
		return fmt.Errorf("failed to consume otp code: %w", err)
	}
	return nil
}

// generateCode produces a 6-digit numeric code with a crypto source
func generateCode() string {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand failing means the process is in much deeper trouble;
		// fall back to the zero code rather than panicking mid-request.
		n = big.NewInt(0)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
