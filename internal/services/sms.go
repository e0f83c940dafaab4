package services

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// SMSSender delivers login codes to a phone number
type SMSSender interface {
	SendCode(phone, code string) error
}

// SimulatedSMS stands in for a real SMS provider. Delivery always succeeds
// after a fixed wait, mirroring the placeholder timers the storefront uses
// instead of network calls.
type SimulatedSMS struct {
	delay time.Duration
}

// NewSimulatedSMS creates the simulated sender
func NewSimulatedSMS() *SimulatedSMS {
	return &SimulatedSMS{delay: durationEnv("SMS_SEND_DELAY", 500*time.Millisecond)}
}

// SendCode "delivers" the code by logging it after the configured delay
func (s *SimulatedSMS) SendCode(phone, code string) error {
	time.Sleep(s.delay)
	log.Info().Str("phone", phone).Str("code", code).Msg("simulated SMS delivered")
	return nil
}

func getEnv(key string) string {
	return os.Getenv(key)
}
