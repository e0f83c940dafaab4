package auth

import (
	"errors"
	"testing"
	"time"

	"paperstore/internal/hours"
	"paperstore/pkg/models"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type memOTPRepo struct {
	codes     []*models.OTPCode
	updateErr error
}

func (m *memOTPRepo) Create(code *models.OTPCode) error {
	code.CreatedAt = code.ExpiresAt.Add(-2 * time.Minute)
	m.codes = append(m.codes, code)
	return nil
}

func (m *memOTPRepo) LatestByPhone(phone string) (*models.OTPCode, error) {
	for i := len(m.codes) - 1; i >= 0; i-- {
		if m.codes[i].Phone == phone {
			return m.codes[i], nil
		}
	}
	return nil, nil
}

func (m *memOTPRepo) Update(code *models.OTPCode) error { return m.updateErr }

func newTestOTP() (*OTPService, *memOTPRepo, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 10, 0, 0, 0, hours.Location)}
	repo := &memOTPRepo{}
	return NewOTPService(repo, clock), repo, clock
}

func TestValidMobile(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"09123456789", true},
		{"09000000000", true},
		{"9123456789", false},
		{"091234567890", false},
		{"0912345678", false},
		{"08123456789", false},
		{"0912345678a", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidMobile(tt.phone); got != tt.want {
			t.Errorf("ValidMobile(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc, repo, _ := newTestOTP()

	code, err := svc.Issue("09123456789")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(code.Code) != 6 {
		t.Fatalf("code length = %d, want 6", len(code.Code))
	}

	if err := svc.Verify("09123456789", code.Code); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !repo.codes[0].Consumed() {
		t.Error("code not marked consumed after successful verify")
	}
}

func TestIssueRejectsBadPhone(t *testing.T) {
	svc, _, _ := newTestOTP()
	if _, err := svc.Issue("12345"); err != ErrInvalidPhone {
		t.Errorf("Issue(bad phone) = %v, want ErrInvalidPhone", err)
	}
}

func TestIssueCooldown(t *testing.T) {
	svc, _, clock := newTestOTP()

	if _, err := svc.Issue("09123456789"); err != nil {
		t.Fatalf("first Issue: %v", err)
	}

	if _, err := svc.Issue("09123456789"); err != ErrOTPCooldown {
		t.Errorf("second Issue inside cooldown = %v, want ErrOTPCooldown", err)
	}

	clock.now = clock.now.Add(61 * time.Second)
	if _, err := svc.Issue("09123456789"); err != nil {
		t.Errorf("Issue after cooldown = %v, want nil", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc, _, clock := newTestOTP()

	code, _ := svc.Issue("09123456789")
	clock.now = clock.now.Add(3 * time.Minute)

	if err := svc.Verify("09123456789", code.Code); err != ErrOTPExpired {
		t.Errorf("Verify(expired) = %v, want ErrOTPExpired", err)
	}
}

func TestVerifyConsumedRejected(t *testing.T) {
	svc, _, _ := newTestOTP()

	code, _ := svc.Issue("09123456789")
	if err := svc.Verify("09123456789", code.Code); err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	if err := svc.Verify("09123456789", code.Code); err != ErrOTPConsumed {
		t.Errorf("second Verify = %v, want ErrOTPConsumed", err)
	}
}

func TestVerifyMismatchCountsAttempts(t *testing.T) {
	svc, repo, _ := newTestOTP()

	svc.Issue("09123456789")
	repo.codes[0].Code = "654321"
	if err := svc.Verify("09123456789", "000000"); err != ErrOTPMismatch {
		t.Fatalf("Verify(wrong) = %v, want ErrOTPMismatch", err)
	}
	if repo.codes[0].Attempts != 1 {
		t.Errorf("attempts = %d, want 1", repo.codes[0].Attempts)
	}

	repo.codes[0].Attempts = 5
	if err := svc.Verify("09123456789", "000000"); err != ErrOTPTooManyTries {
		t.Errorf("Verify after max attempts = %v, want ErrOTPTooManyTries", err)
	}
}

func TestVerifyMismatchFailsWhenAttemptWriteFails(t *testing.T) {
	svc, repo, _ := newTestOTP()

	svc.Issue("09123456789")
	repo.codes[0].Code = "654321"
	repo.updateErr = errors.New("connection reset")

	err := svc.Verify("09123456789", "000000")
	if err == nil || err == ErrOTPMismatch {
		t.Errorf("Verify with failing attempt write = %v, want a persistence error", err)
	}
}

func TestVerifyWithoutIssue(t *testing.T) {
	svc, _, _ := newTestOTP()
	if err := svc.Verify("09123456789", "123456"); err != ErrOTPNotFound {
		t.Errorf("Verify without Issue = %v, want ErrOTPNotFound", err)
	}
}
