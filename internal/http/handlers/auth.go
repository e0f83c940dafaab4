package handlers

import (
	"net/http"
	"os"
	"time"

	"paperstore/internal/auth"
	"paperstore/internal/repo"
	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles staff authentication endpoints
type AuthHandler struct {
	authService     *auth.Service
	activityService *services.ActivityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, activityService *services.ActivityService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		activityService: activityService,
	}
}

// Login godoc
// @Summary Login staff user
// @Description Authenticate a staff user and return JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	response, err := h.authService.Login(req)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	h.activityService.Record(services.Actor{
		ID:   &response.User.ID,
		Name: response.User.Name,
		Role: response.User.Role,
		IP:   c.RealIP(),
	}, models.ActionLogin, "user", &response.User.ID, "staff login")

	return c.JSON(http.StatusOK, response)
}

// RefreshToken godoc
// @Summary Refresh access token
// @Description Generate new access token from refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]string true "Refresh token"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	response, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, response)
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Issue a short-lived password reset token for a staff account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]string true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, err := h.authService.ForgotPassword(req.Email)
	if err != nil {
		// Do not reveal whether the account exists
		return c.JSON(http.StatusOK, map[string]string{"message": "If the account exists, a reset token was issued"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":     "Reset token issued",
		"reset_token": token,
	})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Set a new password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]string true "Reset token and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// UpdateProfile godoc
// @Summary Update staff profile
// @Description Update current user's profile information
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile data"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid user ID format"})
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.UpdateProfile(userID, req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change staff password
// @Description Change current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Password change data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid user ID format"})
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// CustomerAuthHandler handles OTP-based customer login
type CustomerAuthHandler struct {
	authService     *auth.Service
	otpService      *auth.OTPService
	customerRepo    *repo.CustomerRepository
	smsSender       services.SMSSender
	activityService *services.ActivityService
}

// NewCustomerAuthHandler creates a new customer auth handler
func NewCustomerAuthHandler(authService *auth.Service, otpService *auth.OTPService, customerRepo *repo.CustomerRepository, smsSender services.SMSSender, activityService *services.ActivityService) *CustomerAuthHandler {
	return &CustomerAuthHandler{
		authService:     authService,
		otpService:      otpService,
		customerRepo:    customerRepo,
		smsSender:       smsSender,
		activityService: activityService,
	}
}

// RequestOTP godoc
// @Summary Request a login code
// @Description Send a one-time login code to a customer phone via SMS
// @Tags customer-auth
// @Accept json
// @Produce json
// @Param request body models.RequestOTPRequest true "Phone number"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /customer/auth/otp [post]
func (h *CustomerAuthHandler) RequestOTP(c echo.Context) error {
	var req models.RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	code, err := h.otpService.Issue(req.Phone)
	if err != nil {
		if err == auth.ErrOTPCooldown {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// SMS delivery is simulated and slow; do not hold the request for it
	go func(phone, otp string) {
		if err := h.smsSender.SendCode(phone, otp); err != nil {
			log.Error().Err(err).Str("phone", phone).Msg("failed to send login code")
		}
	}(req.Phone, code.Code)

	h.activityService.Record(services.Actor{
		Name: req.Phone,
		Role: models.RoleCustomer,
		IP:   c.RealIP(),
	}, models.ActionOTPIssued, "otp_code", &code.ID, "login code issued")

	response := map[string]string{"message": "Login code sent"}
	if os.Getenv("ENV") == "development" {
		response["dev_code"] = code.Code
	}

	return c.JSON(http.StatusOK, response)
}

// VerifyOTP godoc
// @Summary Verify a login code
// @Description Verify the code, create the customer on first login, and return a JWT
// @Tags customer-auth
// @Accept json
// @Produce json
// @Param request body models.VerifyOTPRequest true "Phone and code"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /customer/auth/verify [post]
func (h *CustomerAuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.otpService.Verify(req.Phone, req.Code); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	customer, err := h.customerRepo.GetByPhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load customer"})
	}

	now := time.Now()
	if customer == nil {
		customer = &models.Customer{
			Phone:       req.Phone,
			Name:        req.Name,
			IsVerified:  true,
			IsActive:    true,
			LastLoginAt: &now,
		}
		if err := h.customerRepo.Create(customer); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create customer"})
		}
	} else {
		if !customer.IsActive {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Customer account is disabled"})
		}
		customer.IsVerified = true
		customer.LastLoginAt = &now
		if req.Name != "" {
			customer.Name = req.Name
		}
		if err := h.customerRepo.Update(customer); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update customer"})
		}
	}

	token, expiresIn, err := h.authService.CustomerToken(customer)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to issue token"})
	}

	h.activityService.Record(services.Actor{
		ID:   &customer.ID,
		Name: customer.Phone,
		Role: models.RoleCustomer,
		IP:   c.RealIP(),
	}, models.ActionOTPVerified, "customer", &customer.ID, "customer login")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"access_token": token,
		"expires_in":   expiresIn,
		"customer":     customer,
	})
}
