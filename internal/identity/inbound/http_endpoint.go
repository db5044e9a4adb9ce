package inbound

import (
	"strconv"

	"github.com/azizbek-web-dev/phonegate/internal/identity/usecase"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration, sessions and profile.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an unverified account and texts a verification code.
// @Summary Register account
// @Description Creates an account pending phone verification and sends a 6 digit code by SMS.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "Account created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Failed to send OTP"
// @Router /api/v1/auth/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName:             req.FullName,
		Username:             req.Username,
		Phone:                req.Phone,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		UserID:       strconv.FormatInt(resp.UserID, 10),
		Phone:        resp.Phone,
		OTPExpiresAt: resp.OTPExpiresAt.UTC(),
	}, nil
}

// VerifyOTP confirms the phone number and opens a session.
// @Summary Verify phone
// @Description Checks the code sent by SMS. Wrong, expired and unknown codes are not distinguished.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=TokenResponse} "Phone verified"
// @Failure 400 {object} router.errorResponse "Invalid or expired OTP code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/verify-otp [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Phone:   req.Phone,
		OtpCode: req.OtpCode,
	})
	if err != nil {
		return nil, err
	}

	return newTokenResponse(resp, "Phone verified successfully"), nil
}

// ResendOTP replaces the outstanding code and texts it again.
// @Summary Resend verification code
// @Description Issues a new code for an unverified account. Earlier codes stop working.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body ResendOTPRequest true "Resend payload"
// @Success 200 {object} router.successResponse{data=ResendOTPResponse} "Code sent"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "Phone number already verified"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Failed to send OTP"
// @Router /api/v1/auth/resend-otp [post]
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	var req ResendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	return ResendOTPResponse{OTPExpiresAt: resp.OTPExpiresAt.UTC()}, nil
}

// Login authenticates by email, phone or username.
// @Summary Authenticate account
// @Description Resolves the login as email, then phone, then username, and returns a bearer token.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=TokenResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 403 {object} router.errorResponse "Phone not verified" example:{"success":false,"message":"Please verify your phone number first.","data":{"phone":"+998901234567","needs_verification":true}}
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return newTokenResponse(resp, "Login successful"), nil
}

// Logout revokes the presented bearer token.
// @Summary Logout
// @Description Revokes the current token only. Other sessions stay valid.
// @Tags Identity, Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse "Logged out"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// Profile returns the authenticated account.
// @Summary Get profile
// @Tags Identity, Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	acc, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{User: ProfileUser{
		UserResponse: newUserResponse(*acc),
		CreatedAt:    acc.CreatedAt.UTC(),
	}}, nil
}

// ProfileUpdate patches full name and username of the authenticated account.
// @Summary Update profile
// @Description Fields left out of the body keep their value.
// @Tags Identity, Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile patch"
// @Success 200 {object} router.successResponse{data=UpdateProfileResponse} "Updated profile"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/profile [patch]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	acc, err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		FullName: req.FullName,
		Username: req.Username,
	})
	if err != nil {
		return nil, err
	}

	return UpdateProfileResponse{User: newUserResponse(*acc)}, nil
}
